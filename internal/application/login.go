package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"go.uber.org/zap"
)

const selectorSignedIn = `[data-testid="AppTabBar_Home_Link"]`

// LoginAssist opens a visible browser on an account's profile so the operator can sign in by hand.
// The session cookies stay in the profile for later headless runs.
type LoginAssist struct {
	supervisor *Supervisor
	baseURL    string
	logger     *zap.Logger
}

func NewLoginAssist(supervisor *Supervisor, baseURL string, logger *zap.Logger) *LoginAssist {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginAssist{supervisor: supervisor, baseURL: strings.TrimSuffix(baseURL, "/"), logger: logger}
}

// Run waits up to wait for the home timeline to appear, which means the profile is signed in.
func (l *LoginAssist) Run(ctx context.Context, account domain.Account, wait time.Duration) (err error) {
	profile := account.Profile
	profile.Headless = false

	state, err := l.supervisor.Open(ctx, profile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := l.supervisor.Close(state); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := state.Driver.Navigate(ctx, l.baseURL+"/login"); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}

	l.logger.Info("waiting for sign-in", zap.String("account", string(account.ID)), zap.Duration("timeout", wait))
	if err := state.Driver.WaitFor(ctx, selectorSignedIn, wait); err != nil {
		return fmt.Errorf("account %s not signed in after %s: %w", account.ID, wait, err)
	}

	l.logger.Info("signed in", zap.String("account", string(account.ID)))
	return nil
}
