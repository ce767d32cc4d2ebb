package ports

import (
	"context"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// Driver is one live browser session. Errors that mean the session is gone wrap domain.ErrSessionDead.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	FindAndClick(ctx context.Context, selector string) error
	TypeText(ctx context.Context, selector string, text string) error
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	RenderedContent(ctx context.Context) (string, error)
	IsAlive(ctx context.Context) bool
	Close() error
}

type DriverFactory interface {
	Launch(ctx context.Context, profile domain.BrowserProfile) (Driver, error)
}
