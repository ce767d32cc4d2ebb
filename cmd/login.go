package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/social-actions-cli/internal/application"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		accountID string
		wait      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a visible browser on an account profile to sign in by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := application.SelectAccounts(cmd.Context(), app.repo, []string{accountID})
			if err != nil {
				return err
			}
			if len(accounts) != 1 {
				return fmt.Errorf("login takes exactly one account, %q matched %d", accountID, len(accounts))
			}
			account := accounts[0]

			assist := application.NewLoginAssist(app.supervisor, app.settings.Browser.BaseURL, app.logger)
			label := fmt.Sprintf("Waiting for @%s to sign in (up to %s)...", account.Handle, wait)
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) error {
				return assist.Run(ctx, account, wait)
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in account %s; the session is kept in %s\n", account.ID, account.Profile.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account id or handle")
	cmd.Flags().DurationVar(&wait, "wait", 5*time.Minute, "How long to wait for the sign-in to finish")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
