package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/social-actions-cli/internal/adapters/render/status"
	"github.com/bnema/social-actions-cli/internal/application"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		accountID string
		asJSON    bool
		idleAfter time.Duration
		watch     bool
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show trailing-hour action budgets per account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch {
				load := func(ctx context.Context) ([]application.Status, error) {
					return loadStatuses(ctx, app.service, accountID)
				}
				return statusadapter.Watch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), load,
					statusadapter.RenderOptions{IdleAfter: idleAfter}, interval)
			}

			statuses, err := loadStatuses(cmd.Context(), app.service, accountID)
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, statuses, idleAfter, asJSON)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (default: all accounts)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statuses as JSON")
	cmd.Flags().DurationVar(&idleAfter, "idle-after", 24*time.Hour, "Flag accounts without ledger activity for this long")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep redrawing the budgets, e.g. next to a running `sa run`")
	cmd.Flags().DurationVar(&interval, "interval", statusadapter.DefaultWatchInterval, "Refresh interval for --watch")
	cmd.MarkFlagsMutuallyExclusive("json", "watch")

	return cmd
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.Status, idleAfter time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:       app.now(),
		IdleAfter: idleAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func loadStatuses(ctx context.Context, svc *application.Service, accountID string) ([]application.Status, error) {
	if accountID == "" {
		return svc.GetStatusAll(ctx)
	}

	status, err := svc.GetStatus(ctx, domain.AccountID(accountID))
	if err != nil {
		return nil, err
	}

	return []application.Status{status}, nil
}
