package cmd

import (
	"fmt"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings and the accounts file",
	}

	cmd.AddCommand(newConfigCheckCmd(app), newConfigShowCmd(app))

	return cmd
}

func newConfigCheckCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every account in the accounts file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.repo.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("load %s: %w", app.repo.Path(), err)
			}

			invalid := 0
			for _, account := range accounts {
				if err := account.Validate(); err != nil {
					invalid++
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "invalid  %s: %v\n", account.ID, err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok       %s (%d targets, actions: %s)\n", account.ID, len(account.Targets), account.Enabled)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d accounts invalid: %w", invalid, len(accounts), domain.ErrInvalidConfig)
			}
			return nil
		},
	}
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, line := range app.effectiveSettings() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
