package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sa",
		Short:         "Social Actions CLI (sa): policy-driven engagement for browser-held accounts",
		Long:          "sa drives logged-in browser profiles to favorite, bookmark, reshare and reply to the newest posts of configured targets, with per-account policies, hourly ceilings and an idempotency ledger.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newActCmd(app),
		newConfigCmd(app),
		newLedgerCmd(app),
		newLoginCmd(app),
		newRunCmd(app),
		newSecretCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
