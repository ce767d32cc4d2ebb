package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errAccountsFailed = errors.New("one or more accounts failed")

func newRunCmd(app *app) *cobra.Command {
	var (
		selectors []string
		liveRun   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every configured target for the selected accounts",
		Long:  "run visits each target of each selected account and applies the allowed actions to its newest post. Without --live-run nothing is clicked and attempts are recorded as dry_run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun := !liveRun
			if dryRun {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "dry run: no actions will be applied (use --live-run to apply them)")
			}

			reports, err := app.newOrchestrator(dryRun).Run(cmd.Context(), selectors)
			if err != nil {
				return err
			}

			return finishRun(cmd, app, reports)
		},
	}

	cmd.Flags().StringSliceVar(&selectors, "accounts", []string{"all"}, "Accounts to run: all, or ids/handles separated by commas")
	cmd.Flags().BoolVar(&liveRun, "live-run", false, "Apply actions on the platform instead of a dry run")

	return cmd
}

func newActCmd(app *app) *cobra.Command {
	var (
		accountID string
		target    string
		actions   []string
		liveRun   bool
	)

	cmd := &cobra.Command{
		Use:   "act",
		Short: "Apply actions to one target's newest post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := domain.ParseActionSet(actions)
			if err != nil {
				return err
			}

			report, err := app.newOrchestrator(!liveRun).Act(cmd.Context(), accountID, target, set)
			if err != nil {
				return err
			}

			return finishRun(cmd, app, []domain.AccountReport{report})
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account id or handle")
	cmd.Flags().StringVar(&target, "target", "", "Target handle")
	cmd.Flags().StringSliceVar(&actions, "actions", nil, "Actions to apply (favorite,bookmark,reshare,comment); defaults to the account's enabled set")
	cmd.Flags().BoolVar(&liveRun, "live-run", false, "Apply actions on the platform instead of a dry run")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func finishRun(cmd *cobra.Command, app *app, reports []domain.AccountReport) error {
	if err := writeRunSummary(cmd.OutOrStdout(), reports); err != nil {
		return err
	}

	if err := app.metrics.WriteTextfile(app.settings.Metrics.Textfile); err != nil {
		app.logger.Warn("metrics textfile not written", zap.Error(err))
	}

	failed := 0
	for _, report := range reports {
		if report.Fatal() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(reports), errAccountsFailed)
	}
	return nil
}

func writeRunSummary(w io.Writer, reports []domain.AccountReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ACCOUNT\tSTATUS\tPOSTS\tSUCCEEDED\tSKIPPED\tFAILED\tERROR")
	for _, report := range reports {
		var succeeded, skipped, failed int
		for _, post := range report.Posts {
			succeeded += post.Count(domain.StateSucceeded)
			skipped += post.Count(domain.StateSkipped)
			failed += post.Count(domain.StateFailed)
		}

		errText := "-"
		if report.Err != nil {
			errText = strings.ReplaceAll(report.Err.Error(), "\n", "; ")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			report.AccountID, report.Status, len(report.Posts), succeeded, skipped, failed, errText)
	}
	return tw.Flush()
}
