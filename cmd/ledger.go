package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/bnema/social-actions-cli/internal/application"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLedgerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and maintain the action ledger",
	}

	cmd.AddCommand(newLedgerListCmd(app), newLedgerPruneCmd(app))

	return cmd
}

func newLedgerListCmd(app *app) *cobra.Command {
	var (
		accountID string
		action    string
		outcome   string
		since     time.Duration
		limit     int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger records for one account, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := application.LedgerQuery{Account: domain.AccountID(accountID), Limit: limit}
			if action != "" {
				kind, err := domain.ParseActionKind(action)
				if err != nil {
					return err
				}
				query.Action = kind
			}
			if outcome != "" {
				parsed, err := domain.ParseOutcome(outcome)
				if err != nil {
					return err
				}
				query.Outcome = parsed
			}
			if since > 0 {
				query.Since = app.now().Add(-since)
			}

			records, err := app.service.ListLedger(cmd.Context(), query)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "AT\tPOST\tACTION\tOUTCOME\tNOTE")
			for _, rec := range records {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					rec.At.Local().Format(time.DateTime), rec.PostID, rec.Action, rec.Outcome, rec.Note)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&action, "action", "", "Only this action")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Only this outcome (success, failed, skipped, dry_run)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only records newer than this, e.g. 24h")
	cmd.Flags().IntVar(&limit, "limit", 50, "Show at most this many of the newest records (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newLedgerPruneCmd(app *app) *cobra.Command {
	var (
		selectors []string
		olderThan time.Duration
		outcomes  []string
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old ledger records",
		Long:  "prune deletes records older than --older-than. With --outcome only those outcomes are removed, e.g. --outcome dry_run clears the records of rehearsal runs.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 && len(outcomes) == 0 {
				return errors.New("prune needs --older-than or --outcome")
			}

			command := application.PruneLedgerCommand{Accounts: selectors, Before: app.now().Add(-olderThan)}
			for _, raw := range outcomes {
				outcome, err := domain.ParseOutcome(raw)
				if err != nil {
					return err
				}
				command.Outcomes = append(command.Outcomes, outcome)
			}

			results, err := app.service.PruneLedger(cmd.Context(), command)
			for _, result := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %d records\n", result.Account, result.Removed)
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&selectors, "accounts", []string{"all"}, "Accounts to prune: all, or ids/handles separated by commas")
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Remove records older than this, e.g. 720h")
	cmd.Flags().StringSliceVar(&outcomes, "outcome", nil, "Only remove these outcomes")

	return cmd
}
