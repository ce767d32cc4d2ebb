package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect configured accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.repo.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tHANDLE\tACTIONS\tTARGETS\tPROFILE")
			for _, account := range accounts {
				actions := account.Enabled.String()
				if actions == "" {
					actions = "-"
				}
				_, _ = fmt.Fprintf(tw, "%s\t@%s\t%s\t%d\t%s\n",
					account.ID, account.Handle, actions, len(account.Targets), account.Profile.Path)
			}

			return tw.Flush()
		},
	}
}
