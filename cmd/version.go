package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/social-actions-cli/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(version.Get())
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sa %s\n", version.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build metadata as JSON")

	return cmd
}
