package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/releve-dev/releve/internal/export"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a previously downloaded export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading export: %w", err)
			}

			if export.IsNoActivity(data) {
				fmt.Fprintln(cmd.OutOrStdout(), "no activity")
				return nil
			}

			acct, err := export.ParseAccount(string(data))
			if err != nil {
				return err
			}
			printAccounts(cmd.OutOrStdout(), []export.Account{acct})
			return nil
		},
	}
}
