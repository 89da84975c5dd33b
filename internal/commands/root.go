package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releve-dev/releve/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "releve",
		Short:   "Fetch bank balances and statements from the web portal",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newParseCommand())

	return rootCmd
}
