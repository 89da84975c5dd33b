package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/releve-dev/releve/internal/config"
	"github.com/releve-dev/releve/internal/export"
	"github.com/releve-dev/releve/internal/session"
)

func newFetchCommand() *cobra.Command {
	var (
		username   string
		password   string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Log in to the portal and download account statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = os.Getenv("RELEVE_USERNAME")
			}
			if password == "" {
				password = os.Getenv("RELEVE_PASSWORD")
			}

			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			logger := log.New(cmd.ErrOrStderr())
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}

			creds := session.Credentials{Username: username, Password: password}
			sess, err := session.New(cfg, creds, session.WithLogger(logger))
			if err != nil {
				return err
			}

			accounts, err := sess.CheckBalance(cmd.Context())
			if err != nil {
				return err
			}

			printAccounts(cmd.OutOrStdout(), accounts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "portal username (or RELEVE_USERNAME)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "portal password (or RELEVE_PASSWORD)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a releve.yaml overriding the built-in portal contract")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log session steps")

	return cmd
}

// printAccounts writes one header line per account followed by its
// normalized statement lines, indented.
func printAccounts(w io.Writer, accounts []export.Account) {
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			a.Name(), a.AccountNumber(), a.StatementDate(), a.Balance().StringFixed(2))
		for _, st := range a.Statements() {
			fmt.Fprintf(w, "\t%s\n", st)
		}
	}
}
