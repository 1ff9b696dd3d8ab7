package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command.
type options struct {
	baseURL string
	token   string
	output  string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "fundledger-cli",
		Short:         "FundLedger CLI tool",
		Long:          `A command line interface for interacting with the FundLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "json" && opts.output != "yaml" {
				return fmt.Errorf("unsupported output format %q (want json or yaml)", opts.output)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", envOr("FUNDLEDGER_URL", "http://localhost:8080"), "Base URL of the FundLedger API")
	flags.StringVar(&opts.token, "token", os.Getenv("FUNDLEDGER_TOKEN"), "Bearer token for authenticated requests")
	flags.StringVarP(&opts.output, "output", "o", "json", "Output format: json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		accountsCmd(opts),
		transactionsCmd(opts),
		transferCmd(opts),
		transfersCmd(opts),
		interestConfigsCmd(opts),
		reconcileCmd(opts),
		ledgerCmd(opts),
		interestCmd(opts),
		migrateCmd(),
		usersCmd(),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
