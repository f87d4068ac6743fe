package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var syncBucketsCmd = &cobra.Command{
	Use:   "sync-buckets",
	Short: "Discover buckets for all valid accounts",
	Long: `Fetches the bucket list for every valid account, resolves region,
domains and privacy for each bucket and upserts the local bucket table.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		rep := &cliReporter{}
		if err := a.syncer.SyncBuckets(cmd.Context(), rep); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	},
}

var (
	accountName      string
	accountAccessKey string
	accountSecretKey string
)

var addAccountCmd = &cobra.Command{
	Use:   "add-account",
	Short: "Register an account key pair",
	Run: func(cmd *cobra.Command, args []string) {
		if accountName == "" || accountAccessKey == "" || accountSecretKey == "" {
			fmt.Fprintln(os.Stderr, "error: --name, --access-key and --secret-key are required")
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		acct, err := a.db.EnsureAccount(accountName, accountAccessKey, accountSecretKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("account [%s] registered (id=%d)\n", acct.Name, acct.ID)
	},
}

func init() {
	addAccountCmd.Flags().StringVar(&accountName, "name", "", "account display name")
	addAccountCmd.Flags().StringVar(&accountAccessKey, "access-key", "", "access key")
	addAccountCmd.Flags().StringVar(&accountSecretKey, "secret-key", "", "secret key")

	rootCmd.AddCommand(syncBucketsCmd, addAccountCmd)
}
