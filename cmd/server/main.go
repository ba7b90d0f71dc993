// Package main implements the entry point for the tasks API server: a small
// CRUD service over a key-value task store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "tasks-api",
	Short:         "tasks-api - task CRUD service over a key-value store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Run database migrations against store.postgres_url",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "version"},
	RunE:      runMigrate,
}

var subjectFlag string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token signed with auth.jwt_secret",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing config.yaml")
	tokenCmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject claim for the token")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
