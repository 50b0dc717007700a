// Package cli implements holdemctl, a small client for poking at a running
// room server: checking its status and watching the table from a terminal.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "holdemctl",
		Short: "CLI tool for the hold'em room server",
		Long: `holdemctl talks to a running hold'em room server.

It can check the server's status endpoint and attach to the room's
websocket to watch the table log in real time.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "Server URL (env: HOLDEMCTL_SERVER)")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

func defaultServerURL() string {
	if url := os.Getenv("HOLDEMCTL_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
