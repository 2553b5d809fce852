package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var host string

var rootCmd = &cobra.Command{
	Use:   "clubstats-cli",
	Short: "Query and poke a running clubstats server",
	Long: `clubstats-cli wraps the HTTP endpoints of a clubstats server so you can
check the current week, pull standings or weekly winners, and trigger a
rollover check without reaching for curl.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "base URL of the clubstats server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %s\n", err)
		os.Exit(1)
	}
}
