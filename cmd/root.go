package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "saral",
	Short: "Saral AI landing page and early access service",
	Long: `saral serves the Saral AI landing page and collects early access
requests through the access dialog.

Configuration is read from the environment, after loading any .env files
given with --env-file (default: .env in the working directory).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment")
}
