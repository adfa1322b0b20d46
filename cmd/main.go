package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "jobhunt",
	Short:        "JobHunt job board backend",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, sweepCmd, cleanupOrphansCmd, issueTokenCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
