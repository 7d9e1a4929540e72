// Package main provides the entry point for the canva command-line client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const usageText = `Canva lets you work with your Canvas account from the command line.

Managing your account
    login                                   Save your school URL and access token
    logout                                  Remove saved credentials
    account                                 Show account information
    courses                                 List your courses
    assignments <course_id>                 List assignments with a due date

Submitting files
    add <file>                              Register a file for upload
    commit                                  Upload the registered file
    submit <course_id> <assignment_id>      Attach the uploaded file to an assignment
    status                                  Show which stage is pending`

var rootCmd = &cobra.Command{
	Use:           "canva",
	Short:         "Command-line client for Canvas LMS",
	Long:          usageText,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	configPath   string
	stateDirFlag string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON settings file")
	rootCmd.PersistentFlags().StringVar(&stateDirFlag, "state-dir", "", "Directory for credentials and submission state (overrides CANVA_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log HTTP calls and stage transitions to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
