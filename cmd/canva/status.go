package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which submission stage is pending",
	Long:  "Show the pending submission stage from local state. No network call is made.",
	Args:  cobra.ExactArgs(0),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	wf, err := s.workflow(false)
	if err != nil {
		return err
	}

	status, err := wf.Status()
	if err != nil {
		return err
	}
	s.printer.PrintStatus(status)
	return nil
}
