package main

import (
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Upload the registered file",
	Args:  cobra.ExactArgs(0),
	RunE:  runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	wf, err := s.workflow(true)
	if err != nil {
		return err
	}

	result, err := wf.Commit(cmd.Context())
	if err != nil {
		return err
	}
	s.printer.PrintCommitted(result)
	return nil
}
