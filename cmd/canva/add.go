package main

import (
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Register a file for upload",
	Long: `Register a local file with Canvas and store the returned upload URL.
Run 'canva commit' next to upload the file contents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	wf, err := s.workflow(true)
	if err != nil {
		return err
	}

	intent, err := wf.Register(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	s.printer.PrintRegistered(intent)
	return nil
}
