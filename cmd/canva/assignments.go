package main

import (
	"github.com/spf13/cobra"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments <course_id>",
	Short: "List assignments for a course",
	Long:  "List assignments of a course that have a due date. Due dates are shown as MM-DD-YYYY.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssignments,
}

func init() {
	rootCmd.AddCommand(assignmentsCmd)
}

func runAssignments(cmd *cobra.Command, args []string) error {
	courseID, err := parseID("course_id", args[0])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	fetcher, err := s.fetcher()
	if err != nil {
		return err
	}

	list, err := fetcher.Assignments(cmd.Context(), courseID)
	if err != nil {
		return err
	}
	s.printer.PrintAssignments(list)
	return nil
}
