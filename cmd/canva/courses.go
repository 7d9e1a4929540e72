package main

import (
	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List your courses",
	Long:  "List courses that have both a name and a course code, in the order the server returns them.",
	Args:  cobra.ExactArgs(0),
	RunE:  runCourses,
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	fetcher, err := s.fetcher()
	if err != nil {
		return err
	}

	list, err := fetcher.Courses(cmd.Context())
	if err != nil {
		return err
	}
	s.printer.PrintCourses(list)
	return nil
}
