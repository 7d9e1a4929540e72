package main

import (
	"github.com/jonathan/canva/internal/submission"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <course_id> <assignment_id>",
	Short: "Attach the uploaded file to an assignment",
	Long: `Submit the committed file to an assignment as an online upload.
The committed file is forgotten afterwards unless --keep is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runSubmit,
}

var submitKeep bool

func init() {
	submitCmd.Flags().BoolVar(&submitKeep, "keep", false, "Keep the committed file for another submission")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	courseID, err := parseID("course_id", args[0])
	if err != nil {
		return err
	}
	assignmentID, err := parseID("assignment_id", args[1])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	wf, err := s.workflow(true)
	if err != nil {
		return err
	}

	ack, err := wf.Submit(cmd.Context(), courseID, assignmentID, submission.SubmitOptions{Keep: submitKeep})
	if err != nil {
		return err
	}
	s.printer.PrintSubmitted(ack, submitKeep)
	return nil
}
