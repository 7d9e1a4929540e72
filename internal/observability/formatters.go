// Package observability provides console output and the verbose logger for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/canva/internal/submission"
	"github.com/jonathan/canva/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60

	courseCodeWidth     = 25
	courseNameWidth     = 50
	assignmentNameWidth = 40
	dueDateWidth        = 20
)

// Printer handles formatted command output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintAccount outputs the account name, id, and creation date.
func (p *Printer) PrintAccount(account *types.Account) {
	if account == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:          %s\n", account.Name))
	sb.WriteString(fmt.Sprintf("ID:            %d\n", account.ID))
	sb.WriteString(fmt.Sprintf("Date Created:  %s", account.CreatedAt))

	p.printBox("ACCOUNT INFO", sb.String())
}

// PrintCourses outputs one row per course in server order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCourses(courses []types.ValidCourse) {
	if len(courses) == 0 {
		fmt.Fprintln(p.out, "No courses found.")
		return
	}

	fmt.Fprintf(p.out, "%-*s %-*s %s\n", courseCodeWidth, "Course Code", courseNameWidth, "Course Name", "Course ID")
	for _, c := range courses {
		fmt.Fprintf(p.out, "%-*s %-*s %d\n",
			courseCodeWidth, truncate(c.CourseCode, courseCodeWidth),
			courseNameWidth, truncate(c.Name, courseNameWidth),
			c.ID)
	}
}

// PrintAssignments outputs one row per assignment in server order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAssignments(assignments []types.ValidAssignment) {
	if len(assignments) == 0 {
		fmt.Fprintln(p.out, "No assignments with a due date found.")
		return
	}

	fmt.Fprintf(p.out, "%-*s %-*s %s\n", assignmentNameWidth, "Assignment Name", dueDateWidth, "Due Date", "Assignment ID")
	for _, a := range assignments {
		fmt.Fprintf(p.out, "%-*s %-*s %d\n",
			assignmentNameWidth, truncate(a.Name, assignmentNameWidth),
			dueDateWidth, a.DueAt,
			a.ID)
	}
}

// PrintRegistered confirms stage one.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRegistered(intent *types.UploadIntent) {
	fmt.Fprintf(p.out, "Added %s. Run 'canva commit' to upload it.\n", intent.FileName)
}

// PrintCommitted confirms stage two.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCommitted(result *types.CommitResult) {
	fmt.Fprintf(p.out, "Committed file %d. Run 'canva submit <course_id> <assignment_id>' to submit it.\n", result.FileID)
}

// PrintSubmitted confirms stage three.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSubmitted(ack *types.Submission, kept bool) {
	fmt.Fprintln(p.out, "File submitted successfully!")
	if ack != nil && ack.Attempt != nil {
		fmt.Fprintf(p.out, "Attempt %d recorded.\n", *ack.Attempt)
	}
	if kept {
		fmt.Fprintln(p.out, "The committed file was kept and can be submitted again.")
	}
}

// PrintStatus outputs the pending workflow stage.
func (p *Printer) PrintStatus(status *submission.Status) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stage:     %s", status.Stage))

	switch status.Stage {
	case submission.StageRegistered:
		sb.WriteString(fmt.Sprintf("\nFile:      %s", status.Intent.FileName))
		sb.WriteString(fmt.Sprintf("\nFolder:    %s", status.Intent.ParentPath))
		sb.WriteString("\nNext:      canva commit")
	case submission.StageCommitted:
		sb.WriteString(fmt.Sprintf("\nFile ID:   %d", status.Commit.FileID))
		if status.Commit.DisplayName != "" {
			sb.WriteString(fmt.Sprintf("\nName:      %s", status.Commit.DisplayName))
		}
		sb.WriteString("\nNext:      canva submit <course_id> <assignment_id>")
	default:
		sb.WriteString("\nNext:      canva add <file>")
	}

	if status.Stage != submission.StageIdle {
		sb.WriteString(fmt.Sprintf("\nRun ID:    %s", status.RunID))
		sb.WriteString(fmt.Sprintf("\nSaved At:  %s", status.SavedAt.Local().Format(time.RFC1123)))
	}

	p.printBox("SUBMISSION STATUS", sb.String())
}
