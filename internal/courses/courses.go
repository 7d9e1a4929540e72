// Package courses fetches read-only Canvas resources and projects them into
// display-ready records.
package courses

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jonathan/canva/internal/types"
)

// Paths of the read-only endpoints, relative to the instance base URL.
const (
	AccountPath     = "/api/v1/users/self"
	CoursesPath     = "/api/v1/courses"
	assignmentsPath = "/api/v1/courses/%d/assignments"
)

// DueDateLayout is the display format for assignment due dates.
const DueDateLayout = "01-02-2006"

// Getter issues authenticated GET requests. *canvas.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, target string, out any) error
}

// Fetcher retrieves account, course, and assignment data.
type Fetcher struct {
	client Getter
	logger *log.Logger
}

// NewFetcher creates a fetcher. A nil logger discards output.
func NewFetcher(client Getter, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Fetcher{client: client, logger: logger}
}

// AssignmentsPath returns the assignment listing path for a course.
func AssignmentsPath(courseID int64) string {
	return fmt.Sprintf(assignmentsPath, courseID)
}

// Account returns the authenticated user's account record as-is.
func (f *Fetcher) Account(ctx context.Context) (*types.Account, error) {
	var account types.Account
	if err := f.client.Get(ctx, AccountPath, &account); err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &account, nil
}

// Courses returns the user's courses that have both a name and a course code.
func (f *Fetcher) Courses(ctx context.Context) ([]types.ValidCourse, error) {
	var raw []types.Course
	if err := f.client.Get(ctx, CoursesPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}
	valid := ProjectCourses(raw)
	if dropped := len(raw) - len(valid); dropped > 0 {
		f.logger.Printf("dropped %d of %d courses without a name or course code", dropped, len(raw))
	}
	return valid, nil
}

// Assignments returns a course's assignments that have an id, a name, and a due date.
func (f *Fetcher) Assignments(ctx context.Context, courseID int64) ([]types.ValidAssignment, error) {
	var raw []types.Assignment
	if err := f.client.Get(ctx, AssignmentsPath(courseID), &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for course %d: %w", courseID, err)
	}
	valid := ProjectAssignments(raw)
	if dropped := len(raw) - len(valid); dropped > 0 {
		f.logger.Printf("dropped %d of %d assignments in course %d without an id, name, or due date", dropped, len(raw), courseID)
	}
	return valid, nil
}

// ProjectCourses keeps, in order, exactly the courses with a non-null name and course code.
func ProjectCourses(raw []types.Course) []types.ValidCourse {
	valid := make([]types.ValidCourse, 0, len(raw))
	for _, course := range raw {
		if course.Name == nil || course.CourseCode == nil {
			continue
		}
		valid = append(valid, types.ValidCourse{
			ID:         course.ID,
			Name:       *course.Name,
			CourseCode: *course.CourseCode,
		})
	}
	return valid
}

// ProjectAssignments keeps, in order, the assignments with an id, a name, and
// a parseable due date, reformatting the due date as MM-DD-YYYY.
func ProjectAssignments(raw []types.Assignment) []types.ValidAssignment {
	valid := make([]types.ValidAssignment, 0, len(raw))
	for _, assignment := range raw {
		if assignment.ID == nil || assignment.Name == nil || assignment.DueAt == nil {
			continue
		}
		due, err := FormatDueDate(*assignment.DueAt)
		if err != nil {
			continue
		}
		valid = append(valid, types.ValidAssignment{
			ID:    *assignment.ID,
			Name:  *assignment.Name,
			DueAt: due,
		})
	}
	return valid
}

// FormatDueDate converts an RFC3339 timestamp to MM-DD-YYYY in the
// timestamp's own offset.
func FormatDueDate(rfc3339 string) (string, error) {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return "", fmt.Errorf("invalid due date %q: %w", rfc3339, err)
	}
	return t.Format(DueDateLayout), nil
}
