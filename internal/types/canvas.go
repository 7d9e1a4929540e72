package types

import "encoding/json"

// Account represents the authenticated user as returned by /api/v1/users/self.
type Account struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	SortableName    string `json:"sortable_name,omitempty"`
	ShortName       string `json:"short_name,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	EffectiveLocale string `json:"effective_locale,omitempty"`
	Extra           Extra  `json:"-"`
}

var accountFields = []string{"id", "name", "sortable_name", "short_name", "created_at", "avatar_url", "effective_locale"}

// UnmarshalJSON decodes the modeled fields and keeps the rest in Extra.
func (a *Account) UnmarshalJSON(data []byte) error {
	type plain Account
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, accountFields)
	if err != nil {
		return err
	}
	*a = Account(p)
	a.Extra = extra
	return nil
}

// MarshalJSON re-encodes the account including unmodeled fields.
func (a Account) MarshalJSON() ([]byte, error) {
	type plain Account
	typed, err := json.Marshal(plain(a))
	if err != nil {
		return nil, err
	}
	return joinExtra(typed, a.Extra)
}

// Course is a raw course record. Name and CourseCode are nil when the
// server omits them or sends null (e.g. for restricted enrollments).
type Course struct {
	ID            int64   `json:"id"`
	Name          *string `json:"name"`
	CourseCode    *string `json:"course_code"`
	WorkflowState string  `json:"workflow_state,omitempty"`
	Extra         Extra   `json:"-"`
}

var courseFields = []string{"id", "name", "course_code", "workflow_state"}

// UnmarshalJSON decodes the modeled fields and keeps the rest in Extra.
func (c *Course) UnmarshalJSON(data []byte) error {
	type plain Course
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, courseFields)
	if err != nil {
		return err
	}
	*c = Course(p)
	c.Extra = extra
	return nil
}

// ValidCourse is the display projection of a Course with both name and code present.
type ValidCourse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Assignment is a raw assignment record.
type Assignment struct {
	ID              *int64   `json:"id"`
	Name            *string  `json:"name"`
	DueAt           *string  `json:"due_at"`
	CourseID        int64    `json:"course_id,omitempty"`
	PointsPossible  *float64 `json:"points_possible,omitempty"`
	SubmissionTypes []string `json:"submission_types,omitempty"`
	HTMLURL         string   `json:"html_url,omitempty"`
	Extra           Extra    `json:"-"`
}

var assignmentFields = []string{"id", "name", "due_at", "course_id", "points_possible", "submission_types", "html_url"}

// UnmarshalJSON decodes the modeled fields and keeps the rest in Extra.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	type plain Assignment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, assignmentFields)
	if err != nil {
		return err
	}
	*a = Assignment(p)
	a.Extra = extra
	return nil
}

// ValidAssignment is the display projection of an Assignment.
// DueAt is formatted as MM-DD-YYYY.
type ValidAssignment struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	DueAt string `json:"due_at"`
}

// Submission is the server acknowledgement of an assignment submission.
type Submission struct {
	ID            int64  `json:"id"`
	AssignmentID  int64  `json:"assignment_id,omitempty"`
	UserID        int64  `json:"user_id,omitempty"`
	Attempt       *int   `json:"attempt,omitempty"`
	WorkflowState string `json:"workflow_state,omitempty"`
	SubmittedAt   string `json:"submitted_at,omitempty"`
}
