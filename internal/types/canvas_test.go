//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_KeepsUnknownFields(t *testing.T) {
	input := `{
		"id": 9001,
		"name": "Ada Lovelace",
		"created_at": "2023-08-21T10:00:00-04:00",
		"locale": null,
		"permissions": {"can_update_name": true}
	}`

	var account Account
	require.NoError(t, json.Unmarshal([]byte(input), &account))

	assert.Equal(t, int64(9001), account.ID)
	assert.Equal(t, "Ada Lovelace", account.Name)
	assert.Equal(t, "2023-08-21T10:00:00-04:00", account.CreatedAt)
	require.Contains(t, account.Extra, "permissions")
	assert.Contains(t, account.Extra, "locale")
	assert.NotContains(t, account.Extra, "name")

	data, err := json.Marshal(account)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"permissions":{"can_update_name":true}`)
	assert.Contains(t, string(data), `"name":"Ada Lovelace"`)
}

func TestCourse_NullableFields(t *testing.T) {
	input := `[
		{"id": 1, "name": "Algebra", "course_code": "MA101", "enrollments": []},
		{"id": 2, "name": null, "course_code": "X"},
		{"id": 3, "access_restricted_by_date": true}
	]`

	var courses []Course
	require.NoError(t, json.Unmarshal([]byte(input), &courses))
	require.Len(t, courses, 3)

	require.NotNil(t, courses[0].Name)
	assert.Equal(t, "Algebra", *courses[0].Name)
	assert.Contains(t, courses[0].Extra, "enrollments")

	assert.Nil(t, courses[1].Name)
	require.NotNil(t, courses[1].CourseCode)

	assert.Nil(t, courses[2].Name)
	assert.Nil(t, courses[2].CourseCode)
	assert.Contains(t, courses[2].Extra, "access_restricted_by_date")
}

func TestAssignment_Decode(t *testing.T) {
	input := `{"id": 5, "name": "Essay", "due_at": null, "points_possible": 10, "rubric": []}`

	var assignment Assignment
	require.NoError(t, json.Unmarshal([]byte(input), &assignment))

	require.NotNil(t, assignment.ID)
	assert.Equal(t, int64(5), *assignment.ID)
	assert.Nil(t, assignment.DueAt)
	require.NotNil(t, assignment.PointsPossible)
	assert.Equal(t, 10.0, *assignment.PointsPossible)
	assert.Contains(t, assignment.Extra, "rubric")
}

func TestExtra_StringMissingKey(t *testing.T) {
	var e Extra
	_, ok := e.String("anything")
	assert.False(t, ok)
}
