package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/canva/internal/canvas"
	"github.com/jonathan/canva/internal/config"
	"github.com/jonathan/canva/internal/state"
	"github.com/jonathan/canva/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_PrintsUsage(t *testing.T) {
	output, err := runCLI(t, "", "help")
	require.NoError(t, err)
	assert.Contains(t, output, "Managing your account")
	assert.Contains(t, output, "submit <course_id> <assignment_id>")
}

func TestAccountCommand(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)

	output, err := runCLI(t, "", "account")
	require.NoError(t, err)
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "2020-09-01T00:00:00Z")
}

func TestCoursesCommand_DropsIncompleteCourses(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)

	output, err := runCLI(t, "", "courses")
	require.NoError(t, err)
	assert.Contains(t, output, "MA101")
	assert.Contains(t, output, "Algebra")
	assert.NotContains(t, output, "X ")
}

func TestAssignmentsCommand(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)

	output, err := runCLI(t, "", "assignments", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Essay")
	assert.Contains(t, output, "05-01-2024")
	assert.NotContains(t, output, "Reading")
}

func TestAssignmentsCommand_UnknownCourse(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)

	_, err := runCLI(t, "", "assignments", "999")
	require.Error(t, err)
	assert.True(t, canvas.IsServerRejected(err))
}

func TestCommands_ArgumentValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "courses takes no args", args: []string{"courses", "extra"}, errorString: "accepts 0 arg(s)"},
		{name: "assignments needs a course", args: []string{"assignments"}, errorString: "accepts 1 arg(s)"},
		{name: "assignments id not numeric", args: []string{"assignments", "abc"}, errorString: "course_id must be a positive integer"},
		{name: "assignments id not positive", args: []string{"assignments", "0"}, errorString: "course_id must be a positive integer"},
		{name: "add needs a file", args: []string{"add"}, errorString: "accepts 1 arg(s)"},
		{name: "commit takes no args", args: []string{"commit", "message"}, errorString: "accepts 0 arg(s)"},
		{name: "submit needs two ids", args: []string{"submit", "10"}, errorString: "accepts 2 arg(s)"},
		{name: "submit assignment id not numeric", args: []string{"submit", "10", "x"}, errorString: "assignment_id must be a positive integer"},
	}

	fc := newFakeCanvas(t)
	fc.useEnv(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
	assert.Equal(t, 0, fc.requestCount(), "argument errors must not reach the network")
}

func TestMalformedID_IsInputError(t *testing.T) {
	_, err := runCLI(t, "", "submit", "ten", "20")
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestCommands_MissingCredentials(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvBaseURL, "")

	for _, args := range [][]string{{"account"}, {"courses"}, {"commit"}} {
		_, err := runCLI(t, "", args...)
		assert.ErrorIs(t, err, config.ErrCredentialsMissing, "args %v", args)
	}
}

func TestSubmissionFlow(t *testing.T) {
	fc := newFakeCanvas(t)
	dir := fc.useEnv(t)
	file := filepath.Join(t.TempDir(), "f.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF-1.7"), 0o644))

	output, err := runCLI(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Idle")

	output, err = runCLI(t, "", "add", file)
	require.NoError(t, err)
	assert.Contains(t, output, "Added f.pdf")

	output, err = runCLI(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Registered")

	output, err = runCLI(t, "", "commit")
	require.NoError(t, err)
	assert.Contains(t, output, "Committed file 42")

	output, err = runCLI(t, "", "submit", "10", "20")
	require.NoError(t, err)
	assert.Contains(t, output, "File submitted successfully!")

	submitted := fc.submissions()
	require.Len(t, submitted, 1)
	assert.Equal(t, []string{"42"}, submitted[0]["submission[file_ids][]"])
	assert.Equal(t, []string{"online_upload"}, submitted[0]["submission[submission_type]"])

	store := state.NewStore(dir)
	assert.False(t, store.Exists(state.KindUploadIntent))
	assert.False(t, store.Exists(state.KindCommitResult))

	_, err = runCLI(t, "", "submit", "10", "20")
	assert.ErrorIs(t, err, submission.ErrNoPendingState)
}

func TestSubmitKeep(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)
	file := filepath.Join(t.TempDir(), "f.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := runCLI(t, "", "add", file)
	require.NoError(t, err)
	_, err = runCLI(t, "", "commit")
	require.NoError(t, err)

	output, err := runCLI(t, "", "submit", "--keep", "10", "20")
	require.NoError(t, err)
	assert.Contains(t, output, "kept")

	_, err = runCLI(t, "", "submit", "11", "21")
	require.NoError(t, err)
	assert.Len(t, fc.submissions(), 2)
}

func TestCommitCommand_WithoutAdd(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)

	_, err := runCLI(t, "", "commit")
	assert.ErrorIs(t, err, submission.ErrNoPendingState)
	assert.Equal(t, 0, fc.requestCount())
}

func TestCommitCommand_ServerErrorThenRetry(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)
	file := filepath.Join(t.TempDir(), "f.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := runCLI(t, "", "add", file)
	require.NoError(t, err)

	fc.setUploadFails(true)
	_, err = runCLI(t, "", "commit")
	require.Error(t, err)
	assert.True(t, canvas.IsServerRejected(err))

	fc.setUploadFails(false)
	output, err := runCLI(t, "", "commit")
	require.NoError(t, err)
	assert.Contains(t, output, "Committed file 42")
}

func TestAddCommand_MissingFile(t *testing.T) {
	fc := newFakeCanvas(t)
	fc.useEnv(t)

	_, err := runCLI(t, "", "add", "/nonexistent")
	var notFound *submission.FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, fc.requestCount())
}

func TestLoginAndLogout(t *testing.T) {
	fc := newFakeCanvas(t)
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvBaseURL, "")

	output, err := runCLI(t, fc.server.URL+"/\n"+fc.token+"\n", "login")
	require.NoError(t, err)
	assert.Contains(t, output, "Successfully logged in!")
	assert.NotContains(t, output, fc.token, "token must not be echoed")

	creds, err := config.LoadCredentials(dir)
	require.NoError(t, err)
	assert.Equal(t, fc.server.URL, creds.BaseURL)
	assert.Equal(t, fc.token, creds.Token)

	output, err = runCLI(t, "", "account")
	require.NoError(t, err)
	assert.Contains(t, output, "Ada Lovelace")

	_, err = runCLI(t, "", "logout")
	require.NoError(t, err)
	_, err = runCLI(t, "", "logout")
	require.NoError(t, err)

	_, err = os.Stat(config.CredentialsPath(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestLogin_RejectedTokenSavesNothing(t *testing.T) {
	fc := newFakeCanvas(t)
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvBaseURL, "")

	_, err := runCLI(t, fc.server.URL+"\nwrong-token\n", "login")
	require.Error(t, err)
	assert.True(t, canvas.IsServerRejected(err))

	_, statErr := os.Stat(config.CredentialsPath(dir))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogin_EmptyToken(t *testing.T) {
	fc := newFakeCanvas(t)
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvBaseURL, "")

	_, err := runCLI(t, fc.server.URL+"\n\n", "login")
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 0, fc.requestCount())
}

func TestStateDirFlag_OverridesEnv(t *testing.T) {
	fc := newFakeCanvas(t)
	envDir := fc.useEnv(t)
	flagDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "f.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := runCLI(t, "", "--state-dir", flagDir, "add", file)
	require.NoError(t, err)

	assert.True(t, state.NewStore(flagDir).Exists(state.KindUploadIntent))
	assert.False(t, state.NewStore(envDir).Exists(state.KindUploadIntent))
}

func TestConfigFile_SetsBaseURLDefault(t *testing.T) {
	fc := newFakeCanvas(t)
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvToken, "")
	t.Setenv(config.EnvBaseURL, "")

	settings := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"base_url": "`+fc.server.URL+`"}`), 0o644))

	output, err := runCLI(t, "\n"+fc.token+"\n", "--config", settings, "login")
	require.NoError(t, err)
	assert.Contains(t, output, "["+fc.server.URL+"]")

	creds, err := config.LoadCredentials(dir)
	require.NoError(t, err)
	assert.Equal(t, fc.server.URL, creds.BaseURL)
}
