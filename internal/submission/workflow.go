// Package submission implements the three-stage file submission workflow:
// register an upload, commit the file bytes, and attach the file to an
// assignment. Each stage runs in its own process and hands its result to the
// next stage through the state store. A failed stage never modifies the
// record left by the stage before it.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/canva/internal/canvas"
	"github.com/jonathan/canva/internal/state"
	"github.com/jonathan/canva/internal/types"
)

// RegisterPath is where upload intents are registered, relative to the base URL.
const RegisterPath = "/api/v1/users/self/files"

const submissionsPath = "/api/v1/courses/%d/assignments/%d/submissions"

// SubmissionsPath returns the submission endpoint for an assignment.
func SubmissionsPath(courseID, assignmentID int64) string {
	return fmt.Sprintf(submissionsPath, courseID, assignmentID)
}

// Poster issues authenticated multipart POSTs. *canvas.Client satisfies it.
type Poster interface {
	PostForm(ctx context.Context, target string, form *canvas.Form, out any) error
}

// Stage is the workflow position derived from the stored records.
type Stage string

const (
	StageIdle       Stage = "Idle"
	StageRegistered Stage = "Registered"
	StageCommitted  Stage = "Committed"
)

// Status describes the pending workflow records.
type Status struct {
	Stage   Stage
	RunID   uuid.UUID
	SavedAt time.Time
	Intent  *types.UploadIntent
	Commit  *types.CommitResult
}

// SubmitOptions configures the final stage.
type SubmitOptions struct {
	// Keep leaves the commit record in place so the same file can be
	// attached to another assignment.
	Keep bool
}

// Workflow runs the submission stages against one state store.
type Workflow struct {
	client   Poster
	store    *state.Store
	logger   *log.Logger
	newRunID func() uuid.UUID
}

// NewWorkflow creates a workflow. A nil logger discards output.
func NewWorkflow(client Poster, store *state.Store, logger *log.Logger) *Workflow {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Workflow{
		client:   client,
		store:    store,
		logger:   logger,
		newRunID: uuid.New,
	}
}

// Register resolves filePath, registers an upload intent with the server, and
// stores the intent. Nothing is written unless every step succeeds.
func (w *Workflow) Register(ctx context.Context, filePath string) (*types.UploadIntent, error) {
	resolved, info, err := resolveFile(filePath)
	if err != nil {
		return nil, err
	}
	parentPath := filepath.Dir(resolved)
	fileName := filepath.Base(resolved)

	lock, err := w.store.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	form := canvas.NewForm().
		Set("size", strconv.FormatInt(info.Size(), 10)).
		Set("parent_folder_path", parentPath).
		Set("file", fileName)

	var resp types.FileUploadResponse
	if err := w.client.PostForm(ctx, RegisterPath, form, &resp); err != nil {
		return nil, fmt.Errorf("failed to register upload: %w", err)
	}
	if resp.UploadURL == "" {
		return nil, canvas.Malformed(http.MethodPost, RegisterPath, "response has no upload_url")
	}

	intent := &types.UploadIntent{
		UploadURL:  resp.UploadURL,
		FileName:   fileName,
		ParentPath: parentPath,
	}
	if resp.UploadParams != nil {
		intent.UploadParams = *resp.UploadParams
	}
	if err := intent.Validate(); err != nil {
		return nil, &canvas.Error{
			Kind:    canvas.MalformedResponse,
			Method:  http.MethodPost,
			URL:     RegisterPath,
			Message: "upload intent failed validation",
			Cause:   err,
		}
	}

	runID := w.newRunID()
	if err := w.store.Save(state.KindUploadIntent, runID, intent); err != nil {
		return nil, err
	}
	w.logger.Printf("[%s] registered upload of %s (%d bytes)", runID, resolved, info.Size())
	return intent, nil
}

// Commit sends the registered file to the upload URL and stores the
// server-assigned file id. The intent is cleared only after the commit
// record is saved.
func (w *Workflow) Commit(ctx context.Context) (*types.CommitResult, error) {
	lock, err := w.store.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	var intent types.UploadIntent
	envelope, err := w.store.Load(state.KindUploadIntent, &intent)
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrNoPendingUpload
	}
	if err != nil {
		return nil, err
	}
	if intent.UploadParams.ContentType == "" {
		return nil, ErrMissingUploadParams
	}

	localPath := filepath.Join(intent.ParentPath, intent.FileName)
	file, err := os.Open(localPath)
	if err != nil {
		return nil, &FileNotFoundError{Path: localPath, Cause: err}
	}
	defer func() { _ = file.Close() }()

	var raw json.RawMessage
	if err := w.client.PostForm(ctx, intent.UploadURL, commitForm(&intent, file), &raw); err != nil {
		return nil, fmt.Errorf("failed to commit upload: %w", err)
	}

	result, err := commitResultFrom(raw)
	if err != nil {
		return nil, &canvas.Error{
			Kind:    canvas.MalformedResponse,
			Method:  http.MethodPost,
			URL:     intent.UploadURL,
			Message: "unexpected upload response",
			Cause:   err,
		}
	}

	if err := w.store.Save(state.KindCommitResult, envelope.RunID, result); err != nil {
		return nil, err
	}
	if err := w.store.Clear(state.KindUploadIntent); err != nil {
		w.logger.Printf("[%s] warning: %v", envelope.RunID, err)
	}
	w.logger.Printf("[%s] committed %s as file %d", envelope.RunID, intent.FileName, result.FileID)
	return result, nil
}

// Submit attaches the committed file to an assignment. The commit record is
// cleared on success unless opts.Keep is set.
func (w *Workflow) Submit(ctx context.Context, courseID, assignmentID int64, opts SubmitOptions) (*types.Submission, error) {
	lock, err := w.store.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	var commit types.CommitResult
	envelope, err := w.store.Load(state.KindCommitResult, &commit)
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrNoPendingCommit
	}
	if err != nil {
		return nil, err
	}

	req := types.SubmissionRequest{
		CourseID:     courseID,
		AssignmentID: assignmentID,
		FileID:       commit.FileID,
	}
	if err := req.Validate(); err != nil {
		return nil, &InvalidRequestError{Message: "course, assignment, and file ids must be positive", Cause: err}
	}

	form := canvas.NewForm()
	for _, field := range req.FormFields() {
		form.Set(field[0], field[1])
	}

	var ack types.Submission
	if err := w.client.PostForm(ctx, SubmissionsPath(courseID, assignmentID), form, &ack); err != nil {
		return nil, fmt.Errorf("failed to submit file %d: %w", commit.FileID, err)
	}

	if !opts.Keep {
		if err := w.store.Clear(state.KindCommitResult); err != nil {
			w.logger.Printf("[%s] warning: %v", envelope.RunID, err)
		}
	}
	w.logger.Printf("[%s] submitted file %d to course %d assignment %d", envelope.RunID, commit.FileID, courseID, assignmentID)
	return &ack, nil
}

// Status reports the pending records without touching the network.
func (w *Workflow) Status() (*Status, error) {
	status := &Status{Stage: StageIdle}

	var intent types.UploadIntent
	envelope, err := w.store.Load(state.KindUploadIntent, &intent)
	switch {
	case err == nil:
		status.Stage = StageRegistered
		status.RunID = envelope.RunID
		status.SavedAt = envelope.SavedAt
		status.Intent = &intent
	case !errors.Is(err, state.ErrNotFound):
		return nil, err
	}

	var commit types.CommitResult
	envelope, err = w.store.Load(state.KindCommitResult, &commit)
	switch {
	case err == nil:
		status.Stage = StageCommitted
		status.RunID = envelope.RunID
		status.SavedAt = envelope.SavedAt
		status.Commit = &commit
	case !errors.Is(err, state.ErrNotFound):
		return nil, err
	}

	return status, nil
}

// resolveFile returns the absolute, symlink-free path of a readable regular file.
func resolveFile(filePath string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", nil, &FileNotFoundError{Path: filePath, Cause: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", nil, &FileNotFoundError{Path: filePath, Cause: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, &FileNotFoundError{Path: filePath, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return "", nil, &FileNotFoundError{Path: filePath, Cause: errors.New("not a regular file")}
	}
	f, err := os.Open(resolved)
	if err != nil {
		return "", nil, &FileNotFoundError{Path: filePath, Cause: err}
	}
	_ = f.Close()
	return resolved, info, nil
}

// commitForm builds the upload form: folder and content type, the filename,
// any other server-issued params in key order, then the file itself.
func commitForm(intent *types.UploadIntent, content io.Reader) *canvas.Form {
	params := intent.UploadParams
	form := canvas.NewForm().
		Set("parent_folder_path", intent.ParentPath).
		Set("content_type", params.ContentType)
	if params.Filename != "" {
		form.Set("filename", params.Filename)
	}

	keys := make([]string, 0, len(params.Extra))
	for key := range params.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value, _ := params.Extra.String(key)
		form.Set(key, value)
	}

	return form.SetFile("file", intent.FileName, content)
}

func commitResultFrom(raw json.RawMessage) (*types.CommitResult, error) {
	var uploaded types.UploadedFile
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return nil, err
	}
	id, ok := uploaded.Identifier()
	if !ok || id <= 0 {
		return nil, errors.New("response has no file id")
	}
	return &types.CommitResult{
		FileID:      id,
		DisplayName: uploaded.DisplayName,
		ContentType: uploaded.ContentType,
		Size:        uploaded.Size,
		Metadata:    raw,
	}, nil
}
