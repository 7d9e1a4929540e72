package submission

import (
	"errors"
	"fmt"
)

// ErrNoPendingState means a stage was invoked before the stage it depends on.
var ErrNoPendingState = errors.New("no pending submission state")

var (
	// ErrNoPendingUpload means commit ran with no registered upload.
	ErrNoPendingUpload = fmt.Errorf("%w: no file has been added (run 'canva add <file>' first)", ErrNoPendingState)
	// ErrNoPendingCommit means submit ran with no committed upload.
	ErrNoPendingCommit = fmt.Errorf("%w: no file has been committed (run 'canva commit' first)", ErrNoPendingState)
	// ErrMissingUploadParams means the stored upload intent has no content type.
	ErrMissingUploadParams = errors.New("stored upload intent has no content_type in upload_params (run 'canva add <file>' again)")
)

// FileNotFoundError represents a local file that cannot be resolved or read.
type FileNotFoundError struct {
	Path  string
	Cause error
}

func (e *FileNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file not found: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Cause
}

// InvalidRequestError represents submission arguments that fail validation.
type InvalidRequestError struct {
	Message string
	Cause   error
}

func (e *InvalidRequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid submission request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid submission request: %s", e.Message)
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Cause
}
