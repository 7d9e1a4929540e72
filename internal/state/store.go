// Package state persists submission workflow records between CLI invocations.
// Each record kind occupies a single slot on disk, overwritten wholesale by
// an atomic write and validated against its embedded schema on load.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/canva/internal/schemas"
	schemafiles "github.com/jonathan/canva/schemas"
)

// Version is the envelope format written by this build.
const Version = 1

// Kind names a persisted record slot.
type Kind string

const (
	// KindUploadIntent is the output of registering an upload.
	KindUploadIntent Kind = "upload_intent"
	// KindCommitResult is the output of committing an upload.
	KindCommitResult Kind = "commit_result"
)

// LockFile is the name of the workflow lock inside the state dir.
const LockFile = "workflow.lock"

// ErrNotFound is returned by Load when the slot is empty.
var ErrNotFound = errors.New("state record not found")

// CorruptStateError represents a state file that exists but cannot be used.
type CorruptStateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CorruptStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt state file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("corrupt state file %s: %s", e.Path, e.Message)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Cause
}

// Envelope wraps every persisted record.
type Envelope struct {
	Version int             `json:"version"`
	Kind    Kind            `json:"kind"`
	RunID   uuid.UUID       `json:"run_id"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// Store reads and writes records in a state directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the state directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing a record kind.
func (s *Store) Path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

func schemaFor(kind Kind) (string, error) {
	switch kind {
	case KindUploadIntent:
		return schemafiles.UploadIntent, nil
	case KindCommitResult:
		return schemafiles.CommitResult, nil
	default:
		return "", fmt.Errorf("unknown state kind %q", kind)
	}
}

// Save atomically replaces the record for kind with v.
func (s *Store) Save(kind Kind, runID uuid.UUID, v any) error {
	if _, err := schemaFor(kind); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	envelope := Envelope{
		Version: Version,
		Kind:    kind,
		RunID:   runID,
		SavedAt: s.now().UTC(),
		Data:    data,
	}
	encoded, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", kind, err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := WriteFileAtomic(s.Path(kind), encoded, 0o600); err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}

// Load decodes the record for kind into v and returns its envelope.
// It returns ErrNotFound if the slot is empty.
func (s *Store) Load(kind Kind, v any) (*Envelope, error) {
	schemaName, err := schemaFor(kind)
	if err != nil {
		return nil, err
	}

	path := s.Path(kind)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, &CorruptStateError{Path: path, Message: "not valid JSON"}
	}
	if err := schemas.ValidateEmbedded(schemaName, data); err != nil {
		return nil, &CorruptStateError{Path: path, Message: "schema mismatch", Cause: err}
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &CorruptStateError{Path: path, Message: "failed to decode envelope", Cause: err}
	}
	if envelope.Version != Version || envelope.Kind != kind {
		return nil, &CorruptStateError{
			Path:    path,
			Message: fmt.Sprintf("expected %s v%d, found %s v%d", kind, Version, envelope.Kind, envelope.Version),
		}
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return nil, &CorruptStateError{Path: path, Message: "failed to decode record", Cause: err}
	}
	return &envelope, nil
}

// Exists reports whether a record is stored for kind.
func (s *Store) Exists(kind Kind) bool {
	_, err := os.Stat(s.Path(kind))
	return err == nil
}

// Clear removes the record for kind. Clearing an empty slot is not an error.
func (s *Store) Clear(kind Kind) error {
	if err := os.Remove(s.Path(kind)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear %s: %w", kind, err)
	}
	return nil
}

// Lock takes the exclusive workflow lock, blocking until it is available.
func (s *Store) Lock() (*FileLock, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	lock, err := Acquire(filepath.Join(s.dir, LockFile))
	if err != nil {
		return nil, fmt.Errorf("failed to lock state directory: %w", err)
	}
	return lock, nil
}
