package types

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// SubmissionTypeOnlineUpload is the submission type used for file attachments.
const SubmissionTypeOnlineUpload = "online_upload"

// UploadParams describes how the file bytes must be sent to the upload URL.
// Params other than filename and content_type are kept in Extra and
// forwarded unchanged when the upload is committed.
type UploadParams struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Extra       Extra  `json:"-"`
}

var uploadParamFields = []string{"filename", "content_type"}

// UnmarshalJSON decodes the modeled params and keeps the rest in Extra.
func (p *UploadParams) UnmarshalJSON(data []byte) error {
	type plain UploadParams
	var pl plain
	if err := json.Unmarshal(data, &pl); err != nil {
		return err
	}
	extra, err := splitExtra(data, uploadParamFields)
	if err != nil {
		return err
	}
	*p = UploadParams(pl)
	p.Extra = extra
	return nil
}

// MarshalJSON re-encodes the params including Extra.
func (p UploadParams) MarshalJSON() ([]byte, error) {
	type plain UploadParams
	typed, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return joinExtra(typed, p.Extra)
}

// FileUploadResponse is the server reply to an upload registration.
type FileUploadResponse struct {
	UploadURL    string        `json:"upload_url"`
	UploadParams *UploadParams `json:"upload_params"`
}

// UploadIntent is the persisted result of registering an upload.
type UploadIntent struct {
	UploadURL    string       `json:"upload_url" validate:"required,url"`
	UploadParams UploadParams `json:"upload_params"`
	FileName     string       `json:"file_name" validate:"required"`
	ParentPath   string       `json:"parent_path" validate:"required"`
}

// Validate validates the UploadIntent using the validator.
func (u *UploadIntent) Validate() error {
	validate := validator.New()
	return validate.Struct(u)
}

// UploadedFile is the upload service's description of a stored file.
// Canvas reports the identifier as "id"; some proxies report "file_id".
type UploadedFile struct {
	ID          *int64 `json:"id"`
	FileID      *int64 `json:"file_id"`
	DisplayName string `json:"display_name"`
	ContentType string `json:"content-type"`
	Size        int64  `json:"size"`
}

// Identifier returns the server-assigned file id, if any.
func (f *UploadedFile) Identifier() (int64, bool) {
	switch {
	case f.ID != nil:
		return *f.ID, true
	case f.FileID != nil:
		return *f.FileID, true
	default:
		return 0, false
	}
}

// CommitResult is the persisted result of committing an upload.
// Metadata holds the upload service's full response.
type CommitResult struct {
	FileID      int64           `json:"file_id" validate:"required,gt=0"`
	DisplayName string          `json:"display_name,omitempty"`
	ContentType string          `json:"content_type,omitempty"`
	Size        int64           `json:"size,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// Validate validates the CommitResult using the validator.
func (c *CommitResult) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// SubmissionRequest attaches a committed file to an assignment. It is never persisted.
type SubmissionRequest struct {
	CourseID     int64 `validate:"required,gt=0"`
	AssignmentID int64 `validate:"required,gt=0"`
	FileID       int64 `validate:"required,gt=0"`
}

// Validate validates the SubmissionRequest using the validator.
func (r *SubmissionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FormFields returns the form fields in the order they are sent.
func (r *SubmissionRequest) FormFields() [][2]string {
	return [][2]string{
		{"submission[submission_type]", SubmissionTypeOnlineUpload},
		{"submission[file_ids][]", strconv.FormatInt(r.FileID, 10)},
	}
}
