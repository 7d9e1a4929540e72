package canvas

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

type formField struct {
	name  string
	value string
}

type filePart struct {
	field    string
	filename string
	content  io.Reader
}

// Form is an ordered multipart form. Text fields are written in insertion
// order and the file part, if any, is always written last.
type Form struct {
	fields []formField
	file   *filePart
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends a text field. Repeated names are sent as repeated fields.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// SetFile attaches file content under field with the given filename.
func (f *Form) SetFile(field, filename string, content io.Reader) *Form {
	f.file = &filePart{field: field, filename: filename, content: content}
	return f
}

// Get returns all values for a text field.
func (f *Form) Get(name string) []string {
	var values []string
	for _, field := range f.fields {
		if field.name == name {
			values = append(values, field.value)
		}
	}
	return values
}

// Names returns the text field names in send order.
func (f *Form) Names() []string {
	names := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		names = append(names, field.name)
	}
	return names
}

// File returns the attached file part, if any.
func (f *Form) File() (field, filename string, content io.Reader, ok bool) {
	if f.file == nil {
		return "", "", nil, false
	}
	return f.file.field, f.file.filename, f.file.content, true
}

// encode renders the form as a multipart body.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field.name, err)
		}
	}

	if f.file != nil {
		part, err := w.CreateFormFile(f.file.field, f.file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, f.file.content); err != nil {
			return nil, "", fmt.Errorf("failed to copy file content: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
