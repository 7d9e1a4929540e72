// Package schemas embeds the JSON Schemas for records the CLI persists to disk.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	UploadIntent = "upload_intent.schema.json"
	CommitResult = "commit_result.schema.json"
)

// Names lists every embedded schema.
func Names() []string {
	return []string{UploadIntent, CommitResult}
}
