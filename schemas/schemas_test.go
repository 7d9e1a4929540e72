package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_DescribeEnvelope(t *testing.T) {
	for _, schemaFile := range Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := FS.ReadFile(schemaFile)
			require.NoError(t, err)

			var schemaObj struct {
				Schema     string                     `json:"$schema"`
				Type       string                     `json:"type"`
				Required   []string                   `json:"required"`
				Properties map[string]json.RawMessage `json:"properties"`
			}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.NotEmpty(t, schemaObj.Schema)
			assert.Equal(t, "object", schemaObj.Type)
			assert.ElementsMatch(t, []string{"version", "kind", "run_id", "saved_at", "data"}, schemaObj.Required)
			assert.Contains(t, schemaObj.Properties, "data")
		})
	}
}
