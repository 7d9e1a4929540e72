// Package types provides type definitions for the Canvas records and workflow state used throughout the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Extra holds response fields the CLI does not model.
// Keys are preserved verbatim so records can be re-encoded without loss.
type Extra map[string]json.RawMessage

// splitExtra returns every top-level field of data whose key is not in known.
func splitExtra(data []byte, known []string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Extra(all), nil
}

// joinExtra merges extra into the JSON object typed. Typed fields win on conflict.
func joinExtra(typed []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return typed, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(typed, &merged); err != nil {
		return nil, fmt.Errorf("failed to merge extra fields: %w", err)
	}
	for key, value := range extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// String returns the value of key as a plain string. JSON strings are
// unquoted; any other JSON value is returned as its raw text.
func (e Extra) String(key string) (string, bool) {
	raw, ok := e[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}
