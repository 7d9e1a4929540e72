package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/canva/internal/config"
	"github.com/stretchr/testify/assert"
)

// runCLI executes the root command in-process and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	configPath = ""
	stateDirFlag = ""
	verbose = false
	submitKeep = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// fakeCanvas is an in-memory Canvas instance that records requests.
type fakeCanvas struct {
	t      *testing.T
	server *httptest.Server
	token  string

	mu          sync.Mutex
	requests    []string
	uploadFails bool
	submitted   []map[string][]string
}

func newFakeCanvas(t *testing.T) *fakeCanvas {
	t.Helper()
	fc := &fakeCanvas{t: t, token: "test-token"}
	fc.server = httptest.NewServer(http.HandlerFunc(fc.handle))
	t.Cleanup(fc.server.Close)
	return fc
}

// useEnv points the CLI at the fake through env credentials and a temp state dir.
func (fc *fakeCanvas) useEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvToken, fc.token)
	t.Setenv(config.EnvBaseURL, fc.server.URL)
	return dir
}

func (fc *fakeCanvas) requestCount() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.requests)
}

func (fc *fakeCanvas) handle(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.requests = append(fc.requests, r.Method+" "+r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer "+fc.token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	write := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(fc.t, json.NewEncoder(w).Encode(v))
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/users/self":
		write(map[string]any{"id": 7, "name": "Ada Lovelace", "created_at": "2020-09-01T00:00:00Z"})
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/courses":
		write([]map[string]any{
			{"id": 1, "name": "Algebra", "course_code": "MA101"},
			{"id": 2, "name": nil, "course_code": "X"},
		})
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/courses/1/assignments":
		write([]map[string]any{
			{"id": 20, "name": "Essay", "due_at": "2024-05-01T23:59:00Z"},
			{"id": 21, "name": "Reading", "due_at": nil},
		})
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/users/self/files":
		write(map[string]any{
			"upload_url":    fc.server.URL + "/upload",
			"upload_params": map[string]any{"filename": "f.pdf", "content_type": "application/pdf"},
		})
	case r.Method == http.MethodPost && r.URL.Path == "/upload":
		if fc.uploadFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		write(map[string]any{"id": 42, "display_name": "f.pdf"})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/submissions"):
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fc.submitted = append(fc.submitted, r.MultipartForm.Value)
		write(map[string]any{"id": 900, "workflow_state": "submitted"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (fc *fakeCanvas) setUploadFails(fail bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.uploadFails = fail
}

func (fc *fakeCanvas) submissions() []map[string][]string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]map[string][]string(nil), fc.submitted...)
}
