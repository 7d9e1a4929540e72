package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jonathan/canva/internal/canvas"
	"github.com/jonathan/canva/internal/config"
	"github.com/jonathan/canva/internal/courses"
	"github.com/jonathan/canva/internal/observability"
	"github.com/jonathan/canva/internal/state"
	"github.com/jonathan/canva/internal/submission"
	"github.com/spf13/cobra"
)

// InputError reports a bad command-line argument.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// parseID parses a positive numeric id argument.
func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &InputError{Message: fmt.Sprintf("%s must be a positive integer, got %q", name, raw), Cause: err}
	}
	if id <= 0 {
		return 0, &InputError{Message: fmt.Sprintf("%s must be a positive integer, got %q", name, raw)}
	}
	return id, nil
}

// session carries what every command resolves before doing work.
type session struct {
	settings config.Config
	stateDir string
	logger   *log.Logger
	printer  *observability.Printer
}

func newSession(cmd *cobra.Command) (*session, error) {
	settings := config.Config{}
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		settings = *cfg
	}
	settings = settings.MergeWithDefaults(config.Config{BaseURL: os.Getenv(config.EnvBaseURL)})

	dir, err := config.ResolveStateDir(stateDirFlag, &settings)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(verbose || settings.Verbose, cmd.ErrOrStderr())
	logger.Printf("state dir: %s", dir)

	return &session{
		settings: settings,
		stateDir: dir,
		logger:   logger,
		printer:  observability.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

func (s *session) newClient(creds *config.Credentials) *canvas.Client {
	opts := canvas.DefaultOptions()
	opts.Logger = s.logger
	return canvas.NewClient(creds.BaseURL, creds.Token, opts)
}

// client builds a transport from the stored credentials.
func (s *session) client() (*canvas.Client, error) {
	creds, err := config.LoadCredentials(s.stateDir)
	if err != nil {
		return nil, err
	}
	return s.newClient(creds), nil
}

func (s *session) fetcher() (*courses.Fetcher, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	return courses.NewFetcher(client, s.logger), nil
}

func (s *session) workflow(needsClient bool) (*submission.Workflow, error) {
	var poster submission.Poster
	if needsClient {
		client, err := s.client()
		if err != nil {
			return nil, err
		}
		poster = client
	}
	return submission.NewWorkflow(poster, state.NewStore(s.stateDir), s.logger), nil
}
