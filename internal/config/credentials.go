package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/canva/internal/state"
	"github.com/joho/godotenv"
)

const (
	// EnvToken holds the bearer token.
	EnvToken = "CANVAS_AUTH_TOKEN"
	// EnvBaseURL holds the school base URL, e.g. https://school.instructure.com.
	EnvBaseURL = "SCHOOL_BASE_URL"
	// CredentialsFile is the dotenv file name inside the state directory.
	CredentialsFile = "credentials.env"
)

// ErrCredentialsMissing means no token or base URL is available.
var ErrCredentialsMissing = errors.New("credentials missing (run 'canva login' or set " + EnvToken + " and " + EnvBaseURL + ")")

// Credentials are the bearer token and base URL used for every API call.
type Credentials struct {
	Token   string `validate:"required"`
	BaseURL string `validate:"required,url"`
}

// Validate validates the credentials using struct tags.
func (c *Credentials) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// CredentialsPath returns the credentials file path inside dir.
func CredentialsPath(dir string) string {
	return filepath.Join(dir, CredentialsFile)
}

// LoadCredentials reads the credentials file in dir. Environment variables of
// the same names take precedence over the file, and a missing file is fine
// when the environment supplies both values.
func LoadCredentials(dir string) (*Credentials, error) {
	values := map[string]string{}
	path := CredentialsPath(dir)
	if _, err := os.Stat(path); err == nil {
		values, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat credentials file %s: %w", path, err)
	}

	if v := os.Getenv(EnvToken); v != "" {
		values[EnvToken] = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		values[EnvBaseURL] = v
	}

	token := strings.TrimSpace(values[EnvToken])
	rawURL := values[EnvBaseURL]
	if token == "" || strings.TrimSpace(rawURL) == "" {
		return nil, ErrCredentialsMissing
	}

	baseURL, err := NormalizeBaseURL(rawURL)
	if err != nil {
		return nil, err
	}

	creds := &Credentials{Token: token, BaseURL: baseURL}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}
	return creds, nil
}

// SaveCredentials writes creds to the credentials file in dir with mode 0600.
func SaveCredentials(dir string, creds *Credentials) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	content, err := godotenv.Marshal(map[string]string{
		EnvToken:   creds.Token,
		EnvBaseURL: creds.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	path := CredentialsPath(dir)
	if err := state.WriteFileAtomic(path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", path, err)
	}
	return nil
}

// DeleteCredentials removes the credentials file. A missing file is not an error.
func DeleteCredentials(dir string) error {
	path := CredentialsPath(dir)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file %s: %w", path, err)
	}
	return nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and defaults the
// scheme to https.
func NormalizeBaseURL(raw string) (string, error) {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return "", fmt.Errorf("base URL is empty")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	return s, nil
}
