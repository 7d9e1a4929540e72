// Package canvas provides the authenticated HTTP transport for the Canvas LMS REST API.
// Every call is a single attempt: there are no retries and no timeout beyond
// what the underlying HTTP client enforces.
package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "canva/1.0"

// Doer executes HTTP requests. *http.Client satisfies it; tests inject fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures the client.
type Options struct {
	HTTPClient Doer
	UserAgent  string
	Logger     *log.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		HTTPClient: &http.Client{},
		UserAgent:  DefaultUserAgent,
		Logger:     log.New(io.Discard, "", 0),
	}
}

// Client issues bearer-authenticated requests against one Canvas instance.
type Client struct {
	baseURL   string
	token     string
	doer      Doer
	userAgent string
	logger    *log.Logger
}

// NewClient creates a client for baseURL authenticating with token.
func NewClient(baseURL, token string, opts *Options) *Client {
	defaults := DefaultOptions()
	if opts == nil {
		opts = defaults
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = defaults.HTTPClient
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		doer:      opts.HTTPClient,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
}

// BaseURL returns the instance URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Resolve turns an API path into an absolute URL. Absolute URLs, such as
// server-supplied upload URLs, are returned unchanged.
func (c *Client) Resolve(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return c.baseURL + target
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, target string, out any) error {
	return c.do(ctx, http.MethodGet, c.Resolve(target), nil, "", out)
}

// PostForm issues a multipart POST and decodes the JSON response into out.
func (c *Client) PostForm(ctx context.Context, target string, form *Form, out any) error {
	resolved := c.Resolve(target)
	body, contentType, err := form.encode()
	if err != nil {
		return &Error{
			Kind:    Unreachable,
			Method:  http.MethodPost,
			URL:     redact(resolved),
			Message: "failed to encode form",
			Cause:   err,
		}
	}
	return c.do(ctx, http.MethodPost, resolved, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string, out any) error {
	shown := redact(target)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &Error{
			Kind:    Unreachable,
			Method:  method,
			URL:     shown,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Printf("%s %s failed after %s: %v", method, shown, time.Since(start).Round(time.Millisecond), err)
		return &Error{
			Kind:    Unreachable,
			Method:  method,
			URL:     shown,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Printf("%s %s -> %d (%s)", method, shown, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Error{
			Kind:       ServerRejected,
			Method:     method,
			URL:        shown,
			StatusCode: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Kind:       Unreachable,
			Method:     method,
			URL:        shown,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Cause:      err,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Kind:       MalformedResponse,
			Method:     method,
			URL:        shown,
			StatusCode: resp.StatusCode,
			Message:    describeDecodeError(err),
			Cause:      err,
		}
	}
	return nil
}

// redact strips the query string, which may carry signed upload credentials.
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("unexpected %s for field %s", typeErr.Value, typeErr.Field)
		}
		return fmt.Sprintf("unexpected %s", typeErr.Value)
	}
	return "invalid JSON"
}
