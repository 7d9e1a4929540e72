package canvas

import (
	"errors"
	"fmt"
)

// Kind classifies a transport failure.
type Kind string

const (
	// Unreachable means no HTTP response was received (DNS, connect, reset).
	Unreachable Kind = "unreachable"
	// ServerRejected means the server answered with a non-2xx status.
	ServerRejected Kind = "server rejected"
	// MalformedResponse means a 2xx body did not decode into the expected shape.
	MalformedResponse Kind = "malformed response"
)

// Error represents a failed Canvas API call.
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("canvas %s: %s %s", e.Kind, e.Method, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: HTTP status %d", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Malformed builds a MalformedResponse error for a response that decoded
// but lacks a field the caller requires.
func Malformed(method, url, message string) *Error {
	return &Error{
		Kind:    MalformedResponse,
		Method:  method,
		URL:     url,
		Message: message,
	}
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsUnreachable reports whether err is a transport failure with no response.
func IsUnreachable(err error) bool { return isKind(err, Unreachable) }

// IsServerRejected reports whether err is a non-2xx response.
func IsServerRejected(err error) bool { return isKind(err, ServerRejected) }

// IsMalformedResponse reports whether err is an undecodable 2xx response.
func IsMalformedResponse(err error) bool { return isKind(err, MalformedResponse) }
