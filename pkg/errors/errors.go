package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of failure categories a method can report
type Kind string

const (
	KindAuthRequired        Kind = "auth_required"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindMalformedResponse   Kind = "malformed_response"
	KindInvalidInput        Kind = "invalid_input"
)

// loginRequiredMarker is matched case-insensitively against untyped errors
const loginRequiredMarker = "login required"

// Error represents a classified failure
type Error struct {
	Kind    Kind
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error
func New(kind Kind, code int, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Code:    code,
	}
}

// Wrap classifies err under kind with an additional message
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// AuthRequired is a shortcut for the login wall error
func AuthRequired(code int) *Error {
	return New(KindAuthRequired, code, "Login required")
}

// InvalidInput is a shortcut for setup and argument errors
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, 0, message)
}

// KindOf classifies any error. Typed errors report their own kind; untyped
// errors carrying the login-required phrase count as auth failures and
// everything else as an unavailable upstream.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	if MentionsLogin(err.Error()) {
		return KindAuthRequired
	}

	return KindUpstreamUnavailable
}

// MentionsLogin reports whether msg carries the login-required phrase
func MentionsLogin(msg string) bool {
	return strings.Contains(strings.ToLower(msg), loginRequiredMarker)
}

// RequiresLogin reports whether err is an authentication wall
func RequiresLogin(err error) bool {
	return KindOf(err) == KindAuthRequired
}

// Message returns the human readable part of err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Err == nil {
		return e.Message
	}
	return err.Error()
}

// StatusCode returns the upstream status code attached to err, if any
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Kind != KindUpstreamUnavailable {
		return false
	}
	return IsRetryableStatusCode(e.Code)
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
