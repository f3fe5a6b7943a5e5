package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the machine-checkable classification of a domain error
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindWindowLocked ErrorKind = "window_locked" // Forbidden specialization with its own user-facing reason
	KindConflict     ErrorKind = "conflict"      // uniqueness violation or invalid state transition
	KindValidation   ErrorKind = "validation"
	KindInternal     ErrorKind = "internal"
)

// Error is a recoverable, caller-visible outcome. Every error carries a
// kind plus a human-readable message; validation errors also enumerate the
// offending fields.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []string
	cause   error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s (fields: %s)", e.Kind, e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is lets errors.Is match on kind sentinels created with the constructors
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// WithCause attaches an underlying error for logging without changing the
// caller-visible kind or message
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// NotFound constructs a not-found error
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden constructs a permission-denied error
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// WindowLocked constructs a blackout-window denial with its reason
func WindowLocked(reason string) *Error {
	return &Error{Kind: KindWindowLocked, Message: reason}
}

// Conflict constructs a uniqueness or state-transition conflict
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Invalid constructs a validation error naming the offending fields
func Invalid(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Internal wraps an unexpected failure
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// KindOf extracts the kind from any error chain; unknown errors are internal
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
