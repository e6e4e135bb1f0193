package services

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned by stores when a document does not exist.
// Services translate it into a NotFound Error with an entity-specific
// message before it reaches a handler.
var ErrItemNotFound = errors.New("item not found")

// Kind classifies an Error for HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindNotFound
	KindForbidden
	KindInvalidInput
	KindConflict
)

// Error is the caller-facing error type of every service. Message is short
// and safe to show to users; Err carries the wrapped store error, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ForbiddenError(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidInputError(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func UnauthorizedError(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps an unexpected store failure. The wrapped error is
// logged at the handler boundary but never serialized to clients.
func InternalError(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for raw
// store errors that escaped translation.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the user-safe message for err.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return "Internal server error"
}
