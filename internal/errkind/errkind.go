// Package errkind defines the domain error kinds surfaced by drill.
// All of them are recoverable at the command boundary: they are printed as a
// single line and the process exits with a non-fatal status.
package errkind

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies a specific domain error kind.
type Code string

const (
	// CodeDeckNotFound indicates the requested deck does not exist.
	CodeDeckNotFound Code = "DECK_NOT_FOUND"
	// CodeCardNotFound indicates the requested card does not exist.
	CodeCardNotFound Code = "CARD_NOT_FOUND"
	// CodeTagNotFound indicates the requested tag does not exist.
	CodeTagNotFound Code = "TAG_NOT_FOUND"
	// CodeAmbiguousDeck indicates no deck name was given while several decks exist.
	CodeAmbiguousDeck Code = "AMBIGUOUS_DECK"
	// CodeDeckExists indicates a deck with the same name already exists.
	CodeDeckExists Code = "DECK_EXISTS"
	// CodeCardExists indicates a card with the same num already exists.
	CodeCardExists Code = "CARD_EXISTS"
)

// Error is a domain error with a kind code and a user-facing message.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a domain error of the given kind.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error of the given kind around a cause.
func Wrap(cause error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the kind code from an error chain, or "" if the error is
// not a domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsDomain reports whether err is a domain error that should be reported as
// a plain message rather than a failure trace.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
