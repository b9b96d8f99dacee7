// Package apperrors defines the error taxonomy shared by the store,
// services, and HTTP handlers.
package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Error carries a taxonomy kind plus a human-readable message. It unwraps
// to its kind so call sites can match with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound returns a NotFound error with the given message
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// InvalidInput returns an InvalidInput error with the given message
func InvalidInput(message string) error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

// Unauthorized returns an Unauthorized error with the given message
func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// Conflict returns a Conflict error with the given message
func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}
