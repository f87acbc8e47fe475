// Package apperr provides the formatted error type used for user-facing
// failures across workflow.
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error with a message template and an optional
// underlying cause.
type Error struct {
	Cause    error
	Message  string
	template string
}

func (e *Error) key() string {
	if e.template != "" {
		return e.template
	}

	return e.Message
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

// Fmt returns a copy of the error with the message template formatted using
// the provided arguments.
func (e *Error) Fmt(args ...any) *Error {
	err := *e
	err.template = e.key()
	err.Message = fmt.Sprintf(e.Message, args...)

	return &err
}

// Wrap returns a copy of the error that wraps the given cause.
func (e *Error) Wrap(err error) *Error {
	newErr := *e
	newErr.Cause = err

	return &newErr
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error derived from the same message
// template, before or after formatting.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t == e || t.key() == e.key()
}
