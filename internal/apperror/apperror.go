// Package apperror carries the error taxonomy shared by services and
// handlers: every failure maps to a code, an HTTP status and a message safe
// to show to clients. The wrapped cause is kept for logging and an optional
// diagnostics field, never for the message itself.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL"
)

// Error is an application error with an HTTP-mappable code.
type Error struct {
	Code       string
	HTTPStatus int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a 400-class input error.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, HTTPStatus: http.StatusBadRequest, Message: message}
}

// Unauthorized reports a missing or invalid identity.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, HTTPStatus: http.StatusUnauthorized, Message: message}
}

// Forbidden reports a permission failure.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, HTTPStatus: http.StatusForbidden, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, HTTPStatus: http.StatusNotFound, Message: message}
}

// Internal wraps an unexpected failure, keeping cause for diagnostics.
func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, HTTPStatus: http.StatusInternalServerError, Message: message, Err: err}
}

// Status returns the HTTP status for err, defaulting to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}

// Data returns the underlying cause text, if any, for the optional
// diagnostics field on 500 responses.
func Data(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err.Error()
	}
	return ""
}
