package apperr

import (
	"errors"
	"net/http"
)

// Code classifies an error so handlers can map it to an HTTP status.
type Code string

const (
	CodeValidation Code = "validation"
	CodeConflict   Code = "conflict"
	CodeAuth       Code = "auth"
	CodeNotFound   Code = "not_found"
	CodeStorage    Code = "storage"
)

// Error is the single error type that crosses service boundaries.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Validation(message string) *Error { return New(CodeValidation, message) }
func Conflict(message string) *Error   { return New(CodeConflict, message) }
func Auth(message string) *Error       { return New(CodeAuth, message) }
func NotFound(message string) *Error   { return New(CodeNotFound, message) }

// Storage wraps an unexpected backend failure, keeping the underlying message.
func Storage(err error) *Error {
	return Wrap(CodeStorage, "storage error", err)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuth:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
