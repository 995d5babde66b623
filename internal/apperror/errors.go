// Package apperror defines the typed errors every operation raises at the
// HTTP boundary. An Error carries the status code it should be reported
// with; anything else is converted to a generic 500 by the api package.
package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    `json:"statusCode"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	if message == "" {
		message = "Bad Request"
	}
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, message)
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return New(http.StatusForbidden, message)
}

func Internal(message string) *Error {
	if message == "" {
		message = "Something went wrong"
	}
	return New(http.StatusInternalServerError, message)
}

// From extracts the *Error from err, or wraps err into a 500.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("")
}
