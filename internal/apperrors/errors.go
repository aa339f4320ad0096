// Package apperrors is the error taxonomy shared by the ledger, the services and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodePersistence  = "PERSISTENCE_ERROR"
	CodeNotification = "NOTIFICATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

func Persistence(err error, message string) *AppError {
	return &AppError{Code: CodePersistence, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// Notification errors are logged by the booking service and never reach a caller.
func Notification(err error, message string) *AppError {
	return &AppError{Code: CodeNotification, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// HTTPStatus maps any error to a response status; unknown errors are 500.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
