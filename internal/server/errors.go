package server

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an API error independently of the HTTP status.
type ErrorCode int

const (
	ErrBadRequest          ErrorCode = 1000
	ErrInternalServerError ErrorCode = 1007
	ErrServiceUnavailable  ErrorCode = 1008
	ErrValidation          ErrorCode = 1010

	ErrSessionNotFound ErrorCode = 2000
	ErrUnknownPage     ErrorCode = 2001
)

// AppError is the JSON body of every failed request.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// HTTPCode is the response status; it is not serialized.
	HTTPCode int `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("error code: %d, error message: %s", e.Code, e.Message)
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: ErrBadRequest, Message: message, HTTPCode: http.StatusBadRequest}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message, HTTPCode: http.StatusBadRequest}
}

func NewSessionNotFoundError() *AppError {
	return &AppError{Code: ErrSessionNotFound, Message: "session not found", HTTPCode: http.StatusNotFound}
}

func NewUnknownPageError(message string) *AppError {
	return &AppError{Code: ErrUnknownPage, Message: message, HTTPCode: http.StatusBadRequest}
}

// NewUnavailableError is returned while no corpus is loaded.
func NewUnavailableError() *AppError {
	return &AppError{Code: ErrServiceUnavailable, Message: "assistant unavailable", HTTPCode: http.StatusServiceUnavailable}
}

func NewInternalServerError(message string) *AppError {
	if message == "" {
		message = "internal server error"
	}
	return &AppError{Code: ErrInternalServerError, Message: message, HTTPCode: http.StatusInternalServerError}
}
