package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the application error taxonomy. Code classifies the failure;
// Err carries the internal cause and is never sent to clients for storage
// errors.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes used across the application.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeStorage        = "STORAGE_ERROR"
)

// NewValidationError signals missing or malformed input (400).
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewAuthenticationError signals a missing or invalid credential (403 at the gate).
func NewAuthenticationError(message string) *AppError {
	return &AppError{Code: CodeAuthentication, Message: message}
}

// NewForbiddenError signals a valid identity acting on a resource it does not own (403).
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewNotFoundError signals a missing entity (404).
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewStorageError wraps a persistence-layer failure (500). The cause is kept
// for logging but not exposed to clients.
func NewStorageError(err error) *AppError {
	return &AppError{Code: CodeStorage, Message: "Something went wrong", Err: err}
}

// RespondWithError writes a plain-text error response. Storage errors and
// anything unclassified are collapsed to a generic message; validation,
// authorization and not-found errors keep their specific message.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	msg := "Something went wrong"

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != CodeStorage {
		msg = appErr.Message
	}
	if status < fiber.StatusInternalServerError && msg == "Something went wrong" && err != nil {
		msg = err.Error()
	}

	return c.Status(status).SendString(msg)
}

// StatusForError maps a taxonomy code to its HTTP status. Fiber's own errors
// (unmatched routes, bad methods) keep their code; anything else unclassified
// maps to 500.
func StatusForError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeAuthentication, CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
