package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Error labels rendered in the "error" field of failure envelopes.
const (
	LabelBadRequest   = "Bad Request"
	LabelUnauthorized = "Unauthorized"
	LabelForbidden    = "Forbidden"
	LabelNotFound     = "Not Found"
	LabelConflict     = "Conflict"
	LabelValidation   = "Validation Error"
	LabelInternal     = "Internal Server Error"
)

// DomainError standardizes application errors.
type DomainError struct {
	Label      string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(label, message string, status int) *DomainError {
	return &DomainError{Label: label, Message: message, HTTPStatus: status}
}

func NewBadRequest(message string) error {
	return NewDomainError(LabelBadRequest, message, http.StatusBadRequest)
}

func NewValidationError(message string) error {
	return NewDomainError(LabelValidation, message, http.StatusUnprocessableEntity)
}

func NewNotFound(message string) error {
	return NewDomainError(LabelNotFound, message, http.StatusNotFound)
}

func NewUnauthorized(message string) error {
	return NewDomainError(LabelUnauthorized, message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError(LabelForbidden, message, http.StatusForbidden)
}

func NewConflict(message string) error {
	return NewDomainError(LabelConflict, message, http.StatusConflict)
}

// NewInternalError wraps err behind a generic message; err is logged, never rendered.
func NewInternalError(message string, err error) error {
	if message == "" {
		message = "Internal server error"
	}
	return &DomainError{
		Label:      LabelInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewDomainError(labelForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError(LabelNotFound, "Resource not found", http.StatusNotFound)
	}
	return &DomainError{
		Label:      LabelInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func labelForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return LabelUnauthorized
	case http.StatusForbidden:
		return LabelForbidden
	case http.StatusNotFound:
		return LabelNotFound
	case http.StatusConflict:
		return LabelConflict
	case http.StatusUnprocessableEntity:
		return LabelValidation
	}
	if status >= http.StatusInternalServerError {
		return LabelInternal
	}
	return http.StatusText(status)
}

// ErrorBody is the failure envelope shared by every JSON endpoint.
func ErrorBody(e *DomainError) fiber.Map {
	return fiber.Map{
		"status":  false,
		"message": e.Message,
		"error":   e.Label,
	}
}

// SuccessBody is the success envelope shared by every JSON endpoint.
func SuccessBody(message string, result any) fiber.Map {
	if message == "" {
		message = "Success"
	}
	return fiber.Map{
		"status":  true,
		"message": message,
		"result":  result,
	}
}
