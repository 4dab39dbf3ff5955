package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError  ErrorType = "VALIDATION_ERROR"
	PersistenceError ErrorType = "PERSISTENCE_ERROR"
	DeliveryError    ErrorType = "DELIVERY_ERROR"
	NotFoundError    ErrorType = "NOT_FOUND"
	ServerError      ErrorType = "SERVER_ERROR"
)

// MessageAllFieldsRequired is reported when name, email or message is absent.
const MessageAllFieldsRequired = "All fields are required"

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType         `json:"type"`
	Code       string            `json:"code,omitempty"`
	Message    string            `json:"message"`
	Detail     string            `json:"detail,omitempty"`
	Fields     map[string]string `json:"errors,omitempty"`
	HTTPStatus int               `json:"-"`
	Raw        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the status the error maps to, falling back to the type default.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// MissingFields is the coarse presence failure, reported before any field rule runs.
func MissingFields() *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "missing_fields",
		Message:    MessageAllFieldsRequired,
		HTTPStatus: http.StatusBadRequest,
	}
}

// FieldValidation carries one user-facing message per failing field.
func FieldValidation(fields map[string]string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "invalid_fields",
		Message:    "Validation failed",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewPersistenceError wraps a store failure. These never reach the client.
func NewPersistenceError(op string, err error) *AppError {
	return &AppError{
		Type:       PersistenceError,
		Message:    fmt.Sprintf("contact store %s failed", op),
		Detail:     err.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// NewDeliveryError wraps a notifier transport failure. These are logged and dropped.
func NewDeliveryError(err error) *AppError {
	return &AppError{
		Type:       DeliveryError,
		Message:    "notification delivery failed",
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

// IsType reports whether err is, or wraps, an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case DeliveryError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
