package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, PersistenceError, "write failed")

	assert.Equal(t, PersistenceError, wrappedErr.Type)
	assert.Equal(t, "write failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, http.StatusInternalServerError, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)

	assert.Nil(t, Wrap(nil, PersistenceError, "nothing"))
}

func TestMissingFields(t *testing.T) {
	err := MissingFields()
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "All fields are required", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
	assert.Empty(t, err.Fields)
}

func TestFieldValidation(t *testing.T) {
	fields := map[string]string{"email": "Enter a valid email address."}
	err := FieldValidation(fields)
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, fields, err.Fields)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
}

func TestNewPersistenceError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewPersistenceError("create", cause)

	assert.Equal(t, PersistenceError, err.Type)
	assert.Equal(t, "contact store create failed", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsType(err, PersistenceError))
	assert.True(t, IsType(fmt.Errorf("outer: %w", err), PersistenceError))
	assert.False(t, IsType(cause, PersistenceError))
}

func TestNewDeliveryError(t *testing.T) {
	err := NewDeliveryError(fmt.Errorf("smtp timeout"))
	assert.Equal(t, DeliveryError, err.Type)
	assert.True(t, IsType(err, DeliveryError))
	assert.False(t, IsType(err, ValidationError))
}

func TestNotFound(t *testing.T) {
	err := NotFound("Route", "/api/nope")
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "Route not found", err.Message)
	assert.Equal(t, "ID: /api/nope", err.Detail)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "with detail",
			err: &AppError{
				Type:    ValidationError,
				Message: "invalid input",
				Detail:  "field required",
			},
			expected: "VALIDATION_ERROR: invalid input (field required)",
		},
		{
			name: "without detail",
			err: &AppError{
				Type:    ServerError,
				Message: "boom",
			},
			expected: "SERVER_ERROR: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGetHTTPStatusFallback(t *testing.T) {
	err := &AppError{Type: NotFoundError}
	assert.Equal(t, http.StatusNotFound, err.GetHTTPStatus())

	err = &AppError{Type: "SOMETHING_ELSE"}
	assert.Equal(t, http.StatusInternalServerError, err.GetHTTPStatus())
}
