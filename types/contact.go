package types

import "time"

// ContactSubmission is a stored contact form entry. Records are append-only.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactCreate represents the request body for POST /api/contact.
// Fields are pointers so a missing key can be told apart from a value.
type ContactCreate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

// ContactInput is a validated, trimmed submission ready for a store.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// FieldErrors maps a field name to its user-facing error message.
type FieldErrors map[string]string

// ContactResponse is the success envelope returned by POST /api/contact.
type ContactResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    *ContactSubmission `json:"data"`
}

// ErrorResponse is the failure envelope. Exactly one of Message or Errors is set.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
