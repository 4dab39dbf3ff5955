// Package validation holds the pure checks run on every contact submission
// before it reaches a store.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/devfolio/portfolio-backend/errors"
	"github.com/devfolio/portfolio-backend/types"
)

const (
	nameMinLength    = 2
	nameMaxLength    = 100
	emailMaxLength   = 255
	messageMinLength = 10
	messageMaxLength = 5000
)

// RE2's \s is ASCII only; \p{Z} and U+FEFF cover the rest of what a browser
// treats as whitespace.
var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s\p{Z}\x{FEFF}.'-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]{2,}$`)
)

// CheckRequired is the coarse presence check that runs before trimming.
// A field that is absent, null or the empty string fails it.
func CheckRequired(req types.ContactCreate) error {
	if isEmpty(req.Name) || isEmpty(req.Email) || isEmpty(req.Message) {
		return errors.MissingFields()
	}
	return nil
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}

// ValidateContact trims every field and checks each one independently.
// The returned FieldErrors only contains failing fields; it is empty when
// the input is valid.
func ValidateContact(req types.ContactCreate) (types.ContactInput, types.FieldErrors) {
	in := types.ContactInput{
		Name:    trimmed(req.Name),
		Email:   trimmed(req.Email),
		Message: trimmed(req.Message),
	}

	fieldErrs := types.FieldErrors{}
	if msg := validateName(in.Name); msg != "" {
		fieldErrs["name"] = msg
	}
	if msg := validateEmail(in.Email); msg != "" {
		fieldErrs["email"] = msg
	}
	if msg := validateMessage(in.Message); msg != "" {
		fieldErrs["message"] = msg
	}
	return in, fieldErrs
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func validateName(v string) string {
	n := utf8.RuneCountInString(v)
	switch {
	case v == "":
		return "Name is required."
	case n < nameMinLength:
		return "Name must be at least 2 characters."
	case n > nameMaxLength:
		return "Name must be at most 100 characters."
	case !namePattern.MatchString(v):
		return "Use letters, spaces, and .'- only."
	}
	return ""
}

func validateEmail(v string) string {
	switch {
	case v == "":
		return "Email is required."
	case utf8.RuneCountInString(v) > emailMaxLength:
		return "Email must be at most 255 characters."
	case !emailPattern.MatchString(v):
		return "Enter a valid email address."
	}
	return ""
}

func validateMessage(v string) string {
	n := utf8.RuneCountInString(v)
	switch {
	case v == "":
		return "Message is required."
	case n < messageMinLength:
		return "Message must be at least 10 characters."
	case n > messageMaxLength:
		return "Message must be at most 5000 characters."
	}
	return ""
}
