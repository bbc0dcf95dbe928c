// Package validation holds the form checks the booking, signup and admin
// pages perform before anything is sent to the backend.
package validation

import (
	"errors"
	"strings"
)

// ErrInvalid is matched by every ValidationErrors value.
var ErrInvalid = errors.New("invalid input")

// FieldError is a single failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failed check of a form.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalid) match.
func (v ValidationErrors) Is(target error) bool { return target == ErrInvalid }

// Has reports whether field failed.
func (v ValidationErrors) Has(field string) bool {
	for _, f := range v {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (v *ValidationErrors) add(field, msg string) {
	*v = append(*v, FieldError{Field: field, Message: msg})
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
