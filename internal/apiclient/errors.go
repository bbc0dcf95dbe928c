package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors matched by APIError and TransportError through errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrBadRequest     = errors.New("bad request")
	ErrUnavailable    = errors.New("backend unavailable")
	ErrUnexpectedBody = errors.New("unexpected response body")
)

// APIError is a non-2xx answer from the backend. Message is the
// human-readable text the pages display.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsConflict reports whether err is a 409 from the backend.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the text to show a user for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "the resort service is unreachable, please try again"
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

const maxMessageLen = 300

// extractMessage pulls a readable message out of an error body. Spring
// style bodies carry it in message, error or errors[].defaultMessage.
func extractMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return http.StatusText(status)
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, k := range []string{"message", "error", "detail", "title"} {
			if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
		if list, ok := obj["errors"].([]any); ok && len(list) > 0 {
			switch first := list[0].(type) {
			case string:
				return first
			case map[string]any:
				for _, k := range []string{"message", "defaultMessage"} {
					if s, ok := first[k].(string); ok && s != "" {
						return s
					}
				}
			}
		}
		return http.StatusText(status)
	}
	if looksLikeHTML(trimmed) {
		return http.StatusText(status)
	}
	if len(trimmed) > maxMessageLen {
		trimmed = trimmed[:maxMessageLen]
	}
	return trimmed
}

func looksLikeHTML(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "<!doctype html") || strings.HasPrefix(s, "<html")
}
