package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthRequired is returned before any request is sent when an
	// authenticated call finds no credential in the session store.
	ErrAuthRequired = errors.New("authentication required")
	// ErrUnauthorized covers 401 and 403: the credential was rejected.
	ErrUnauthorized = errors.New("credential rejected")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("request rejected by backend validation")
)

// APIError is a non-2xx response. Messages holds the backend's "message"
// field, which arrives as a string or an array of strings.
type APIError struct {
	Op         string
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, strings.Join(e.Messages, ", "))
}

// Unwrap maps status codes onto the sentinel errors. 400 is always
// validation-shaped and 401/403 always mean a stale or invalid credential;
// this is the booking backend's contract, not a general HTTP rule.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Retryable reports whether the same request may succeed later.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsAuthError reports whether err should send the user to sign in.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrUnauthorized)
}

// Messages extracts backend messages from err, if it carries any.
func Messages(err error) []string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Messages
	}
	return nil
}

func parseMessages(body map[string]any) []string {
	for _, key := range []string{"message", "error", "errors"} {
		switch v := body[key].(type) {
		case string:
			if v != "" {
				return []string{v}
			}
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}
