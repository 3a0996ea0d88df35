package shared

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// API errors, classified by response status
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrNotFound           = fmt.Errorf("not found")
	ErrRateLimited        = fmt.Errorf("rate limited")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRecipeNotFound     = fmt.Errorf("recipe not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// APIError is returned by the gateway for any non-2xx response.
//
// Unwrap yields the sentinel matching the status code so callers can use [errors.Is] with
// [ErrUnauthorized], [ErrNotFound], [ErrRateLimited] or [ErrAPIRequest].
type APIError struct {
	StatusCode int
	Message    string // server-provided message, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: status %d: %s", e.Unwrap(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%v: status %d", e.Unwrap(), e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrAPIRequest
	}
}

// ServerMessage extracts the server-provided message from err, if it wraps an [APIError].
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
