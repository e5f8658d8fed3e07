package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("onms: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("onms: http client cannot be nil")
	// ErrInvalidAPIVersion is returned for an API version other than v1 or v2.
	ErrInvalidAPIVersion = errors.New("onms: invalid API version")
)

// APIError represents a non-2xx answer from the server.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Raw     []byte `json:"-"`
}

func newAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status, Raw: data}
	// OpenNMS answers with either a JSON document or plain text.
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	apiErr.Status = status
	return apiErr
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("onms: api error status=%d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("onms: api error status=%d: %s", e.Status, e.Message)
}

// NotFound reports whether the resource does not exist.
func (e *APIError) NotFound() bool {
	return e != nil && e.Status == http.StatusNotFound
}

// Temporary reports whether the error may succeed if sent again.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status >= 500 && e.Status < 600
}
