package backend

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response decoded from the backend's error envelope.
// Some endpoints bury the human-readable cause under data.data.reason.
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"message"`
	Data       *ErrData `json:"data,omitempty"`
}

type ErrData struct {
	Data *ErrDetail `json:"data,omitempty"`
}

type ErrDetail struct {
	Reason string `json:"reason,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", Reason(e, "request failed"), e.StatusCode)
}

// Reason extracts a human-readable message from err. Fallback order:
// nested data.data.reason, then the top-level message, then the given
// fallback for transport errors and empty envelopes.
func Reason(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Data != nil && apiErr.Data.Data != nil && apiErr.Data.Data.Reason != "" {
			return apiErr.Data.Data.Reason
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
