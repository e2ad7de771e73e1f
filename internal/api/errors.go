package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response with whatever the structured envelope
// carried. Message may be empty when the server sent no body.
type Error struct {
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status=%d code=%d: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: status=%d code=%d", e.Status, e.Code)
}

// IsNotFound reports whether err is the server saying no such record.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401. Callers rarely need this;
// the transport's OnUnauthorized hook already ran by the time they see it.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// UserMessage extracts the server-provided message for display, falling
// back when the body had none or the failure never reached the server.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
