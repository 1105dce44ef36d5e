package registry

import (
	"errors"
	"fmt"
)

// APIError is the base error for registry failures. More specific
// variants embed it so callers can classify with errors.As.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("registry error %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// AuthenticationError means the subscription key was rejected. Fatal;
// never retried.
type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("registry authentication failed at %s: %s", e.Endpoint, e.Message)
}

// NotFoundError means no data exists for the request. Reported
// explicitly, never absorbed.
type NotFoundError struct {
	APIError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry resource not found at %s: %s", e.Endpoint, e.Message)
}

// ServerError covers 5xx responses. Transient; the client retries
// these internally before giving up.
type ServerError struct {
	APIError
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("registry server error %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// classifyStatus converts a non-200 status into the matching error type.
func classifyStatus(statusCode int, message, endpoint string) error {
	base := APIError{StatusCode: statusCode, Message: message, Endpoint: endpoint}
	switch {
	case statusCode == 401:
		return &AuthenticationError{base}
	case statusCode == 404:
		return &NotFoundError{base}
	case statusCode >= 500:
		return &ServerError{base}
	default:
		return &base
	}
}

// IsNotFound reports whether err is a registry not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAuthentication reports whether err is a registry auth error.
func IsAuthentication(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}

func isRetryable(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
