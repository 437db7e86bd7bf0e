package olhovivo

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates a missing base URL, API version or token
	ErrInvalidConfig = errors.New("invalid olhovivo configuration")
	// ErrAuthentication indicates the login handshake was rejected
	ErrAuthentication = errors.New("olhovivo authentication failed")
	// ErrNotAuthenticated is returned when a call is made on a session that never logged in
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidParameter indicates a caller supplied identifier was rejected before any request
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrServerBusy indicates the API kept answering with a Message body
	ErrServerBusy = errors.New("olhovivo API busy")
	// ErrEmptyArgument is returned by ArrivalAt when the line or stop argument is empty
	ErrEmptyArgument = errors.New("empty argument")
	// ErrInvalidLookup is returned by ArrivalAt when the line or stop search found nothing
	ErrInvalidLookup = errors.New("invalid lookup: no matching line or stop")
	// ErrArrivalNotFound is returned by ArrivalAt when the line does not serve the stop
	ErrArrivalNotFound = errors.New("no arrival forecast for stop on line")
)

// ValidationError reports a rejected parameter
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Param, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

// NetworkError wraps a transport level failure (connection refused, timeout...)
type NetworkError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx answer from the Olho Vivo API
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("olhovivo API error: status %d on %s: %s", e.StatusCode, e.Path, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates the session was rejected
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// RetryExhaustedError is returned when every attempt got a busy response
type RetryExhaustedError struct {
	Path     string
	Attempts int
	Message  string
}

// Error implements the error interface
func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s still busy after %d attempts: %s", e.Path, e.Attempts, e.Message)
}

// Unwrap lets errors.Is match ErrServerBusy
func (e *RetryExhaustedError) Unwrap() error {
	return ErrServerBusy
}
