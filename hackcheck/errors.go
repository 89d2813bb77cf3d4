package hackcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Messages the service uses to distinguish 401 responses
const (
	messageInvalidAPIKey       = "Invalid API key."
	messageUnauthorizedAddress = "Unauthorized IP address."
)

// Sentinel errors for errors.Is checks
var (
	// ErrMissingAPIKey is returned by NewClient when no API key is given
	ErrMissingAPIKey = errors.New("hackcheck API key is required")
	// ErrClientClosed is returned when an operation is attempted after Close
	ErrClientClosed = errors.New("hackcheck client has been closed")
	// ErrInvalidAPIKey indicates the service rejected the API key
	ErrInvalidAPIKey = errors.New("the provided API key is invalid")
	// ErrUnauthorizedIPAddress indicates the caller's IP is not allowed for the key
	ErrUnauthorizedIPAddress = errors.New("the request is coming from an unauthorized IP address")
	// ErrServer indicates an authentication failure the client does not recognize
	ErrServer = errors.New("an unknown server error occurred")
	// ErrRateLimited indicates the key's request quota is exhausted
	ErrRateLimited = errors.New("rate limit reached")
	// ErrRequestFailed indicates a 400 or 404 response
	ErrRequestFailed = errors.New("request rejected by hackcheck")
	// ErrSchemaMismatch indicates a success payload did not have the expected shape
	ErrSchemaMismatch = errors.New("response does not match schema")
	// ErrInvalidOptions indicates request parameters failed local validation
	ErrInvalidOptions = errors.New("invalid request options")
)

// InvalidAPIKeyError is returned for a 401 caused by a bad API key
type InvalidAPIKeyError struct {
	Message string
}

func (e *InvalidAPIKeyError) Error() string {
	return ErrInvalidAPIKey.Error()
}

// Is implements errors.Is for sentinel error matching
func (e *InvalidAPIKeyError) Is(target error) bool {
	return target == ErrInvalidAPIKey
}

// UnauthorizedIPAddressError is returned for a 401 caused by an IP allowlist
type UnauthorizedIPAddressError struct {
	Message string
}

func (e *UnauthorizedIPAddressError) Error() string {
	return ErrUnauthorizedIPAddress.Error()
}

// Is implements errors.Is for sentinel error matching
func (e *UnauthorizedIPAddressError) Is(target error) bool {
	return target == ErrUnauthorizedIPAddress
}

// ServerError is returned for a 401 whose message is not recognized
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", ErrServer, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", ErrServer, e.StatusCode)
}

// Is implements errors.Is for sentinel error matching
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// RateLimitError is returned for a 429 response
type RateLimitError struct {
	Limit     int
	Remaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit reached: %d requests allowed, %d remaining", e.Limit, e.Remaining)
}

// Is implements errors.Is for sentinel error matching
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// APIError is returned for 400 and 404 responses. Error returns the
// service's message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("hackcheck API error: status %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching
func (e *APIError) Is(target error) bool {
	return target == ErrRequestFailed
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// SchemaError indicates a success payload could not be decoded. Field is the
// JSON path of the offending value when known.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %v", ErrSchemaMismatch, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrSchemaMismatch, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// ValidationError lists request parameters that failed local validation
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidOptions, strings.Join(e.Errors, "; "))
}

// Is implements errors.Is for sentinel error matching
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOptions
}
