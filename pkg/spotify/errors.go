package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the Spotify API,
// i.e. a JSON body of the form {"error": {"status": 404, "message": "..."}}.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.Status)
}

// LegacyAPIError represents the older error shape where the body carries a
// bare string, either {"error": "..."} or {"message": "..."}.
type LegacyAPIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *LegacyAPIError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.Status)
}

// UnknownAPIError represents a JSON error body in none of the recognized
// shapes. The raw body is preserved for inspection.
type UnknownAPIError struct {
	Status int
	Body   json.RawMessage
}

// Error implements the error interface.
func (e *UnknownAPIError) Error() string {
	return fmt.Sprintf("unrecognized API error (status: %d): %s", e.Status, string(e.Body))
}

// ServerError represents a failure response whose body is not valid JSON,
// such as an HTML page from a proxy or load balancer.
type ServerError struct {
	Status int
	Body   []byte
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned status %d with a non-JSON body", e.Status)
}

// MovedPermanentlyError is returned when the API answers 301. The client
// never follows the redirect; callers decide what to do with Location.
type MovedPermanentlyError struct {
	Location string
}

// Error implements the error interface.
func (e *MovedPermanentlyError) Error() string {
	if e.Location == "" {
		return "resource moved permanently (no location header)"
	}

	return fmt.Sprintf("resource moved permanently to %s", e.Location)
}

// DataTypeError wraps a JSON decode failure, recording the Go type the
// response body could not be decoded into.
type DataTypeError struct {
	TypeName string
	Err      error
}

// Error implements the error interface.
func (e *DataTypeError) Error() string {
	return fmt.Sprintf("could not decode response body into %s: %v", e.TypeName, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *DataTypeError) Unwrap() error {
	return e.Err
}

// TransportError wraps a network-layer failure (connection, timeout, TLS)
// to keep it distinguishable from API-level errors.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StateMismatchError is returned when the state parameter echoed back on
// the authorization callback does not match the one that was issued.
type StateMismatchError struct {
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("state mismatch: expected %q, got %q", e.Expected, e.Got)
}

// IDLengthError is returned when a resource ID is not 22 characters.
type IDLengthError struct {
	Got      int
	Expected int
}

// Error implements the error interface.
func (e *IDLengthError) Error() string {
	return fmt.Sprintf("ID has wrong length: got %d, expected %d", e.Got, e.Expected)
}

// Common static errors that can be wrapped with context.
var (
	ErrNoState           = errors.New("no authorization URL has been generated yet")
	ErrCodeNotFound      = errors.New("authorization code not found in redirect URL")
	ErrNoCodeVerifier    = errors.New("no code verifier present")
	ErrEmptyAccessToken  = errors.New("access token is empty")
	ErrEmptyRefreshToken = errors.New("refresh token is empty")
	ErrNoMoreItems       = errors.New("no more items")
	ErrInvalidIDFormat   = errors.New("ID is not in base62 format")
	ErrInvalidURIFormat  = errors.New("URI does not have the expected spotify prefix")
)

// IsNotFound checks if the error is a not found API error.
func IsNotFound(err error) bool {
	return apiErrorStatus(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized API error.
func IsUnauthorized(err error) bool {
	return apiErrorStatus(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden API error.
func IsForbidden(err error) bool {
	return apiErrorStatus(err) == http.StatusForbidden
}

// IsRateLimited checks if the error is a rate limit API error.
func IsRateLimited(err error) bool {
	return apiErrorStatus(err) == http.StatusTooManyRequests
}

func apiErrorStatus(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}

	legacyErr := &LegacyAPIError{}
	if errors.As(err, &legacyErr) {
		return legacyErr.Status
	}

	return 0
}
