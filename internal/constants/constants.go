// Package constants centralizes the timeouts and service URLs shared by
// the transport and authentication layers.
package constants

import "time"

// Service URLs.
const (
	// BaseAPIURL is the root of the Web API.
	BaseAPIURL = "https://api.spotify.com/v1/"

	// AccountsBaseURL is the root of the accounts service.
	AccountsBaseURL = "https://accounts.spotify.com"

	// TokenURL is the accounts token endpoint used by every flow.
	TokenURL = AccountsBaseURL + "/api/token"

	// AuthorizeURL is the accounts user-authorization endpoint.
	AuthorizeURL = AccountsBaseURL + "/authorize"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds every API and token request.
	DefaultHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are off unless callers opt in.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)
