package spotify

import (
	"context"
	"net/http"
	"net/url"
)

// Client is the minimal transport surface the query strategies need. The
// production implementation lives in internal/http and is constructed
// through pkg/spotifyclient; tests substitute their own.
type Client interface {
	// Endpoint resolves a path relative to the API base URL.
	Endpoint(path string) (*url.URL, error)

	// Do sends the request and returns the raw response. Status code
	// classification is left to the caller.
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request is a fully resolved API request.
type Request struct {
	Method      string
	URL         *url.URL
	ContentType string
	Body        []byte
}

// Response is a raw API response with the body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Logger is the logging interface used across the library.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
