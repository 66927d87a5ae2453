// Package http implements the transport layer: URL resolution against
// the API base, bearer token injection, and the HTTP engine with its
// timeout, retry, and rate-limit knobs.
package http

import (
	"bytes"
	"context"
	"io"
	stdhttp "net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/ry-sev/spotify-web-api/internal/constants"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// TokenManager supplies and refreshes access tokens for requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token *spotify.Token)
}

// Client sends resolved requests to the API. It implements
// spotify.Client.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager TokenManager
	logger       spotify.Logger
	limiter      *rate.Limiter
	userAgent    string
	debug        bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger spotify.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables automatic retries. Retries are off by default;
// failed requests surface immediately.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithRateLimit throttles outgoing requests to rps requests per second
// with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPTimeout overrides the default per-request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport client for the given API base URL. A nil
// token manager sends unauthenticated requests.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = constants.DefaultRetryMax
	httpClient.RetryWaitMin = constants.DefaultRetryWaitMin
	httpClient.RetryWaitMax = constants.DefaultRetryWaitMax
	httpClient.Logger = nil
	httpClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	// Once retries are exhausted, hand back the last response instead of
	// an error; classification happens upstream.
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	// Redirects are never followed; a 301 is surfaced to the caller
	// together with its Location header.
	httpClient.HTTPClient.CheckRedirect = func(*stdhttp.Request, []*stdhttp.Request) error {
		return stdhttp.ErrUseLastResponse
	}

	client := &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		tokenManager: tokenManager,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Endpoint resolves a path relative to the API base URL.
func (c *Client) Endpoint(path string) (*url.URL, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	return base.JoinPath(path), nil
}

// HTTPClient returns the underlying standard client, sharing its timeout
// with callers that talk to the accounts service directly.
func (c *Client) HTTPClient() *stdhttp.Client {
	return c.httpClient.HTTPClient
}

// Do sends the request. The response is returned for every HTTP status;
// only network-level failures produce an error.
func (c *Client) Do(ctx context.Context, req *spotify.Request) (*spotify.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL.String(), bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	// POST and PUT always advertise a length, even for empty bodies.
	if req.Method == stdhttp.MethodPost || req.Method == stdhttp.MethodPut {
		httpReq.ContentLength = int64(len(req.Body))
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.logRequest(httpReq)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &spotify.TransportError{Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &spotify.TransportError{Err: err}
	}

	resp := &spotify.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	c.logResponse(resp)

	return resp, nil
}

func (c *Client) logRequest(req *retryablehttp.Request) {
	if !c.debug || c.logger == nil {
		return
	}

	headers := make(map[string]interface{}, len(req.Header))

	for name := range req.Header {
		if name == "Authorization" {
			headers[name] = "[REDACTED]"

			continue
		}

		headers[name] = req.Header.Get(name)
	}

	c.logger.Debug("http request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": headers,
	})
}

func (c *Client) logResponse(resp *spotify.Response) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("http response", map[string]interface{}{
		"status":    resp.StatusCode,
		"body_size": len(resp.Body),
	})
}
