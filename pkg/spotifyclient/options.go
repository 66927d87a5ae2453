package spotifyclient

import (
	"time"

	"github.com/ry-sev/spotify-web-api/internal/constants"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

type options struct {
	baseURL      string
	tokenURL     string
	authURL      string
	userAgent    string
	logger       spotify.Logger
	debug        bool
	httpTimeout  time.Duration
	retrySet     bool
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	rateLimit    float64
	rateBurst    int
	onToken      func(spotify.Token)
}

// Option configures a client at construction time.
type Option func(*options)

// WithBaseURL overrides the API base URL, primarily for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithAccountsEndpoints overrides the accounts authorize and token URLs,
// primarily for tests.
func WithAccountsEndpoints(authURL, tokenURL string) Option {
	return func(o *options) {
		o.authURL = authURL
		o.tokenURL = tokenURL
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger spotify.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithHTTPTimeout overrides the default 10 second per-request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.httpTimeout = timeout
	}
}

// WithRetryConfig enables automatic retries on the transport.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(o *options) {
		o.retrySet = true
		o.retryMax = retryMax
		o.retryWaitMin = retryWaitMin
		o.retryWaitMax = retryWaitMax
	}
}

// WithRateLimit throttles outgoing requests client-side.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = rps
		o.rateBurst = burst
	}
}

// WithTokenCallback registers a callback invoked each time a new token
// is stored.
func WithTokenCallback(fn func(spotify.Token)) Option {
	return func(o *options) {
		o.onToken = fn
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		baseURL: constants.BaseAPIURL,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
