package spotifyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/ry-sev/spotify-web-api/internal/auth"
	internalhttp "github.com/ry-sev/spotify-web-api/internal/http"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// Static validation errors.
var (
	ErrClientIDRequired     = errors.New("client ID is required")
	ErrClientSecretRequired = errors.New("client secret is required")
	ErrRedirectURIRequired  = errors.New("redirect URI is required")
)

// Client is the common surface of both flow-specific clients. It
// implements spotify.Client, so endpoint descriptors execute against it
// through the query strategies.
type Client struct {
	transport *internalhttp.Client
	manager   *auth.FlowTokenManager
}

// Endpoint resolves a path relative to the API base URL.
func (c *Client) Endpoint(path string) (*url.URL, error) {
	return c.transport.Endpoint(path)
}

// Do sends a resolved request with a bearer token attached.
func (c *Client) Do(ctx context.Context, req *spotify.Request) (*spotify.Response, error) {
	return c.transport.Do(ctx, req)
}

// Token returns the current token, or nil before authentication.
func (c *Client) Token() *spotify.Token {
	return c.manager.Token()
}

// SetToken installs a previously obtained token, for example one loaded
// from disk.
func (c *Client) SetToken(token *spotify.Token) {
	c.manager.SetToken(token)
}

// RefreshToken forces a token refresh through the flow.
func (c *Client) RefreshToken(ctx context.Context) error {
	return c.manager.RefreshToken(ctx)
}

// OnToken registers a callback invoked each time a new token is stored,
// typically to persist it across runs.
func (c *Client) OnToken(fn func(spotify.Token)) {
	c.manager.OnToken(fn)
}

// TokenJSON serializes the current token, including its absolute expiry,
// for persistence.
func (c *Client) TokenJSON() ([]byte, error) {
	token := c.manager.Token()
	if token == nil {
		return nil, spotify.ErrEmptyAccessToken
	}

	data, err := json.Marshal(token)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token: %w", err)
	}

	return data, nil
}

// SetTokenJSON installs a token previously serialized with TokenJSON.
func (c *Client) SetTokenJSON(data []byte) error {
	var token spotify.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("failed to unmarshal token: %w", err)
	}

	if token.AccessToken == "" {
		return spotify.ErrEmptyAccessToken
	}

	c.manager.SetToken(&token)

	return nil
}

// PKCEClient is a client authenticated through the Authorization Code
// flow with PKCE. It acts on behalf of a user and can refresh itself.
type PKCEClient struct {
	Client

	flow *auth.AuthCodePKCE
}

// NewWithPKCE creates a client for the Authorization Code flow with
// PKCE. The caller must send the user to UserAuthorizationURL and feed
// the redirect back in before executing endpoints.
func NewWithPKCE(clientID, redirectURI string, scopes []spotify.Scope, opts ...Option) (*PKCEClient, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	if redirectURI == "" {
		return nil, ErrRedirectURIRequired
	}

	options := applyOptions(opts)

	flow := auth.NewAuthCodePKCE(clientID, redirectURI, scopes...)
	flow.SetEndpoints(options.authURL, options.tokenURL)

	client, err := newClient(flow, options)
	if err != nil {
		return nil, err
	}

	return &PKCEClient{Client: *client, flow: flow}, nil
}

// UserAuthorizationURL generates the URL the user must visit to grant
// the requested scopes. Fresh state and verifier are generated per call.
func (c *PKCEClient) UserAuthorizationURL() (string, error) {
	return c.flow.AuthorizationURL()
}

// VerifyAuthorizationCode checks the redirect URL's state and returns
// the embedded authorization code.
func (c *PKCEClient) VerifyAuthorizationCode(callbackURL string) (string, error) {
	return c.flow.VerifyAuthorizationCode(callbackURL)
}

// RequestToken exchanges an authorization code for a token and installs
// it.
func (c *PKCEClient) RequestToken(ctx context.Context, code string) error {
	token, err := c.flow.RequestToken(ctx, c.transport.HTTPClient(), code)
	if err != nil {
		return err
	}

	c.manager.SetToken(token)

	return nil
}

// RequestTokenFromRedirectURL verifies the redirect URL and exchanges
// its code in one step.
func (c *PKCEClient) RequestTokenFromRedirectURL(ctx context.Context, callbackURL string) error {
	token, err := c.flow.RequestTokenFromRedirectURL(ctx, c.transport.HTTPClient(), callbackURL)
	if err != nil {
		return err
	}

	c.manager.SetToken(token)

	return nil
}

// CredentialsClient is a client authenticated through the Client
// Credentials flow. It acts as the application itself; endpoints that
// need a user context reject its tokens.
type CredentialsClient struct {
	Client

	flow *auth.ClientCredentials
}

// NewWithClientCredentials creates a client for the Client Credentials
// flow.
func NewWithClientCredentials(clientID, clientSecret string, opts ...Option) (*CredentialsClient, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	if clientSecret == "" {
		return nil, ErrClientSecretRequired
	}

	options := applyOptions(opts)

	flow := auth.NewClientCredentials(clientID, clientSecret)
	flow.SetEndpoints(options.tokenURL)

	client, err := newClient(flow, options)
	if err != nil {
		return nil, err
	}

	return &CredentialsClient{Client: *client, flow: flow}, nil
}

// RequestToken obtains an app token and installs it. Renewing after
// expiry means calling it again; the flow has no refresh tokens.
func (c *CredentialsClient) RequestToken(ctx context.Context) error {
	token, err := c.flow.RequestToken(ctx, c.transport.HTTPClient())
	if err != nil {
		return err
	}

	c.manager.SetToken(token)

	return nil
}

func newClient(flow auth.Flow, options *options) (*Client, error) {
	transportOpts := []internalhttp.Option{
		internalhttp.WithDebug(options.debug),
	}

	if options.logger != nil {
		transportOpts = append(transportOpts, internalhttp.WithLogger(options.logger))
	}

	if options.userAgent != "" {
		transportOpts = append(transportOpts, internalhttp.WithUserAgent(options.userAgent))
	}

	if options.httpTimeout > 0 {
		transportOpts = append(transportOpts, internalhttp.WithHTTPTimeout(options.httpTimeout))
	}

	if options.retrySet {
		transportOpts = append(transportOpts, internalhttp.WithRetryConfig(
			options.retryMax, options.retryWaitMin, options.retryWaitMax))
	}

	if options.rateLimit > 0 {
		transportOpts = append(transportOpts, internalhttp.WithRateLimit(options.rateLimit, options.rateBurst))
	}

	manager := auth.NewFlowTokenManager(flow, nil)

	transport := internalhttp.NewClient(options.baseURL, manager, transportOpts...)

	if options.onToken != nil {
		manager.OnToken(options.onToken)
	}

	return &Client{transport: transport, manager: manager}, nil
}

var _ spotify.Client = (*Client)(nil)
