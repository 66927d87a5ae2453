package auth

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// ClientCredentials implements the Client Credentials flow: a single
// exchange of application credentials for an app token. Tokens from this
// flow carry no user scopes and no refresh token.
type ClientCredentials struct {
	clientID     string
	clientSecret string
	tokenURL     string
}

// NewClientCredentials creates a Client Credentials flow.
func NewClientCredentials(clientID, clientSecret string) *ClientCredentials {
	return &ClientCredentials{clientID: clientID, clientSecret: clientSecret}
}

// SetEndpoints overrides the token URL, primarily for tests.
func (c *ClientCredentials) SetEndpoints(tokenURL string) {
	c.tokenURL = tokenURL
}

// RequestToken obtains an app token using Basic authentication.
func (c *ClientCredentials) RequestToken(ctx context.Context, httpClient *http.Client) (*spotify.Token, error) {
	form := &spotify.FormParams{}
	form.Push("grant_type", "client_credentials")

	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	return requestToken(ctx, httpClient, defaultTokenURL(c.tokenURL), "Basic "+credentials, form)
}

// Refresh always fails: the flow issues no refresh tokens. Callers renew
// by requesting a fresh token instead.
func (c *ClientCredentials) Refresh(ctx context.Context, httpClient *http.Client, refreshToken string) (*spotify.Token, error) {
	return nil, spotify.ErrEmptyRefreshToken
}
