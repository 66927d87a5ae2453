package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ry-sev/spotify-web-api/internal/constants"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// Flow is an OAuth flow capable of renewing an access token. Both flows
// implement it; Client Credentials by rejecting the call, since the
// accounts service issues no refresh tokens for it.
type Flow interface {
	Refresh(ctx context.Context, httpClient *http.Client, refreshToken string) (*spotify.Token, error)
}

// requestToken posts a form to the accounts token endpoint and decodes
// the token response. Failures are classified exactly like API responses.
func requestToken(ctx context.Context, httpClient *http.Client, tokenURL, authorization string, form *spotify.FormParams) (*spotify.Token, error) {
	contentType, body := form.Body()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &spotify.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &spotify.TransportError{Err: err}
	}

	checked := &spotify.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}
	if err := spotify.CheckResponse(checked); err != nil {
		return nil, err
	}

	var token spotify.Token
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, &spotify.DataTypeError{TypeName: "spotify.Token", Err: err}
	}

	if token.AccessToken == "" {
		return nil, spotify.ErrEmptyAccessToken
	}

	return &token, nil
}

// defaultTokenURL falls back to the accounts service when a flow has no
// override configured (tests point flows at a local server).
func defaultTokenURL(override string) string {
	if override != "" {
		return override
	}

	return constants.TokenURL
}
