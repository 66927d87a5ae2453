package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/ry-sev/spotify-web-api/internal/constants"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

const verifierLength = 64

// AuthCodePKCE implements the Authorization Code flow with PKCE. No
// client secret is involved; the code challenge binds the token request
// to the browser session that authorized it.
//
// The flow moves through three states: created, authorization URL
// issued (state and verifier exist), and authorized. Verifying a
// callback or requesting a token before the URL was issued fails.
type AuthCodePKCE struct {
	clientID    string
	redirectURI string
	tokenURL    string
	authURL     string

	mutex    sync.Mutex
	scopes   []spotify.Scope
	state    string
	verifier string
}

// NewAuthCodePKCE creates a PKCE flow for the given application.
func NewAuthCodePKCE(clientID, redirectURI string, scopes ...spotify.Scope) *AuthCodePKCE {
	return &AuthCodePKCE{
		clientID:    clientID,
		redirectURI: redirectURI,
		scopes:      scopes,
	}
}

// SetEndpoints overrides the accounts URLs, primarily for tests.
func (a *AuthCodePKCE) SetEndpoints(authURL, tokenURL string) {
	a.authURL = authURL
	a.tokenURL = tokenURL
}

// SetScopes replaces the scopes requested on the next authorization URL.
func (a *AuthCodePKCE) SetScopes(scopes []spotify.Scope) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.scopes = scopes
}

// AuthorizationURL generates fresh state and code verifier and returns
// the URL the user must visit to authorize the application.
func (a *AuthCodePKCE) AuthorizationURL() (string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.state = uuid.NewString()

	verifier, err := randomVerifier()
	if err != nil {
		return "", err
	}

	a.verifier = verifier
	challenge := sha256.Sum256([]byte(verifier))

	params := spotify.QueryParams{}
	params.Push("client_id", a.clientID).
		Push("response_type", "code").
		Push("redirect_uri", a.redirectURI).
		Push("state", a.state).
		Push("code_challenge_method", "S256").
		Push("code_challenge", base64.RawURLEncoding.EncodeToString(challenge[:]))

	if len(a.scopes) > 0 {
		params.Push("scope", spotify.JoinScopes(a.scopes))
	}

	base := a.authURL
	if base == "" {
		base = constants.AuthorizeURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid authorization URL: %w", err)
	}

	params.AppendToURL(u)

	return u.String(), nil
}

// VerifyAuthorizationCode extracts the authorization code from the
// callback URL after checking its state against the issued one.
func (a *AuthCodePKCE) VerifyAuthorizationCode(callbackURL string) (string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.state == "" {
		return "", spotify.ErrNoState
	}

	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", fmt.Errorf("invalid callback URL: %w", err)
	}

	query := u.Query()

	code := query.Get("code")
	if code == "" {
		return "", spotify.ErrCodeNotFound
	}

	if got := query.Get("state"); got != a.state {
		return "", &spotify.StateMismatchError{Expected: a.state, Got: got}
	}

	return code, nil
}

// RequestToken exchanges an authorization code for a token using the
// verifier generated alongside the authorization URL.
func (a *AuthCodePKCE) RequestToken(ctx context.Context, httpClient *http.Client, code string) (*spotify.Token, error) {
	a.mutex.Lock()
	verifier := a.verifier
	a.mutex.Unlock()

	if verifier == "" {
		return nil, spotify.ErrNoCodeVerifier
	}

	form := &spotify.FormParams{}
	form.Push("grant_type", "authorization_code").
		Push("code", code).
		Push("redirect_uri", a.redirectURI).
		Push("client_id", a.clientID).
		Push("code_verifier", verifier)

	return requestToken(ctx, httpClient, defaultTokenURL(a.tokenURL), "", form)
}

// RequestTokenFromRedirectURL verifies the callback URL and exchanges
// the code it carries in one step.
func (a *AuthCodePKCE) RequestTokenFromRedirectURL(ctx context.Context, httpClient *http.Client, callbackURL string) (*spotify.Token, error) {
	code, err := a.VerifyAuthorizationCode(callbackURL)
	if err != nil {
		return nil, err
	}

	return a.RequestToken(ctx, httpClient, code)
}

// Refresh exchanges a refresh token for a new access token. PKCE refresh
// requests carry the client ID in the form, not Basic credentials.
func (a *AuthCodePKCE) Refresh(ctx context.Context, httpClient *http.Client, refreshToken string) (*spotify.Token, error) {
	if refreshToken == "" {
		return nil, spotify.ErrEmptyRefreshToken
	}

	form := &spotify.FormParams{}
	form.Push("grant_type", "refresh_token").
		Push("refresh_token", refreshToken).
		Push("client_id", a.clientID)

	return requestToken(ctx, httpClient, defaultTokenURL(a.tokenURL), "", form)
}

func randomVerifier() (string, error) {
	raw := make([]byte, verifierLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate code verifier: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
