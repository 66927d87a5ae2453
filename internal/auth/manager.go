package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/ry-sev/spotify-web-api/internal/constants"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// TokenManager supplies access tokens to the transport, refreshing them
// when they go stale.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token *spotify.Token)
}

// FlowTokenManager is a TokenManager backed by an OAuth flow and a
// TokenStore.
type FlowTokenManager struct {
	flow       Flow
	httpClient *http.Client
	store      *TokenStore
	onToken    func(spotify.Token)
}

// NewFlowTokenManager creates a token manager over the given flow.
func NewFlowTokenManager(flow Flow, httpClient *http.Client) *FlowTokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	return &FlowTokenManager{
		flow:       flow,
		httpClient: httpClient,
		store:      NewTokenStore(),
	}
}

// OnToken registers a callback invoked each time a token is stored, for
// example to persist it. The callback receives a copy.
func (m *FlowTokenManager) OnToken(fn func(spotify.Token)) {
	m.onToken = fn
}

// GetToken returns the current access token, refreshing first when it is
// stale and a refresh token is available.
//
// The staleness check and the refresh are deliberately not a single
// atomic step. Two goroutines may both see a stale token and refresh
// twice; the second result wins and both tokens are usable.
func (m *FlowTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", spotify.ErrEmptyAccessToken
	}

	if token.Expired() && token.RefreshToken != "" {
		if err := m.refresh(ctx, token.RefreshToken); err != nil {
			return "", err
		}

		token = m.store.Get()
	}

	return token.AccessToken, nil
}

// RefreshToken forces a refresh regardless of expiry.
func (m *FlowTokenManager) RefreshToken(ctx context.Context) error {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return spotify.ErrEmptyAccessToken
	}

	if token.RefreshToken == "" {
		return spotify.ErrEmptyRefreshToken
	}

	return m.refresh(ctx, token.RefreshToken)
}

// SetToken stores a token, computing its absolute expiry when the issuer
// did not already.
func (m *FlowTokenManager) SetToken(token *spotify.Token) {
	if token.ExpiresAt.IsZero() && token.ExpiresIn > 0 {
		token.SetExpiry(time.Now())
	}

	m.store.Set(token)

	if m.onToken != nil {
		m.onToken(*token)
	}
}

// Token returns the stored token, or nil when none is set.
func (m *FlowTokenManager) Token() *spotify.Token {
	return m.store.Get()
}

func (m *FlowTokenManager) refresh(ctx context.Context, refreshToken string) error {
	token, err := m.flow.Refresh(ctx, m.httpClient, refreshToken)
	if err != nil {
		return err
	}

	// The accounts service may omit the refresh token on renewal; keep
	// the old one so the session stays refreshable.
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	m.SetToken(token)

	return nil
}
