package spotify_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

func TestToken_SetExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	token := &spotify.Token{AccessToken: "abc", ExpiresIn: 3600}
	token.SetExpiry(now)

	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)
}

func TestToken_Expired(t *testing.T) {
	t.Parallel()

	t.Run("future expiry is valid", func(t *testing.T) {
		t.Parallel()

		token := &spotify.Token{AccessToken: "abc", ExpiresAt: time.Now().Add(time.Hour)}
		assert.False(t, token.Expired())
		assert.True(t, token.Valid())
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		t.Parallel()

		token := &spotify.Token{AccessToken: "abc", ExpiresAt: time.Now().Add(-time.Hour)}
		assert.True(t, token.Expired())
		assert.False(t, token.Valid())
	})

	t.Run("expiry within the buffer counts as expired", func(t *testing.T) {
		t.Parallel()

		token := &spotify.Token{AccessToken: "abc", ExpiresAt: time.Now().Add(10 * time.Second)}
		assert.True(t, token.Expired())
	})

	t.Run("no computed expiry never expires", func(t *testing.T) {
		t.Parallel()

		token := &spotify.Token{AccessToken: "abc"}
		assert.False(t, token.Expired())
	})

	t.Run("empty access token is invalid", func(t *testing.T) {
		t.Parallel()

		token := &spotify.Token{ExpiresAt: time.Now().Add(time.Hour)}
		assert.False(t, token.Valid())
	})
}

func TestToken_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	token := &spotify.Token{
		AccessToken:  "access",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		RefreshToken: "refresh",
		Scope:        "user-read-private",
	}
	token.SetExpiry(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	data, err := json.Marshal(token)
	require.NoError(t, err)

	var restored spotify.Token

	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *token, restored)
}
