package auth_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ry-sev/spotify-web-api/internal/auth"
	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

func TestAuthCodePKCE_AuthorizationURL(t *testing.T) {
	t.Parallel()

	flow := auth.NewAuthCodePKCE("client-id", "http://localhost:8080/callback",
		spotify.ScopeUserReadPrivate, spotify.ScopeUserReadEmail)

	rawURL, err := flow.AuthorizationURL()
	require.NoError(t, err)

	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.Equal(t, "accounts.spotify.com", u.Host)
	assert.Equal(t, "/authorize", u.Path)

	query := u.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "http://localhost:8080/callback", query.Get("redirect_uri"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.Equal(t, "user-read-private user-read-email", query.Get("scope"))
	assert.NotEmpty(t, query.Get("state"))
	assert.NotEmpty(t, query.Get("code_challenge"))
}

func TestAuthCodePKCE_FreshStatePerURL(t *testing.T) {
	t.Parallel()

	flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

	first, err := flow.AuthorizationURL()
	require.NoError(t, err)

	second, err := flow.AuthorizationURL()
	require.NoError(t, err)

	firstState := mustQueryValue(t, first, "state")
	secondState := mustQueryValue(t, second, "state")
	assert.NotEqual(t, firstState, secondState)

	firstChallenge := mustQueryValue(t, first, "code_challenge")
	secondChallenge := mustQueryValue(t, second, "code_challenge")
	assert.NotEqual(t, firstChallenge, secondChallenge)
}

func TestAuthCodePKCE_VerifyAuthorizationCode(t *testing.T) {
	t.Parallel()

	t.Run("before any URL was issued", func(t *testing.T) {
		t.Parallel()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

		_, err := flow.VerifyAuthorizationCode("http://localhost/cb?code=abc&state=xyz")
		require.ErrorIs(t, err, spotify.ErrNoState)
	})

	t.Run("missing code", func(t *testing.T) {
		t.Parallel()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

		rawURL, err := flow.AuthorizationURL()
		require.NoError(t, err)

		state := mustQueryValue(t, rawURL, "state")

		_, err = flow.VerifyAuthorizationCode("http://localhost/cb?state=" + state)
		require.ErrorIs(t, err, spotify.ErrCodeNotFound)
	})

	t.Run("state mismatch", func(t *testing.T) {
		t.Parallel()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

		rawURL, err := flow.AuthorizationURL()
		require.NoError(t, err)

		expected := mustQueryValue(t, rawURL, "state")

		_, err = flow.VerifyAuthorizationCode("http://localhost/cb?code=abc&state=forged")

		mismatch := &spotify.StateMismatchError{}
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, expected, mismatch.Expected)
		assert.Equal(t, "forged", mismatch.Got)
	})

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

		rawURL, err := flow.AuthorizationURL()
		require.NoError(t, err)

		state := mustQueryValue(t, rawURL, "state")

		code, err := flow.VerifyAuthorizationCode("http://localhost/cb?code=the-code&state=" + state)
		require.NoError(t, err)
		assert.Equal(t, "the-code", code)
	})
}

func TestAuthCodePKCE_RequestToken(t *testing.T) {
	t.Parallel()

	t.Run("without verifier", func(t *testing.T) {
		t.Parallel()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

		_, err := flow.RequestToken(context.Background(), http.DefaultClient, "code")
		require.ErrorIs(t, err, spotify.ErrNoCodeVerifier)
	})

	t.Run("sends verifier matching the challenge", func(t *testing.T) {
		t.Parallel()

		var challenge string

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Empty(t, request.Header.Get("Authorization"))
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "authorization_code", request.PostForm.Get("grant_type"))
			assert.Equal(t, "the-code", request.PostForm.Get("code"))
			assert.Equal(t, "client-id", request.PostForm.Get("client_id"))
			assert.Equal(t, "http://localhost/cb", request.PostForm.Get("redirect_uri"))

			verifier := request.PostForm.Get("code_verifier")
			sum := sha256.Sum256([]byte(verifier))
			assert.Equal(t, challenge, base64.RawURLEncoding.EncodeToString(sum[:]))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": "granted",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")
		flow.SetEndpoints("", server.URL)

		rawURL, err := flow.AuthorizationURL()
		require.NoError(t, err)

		challenge = mustQueryValue(t, rawURL, "code_challenge")

		token, err := flow.RequestToken(context.Background(), server.Client(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "granted", token.AccessToken)
		assert.Equal(t, 3600, token.ExpiresIn)
	})

	t.Run("accounts error is classified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")
		flow.SetEndpoints("", server.URL)

		_, err := flow.AuthorizationURL()
		require.NoError(t, err)

		_, err = flow.RequestToken(context.Background(), server.Client(), "bad-code")

		legacyErr := &spotify.LegacyAPIError{}
		require.ErrorAs(t, err, &legacyErr)
		assert.Equal(t, "invalid_grant", legacyErr.Message)
	})
}

func TestAuthCodePKCE_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("empty refresh token", func(t *testing.T) {
		t.Parallel()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")

		_, err := flow.Refresh(context.Background(), http.DefaultClient, "")
		require.ErrorIs(t, err, spotify.ErrEmptyRefreshToken)
	})

	t.Run("posts refresh grant without basic auth", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("Authorization"))

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "refresh_token", request.PostForm.Get("grant_type"))
			assert.Equal(t, "old-refresh", request.PostForm.Get("refresh_token"))
			assert.Equal(t, "client-id", request.PostForm.Get("client_id"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": "renewed",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		flow := auth.NewAuthCodePKCE("client-id", "http://localhost/cb")
		flow.SetEndpoints("", server.URL)

		token, err := flow.Refresh(context.Background(), server.Client(), "old-refresh")
		require.NoError(t, err)
		assert.Equal(t, "renewed", token.AccessToken)
	})
}

func mustQueryValue(t *testing.T, rawURL, key string) string {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)

	value := u.Query().Get(key)
	require.NotEmpty(t, value)

	return value
}
