package spotify_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// mockClient satisfies spotify.Client with a programmable Do.
type mockClient struct {
	base string
	do   func(ctx context.Context, req *spotify.Request) (*spotify.Response, error)
}

func (m *mockClient) Endpoint(path string) (*url.URL, error) {
	base, err := url.Parse(m.base)
	if err != nil {
		return nil, err
	}

	return base.JoinPath(path), nil
}

func (m *mockClient) Do(ctx context.Context, req *spotify.Request) (*spotify.Response, error) {
	return m.do(ctx, req)
}

func newMockClient(do func(ctx context.Context, req *spotify.Request) (*spotify.Response, error)) *mockClient {
	return &mockClient{base: "https://api.example.com/v1/", do: do}
}

func jsonResponse(status int, body string) *spotify.Response {
	return &spotify.Response{
		StatusCode: status,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

type testEndpoint struct {
	method string
	path   string
	params spotify.QueryParams
	body   []byte
}

func (e testEndpoint) Method() string { return e.method }
func (e testEndpoint) Path() string   { return e.path }

func (e testEndpoint) Parameters() spotify.QueryParams { return e.params }

func (e testEndpoint) Body() (string, []byte, error) {
	return spotify.JSONContentType, e.body, nil
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("decodes response into type", func(t *testing.T) {
		t.Parallel()

		client := newMockClient(func(_ context.Context, req *spotify.Request) (*spotify.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "https://api.example.com/v1/albums/abc", req.URL.String())

			return jsonResponse(http.StatusOK, `{"id":"abc","name":"Blue Train"}`), nil
		})

		album, err := spotify.Query[spotify.Album](context.Background(), client, testEndpoint{
			method: http.MethodGet,
			path:   "albums/abc",
		})
		require.NoError(t, err)
		assert.Equal(t, "abc", album.ID)
		assert.Equal(t, "Blue Train", album.Name)
	})

	t.Run("appends endpoint parameters", func(t *testing.T) {
		t.Parallel()

		params := spotify.QueryParams{}
		params.Push("market", "SE").Push("ids", "a").Push("ids", "b")

		client := newMockClient(func(_ context.Context, req *spotify.Request) (*spotify.Response, error) {
			assert.Equal(t, "market=SE&ids=a&ids=b", req.URL.RawQuery)

			return jsonResponse(http.StatusOK, `{}`), nil
		})

		_, err := spotify.Query[map[string]interface{}](context.Background(), client, testEndpoint{
			method: http.MethodGet,
			path:   "tracks",
			params: params,
		})
		require.NoError(t, err)
	})

	t.Run("decode failure wraps DataTypeError", func(t *testing.T) {
		t.Parallel()

		client := newMockClient(func(_ context.Context, _ *spotify.Request) (*spotify.Response, error) {
			return jsonResponse(http.StatusOK, `{"id":123}`), nil
		})

		_, err := spotify.Query[spotify.Album](context.Background(), client, testEndpoint{
			method: http.MethodGet,
			path:   "albums/abc",
		})

		typeErr := &spotify.DataTypeError{}
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "spotify.Album", typeErr.TypeName)
	})
}

func TestIgnore(t *testing.T) {
	t.Parallel()

	t.Run("discards body on success", func(t *testing.T) {
		t.Parallel()

		client := newMockClient(func(_ context.Context, req *spotify.Request) (*spotify.Response, error) {
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, spotify.JSONContentType, req.ContentType)
			assert.JSONEq(t, `{"ids":["x"]}`, string(req.Body))

			return &spotify.Response{StatusCode: http.StatusNoContent}, nil
		})

		err := spotify.Ignore(context.Background(), client, testEndpoint{
			method: http.MethodPut,
			path:   "me/tracks",
			body:   []byte(`{"ids":["x"]}`),
		})
		require.NoError(t, err)
	})

	t.Run("still surfaces API errors", func(t *testing.T) {
		t.Parallel()

		client := newMockClient(func(_ context.Context, _ *spotify.Request) (*spotify.Response, error) {
			return jsonResponse(http.StatusForbidden, `{"error":{"status":403,"message":"Player command failed"}}`), nil
		})

		err := spotify.Ignore(context.Background(), client, testEndpoint{
			method: http.MethodPut,
			path:   "me/player/pause",
		})
		require.Error(t, err)
		assert.True(t, spotify.IsForbidden(err))
	})
}

func TestRaw(t *testing.T) {
	t.Parallel()

	client := newMockClient(func(_ context.Context, _ *spotify.Request) (*spotify.Response, error) {
		return jsonResponse(http.StatusOK, `{"anything":"goes"}`), nil
	})

	body, err := spotify.Raw(context.Background(), client, testEndpoint{
		method: http.MethodGet,
		path:   "albums/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"anything":"goes"}`, string(body))
}

//nolint:funlen // classification table covers every error shape
func TestCheckResponse(t *testing.T) {
	t.Parallel()

	t.Run("structured error", func(t *testing.T) {
		t.Parallel()

		err := spotify.CheckResponse(jsonResponse(http.StatusNotFound,
			`{"error":{"status":404,"message":"Album not found"}}`))

		apiErr := &spotify.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Album not found", apiErr.Message)
		assert.True(t, spotify.IsNotFound(err))
	})

	t.Run("legacy string error", func(t *testing.T) {
		t.Parallel()

		err := spotify.CheckResponse(jsonResponse(http.StatusUnauthorized, `{"error":"invalid_client"}`))

		legacyErr := &spotify.LegacyAPIError{}
		require.ErrorAs(t, err, &legacyErr)
		assert.Equal(t, "invalid_client", legacyErr.Message)
		assert.True(t, spotify.IsUnauthorized(err))
	})

	t.Run("legacy message error", func(t *testing.T) {
		t.Parallel()

		err := spotify.CheckResponse(jsonResponse(http.StatusBadRequest, `{"message":"bad request"}`))

		legacyErr := &spotify.LegacyAPIError{}
		require.ErrorAs(t, err, &legacyErr)
		assert.Equal(t, "bad request", legacyErr.Message)
	})

	t.Run("unrecognized JSON error", func(t *testing.T) {
		t.Parallel()

		err := spotify.CheckResponse(jsonResponse(http.StatusTeapot, `{"weird":"shape"}`))

		unknownErr := &spotify.UnknownAPIError{}
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, http.StatusTeapot, unknownErr.Status)
		assert.JSONEq(t, `{"weird":"shape"}`, string(unknownErr.Body))
	})

	t.Run("non-JSON error body", func(t *testing.T) {
		t.Parallel()

		err := spotify.CheckResponse(&spotify.Response{
			StatusCode: http.StatusBadGateway,
			Body:       []byte("<html>Bad Gateway</html>"),
		})

		serverErr := &spotify.ServerError{}
		require.ErrorAs(t, err, &serverErr)
		assert.Equal(t, http.StatusBadGateway, serverErr.Status)
		assert.Equal(t, "<html>Bad Gateway</html>", string(serverErr.Body))
	})

	t.Run("301 always fails even with parseable body", func(t *testing.T) {
		t.Parallel()

		resp := jsonResponse(http.StatusMovedPermanently, `{"id":"abc"}`)
		resp.Headers.Set("Location", "https://api.example.com/v2/albums/abc")

		err := spotify.CheckResponse(resp)

		movedErr := &spotify.MovedPermanentlyError{}
		require.ErrorAs(t, err, &movedErr)
		assert.Equal(t, "https://api.example.com/v2/albums/abc", movedErr.Location)
	})

	t.Run("301 without location header", func(t *testing.T) {
		t.Parallel()

		err := spotify.CheckResponse(&spotify.Response{
			StatusCode: http.StatusMovedPermanently,
			Headers:    http.Header{},
		})

		movedErr := &spotify.MovedPermanentlyError{}
		require.ErrorAs(t, err, &movedErr)
		assert.Empty(t, movedErr.Location)
	})

	t.Run("2xx passes", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, spotify.CheckResponse(jsonResponse(http.StatusOK, `{}`)))
		require.NoError(t, spotify.CheckResponse(&spotify.Response{StatusCode: http.StatusNoContent}))
	})
}

type overrideEndpoint struct {
	testEndpoint
}

func (e overrideEndpoint) BaseURL() string { return "https://accounts.example.com" }

func TestQuery_BaseURLOverride(t *testing.T) {
	t.Parallel()

	client := newMockClient(func(_ context.Context, req *spotify.Request) (*spotify.Response, error) {
		assert.Equal(t, "https://accounts.example.com/api/token", req.URL.String())

		return jsonResponse(http.StatusOK, `{}`), nil
	})

	_, err := spotify.Query[map[string]interface{}](context.Background(), client, overrideEndpoint{
		testEndpoint{method: http.MethodPost, path: "api/token"},
	})
	require.NoError(t, err)
}
