package endpoints

import (
	"net/http"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// GetSavedTracks lists the tracks saved in the current user's library.
// The response is paginated.
type GetSavedTracks struct {
	Market string
}

// Method implements spotify.Endpoint.
func (e GetSavedTracks) Method() string {
	return http.MethodGet
}

// Path implements spotify.Endpoint.
func (e GetSavedTracks) Path() string {
	return "me/tracks"
}

// Parameters implements spotify.Parameterized.
func (e GetSavedTracks) Parameters() spotify.QueryParams {
	params := spotify.QueryParams{}

	if e.Market != "" {
		params.Push("market", e.Market)
	}

	return params
}

// Pageable implements spotify.Pageable.
func (e GetSavedTracks) Pageable() {}

// SaveTracks saves tracks to the current user's library. The API returns
// no body; execute with spotify.Ignore.
type SaveTracks struct {
	IDs []spotify.ID
}

// Method implements spotify.Endpoint.
func (e SaveTracks) Method() string {
	return http.MethodPut
}

// Path implements spotify.Endpoint.
func (e SaveTracks) Path() string {
	return "me/tracks"
}

// Body implements spotify.BodyProvider.
func (e SaveTracks) Body() (string, []byte, error) {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, id.String())
	}

	return spotify.JSONBody(map[string]interface{}{"ids": ids})
}
