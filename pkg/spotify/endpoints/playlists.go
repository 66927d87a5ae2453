package endpoints

import (
	"net/http"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// GetCurrentUserPlaylists lists the playlists owned or followed by the
// current user. The response is paginated.
type GetCurrentUserPlaylists struct{}

// Method implements spotify.Endpoint.
func (e GetCurrentUserPlaylists) Method() string {
	return http.MethodGet
}

// Path implements spotify.Endpoint.
func (e GetCurrentUserPlaylists) Path() string {
	return "me/playlists"
}

// Pageable implements spotify.Pageable.
func (e GetCurrentUserPlaylists) Pageable() {}

// CreatePlaylist creates an empty playlist for a user. Optional fields
// left unset are dropped from the request body rather than sent as null.
type CreatePlaylist struct {
	UserID spotify.ID
	Name   string

	Public        *bool
	Collaborative *bool
	Description   string
}

// Method implements spotify.Endpoint.
func (e CreatePlaylist) Method() string {
	return http.MethodPost
}

// Path implements spotify.Endpoint.
func (e CreatePlaylist) Path() string {
	return "users/" + e.UserID.String() + "/playlists"
}

// Body implements spotify.BodyProvider.
func (e CreatePlaylist) Body() (string, []byte, error) {
	body := map[string]interface{}{
		"name":          e.Name,
		"public":        nil,
		"collaborative": nil,
		"description":   nil,
	}

	if e.Public != nil {
		body["public"] = *e.Public
	}

	if e.Collaborative != nil {
		body["collaborative"] = *e.Collaborative
	}

	if e.Description != "" {
		body["description"] = e.Description
	}

	return spotify.JSONBody(spotify.CleanJSON(body))
}
