package endpoints

import (
	"net/http"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// PausePlayback pauses the user's playback, optionally on a specific
// device. The API returns no body; execute with spotify.Ignore.
type PausePlayback struct {
	DeviceID string
}

// Method implements spotify.Endpoint.
func (e PausePlayback) Method() string {
	return http.MethodPut
}

// Path implements spotify.Endpoint.
func (e PausePlayback) Path() string {
	return "me/player/pause"
}

// Parameters implements spotify.Parameterized.
func (e PausePlayback) Parameters() spotify.QueryParams {
	params := spotify.QueryParams{}

	if e.DeviceID != "" {
		params.Push("device_id", e.DeviceID)
	}

	return params
}
