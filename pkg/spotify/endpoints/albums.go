// Package endpoints contains descriptors for individual Web API
// endpoints. Each descriptor carries its parameters as fields and is
// executed through the strategies in pkg/spotify.
package endpoints

import (
	"net/http"
	"strings"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// GetAlbum fetches a single album.
type GetAlbum struct {
	ID spotify.ID

	// Market restricts the response to content available in an ISO
	// 3166-1 alpha-2 country.
	Market string
}

// Method implements spotify.Endpoint.
func (e GetAlbum) Method() string {
	return http.MethodGet
}

// Path implements spotify.Endpoint.
func (e GetAlbum) Path() string {
	return "albums/" + e.ID.String()
}

// Parameters implements spotify.Parameterized.
func (e GetAlbum) Parameters() spotify.QueryParams {
	params := spotify.QueryParams{}

	if e.Market != "" {
		params.Push("market", e.Market)
	}

	return params
}

// GetArtistAlbums lists an artist's albums. The response is paginated.
type GetArtistAlbums struct {
	ArtistID spotify.ID

	// IncludeGroups filters by the artist's relationship to the album.
	IncludeGroups []spotify.AlbumGroup

	Market string
}

// Method implements spotify.Endpoint.
func (e GetArtistAlbums) Method() string {
	return http.MethodGet
}

// Path implements spotify.Endpoint.
func (e GetArtistAlbums) Path() string {
	return "artists/" + e.ArtistID.String() + "/albums"
}

// Parameters implements spotify.Parameterized.
func (e GetArtistAlbums) Parameters() spotify.QueryParams {
	params := spotify.QueryParams{}

	if len(e.IncludeGroups) > 0 {
		groups := make([]string, 0, len(e.IncludeGroups))
		for _, g := range e.IncludeGroups {
			groups = append(groups, string(g))
		}

		params.Push("include_groups", strings.Join(groups, ","))
	}

	if e.Market != "" {
		params.Push("market", e.Market)
	}

	return params
}

// Pageable implements spotify.Pageable.
func (e GetArtistAlbums) Pageable() {}
