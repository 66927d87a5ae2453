package endpoints

import (
	"net/http"
	"strings"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// Search queries the catalog. At least one item type must be requested;
// the result carries one page per requested type.
type Search struct {
	Query string
	Types []spotify.SearchType

	Market string

	// IncludeExternal set to "audio" marks externally hosted audio as
	// playable.
	IncludeExternal string
}

// Method implements spotify.Endpoint.
func (e Search) Method() string {
	return http.MethodGet
}

// Path implements spotify.Endpoint.
func (e Search) Path() string {
	return "search"
}

// Parameters implements spotify.Parameterized.
func (e Search) Parameters() spotify.QueryParams {
	types := make([]string, 0, len(e.Types))
	for _, t := range e.Types {
		types = append(types, string(t))
	}

	params := spotify.QueryParams{}
	params.Push("q", e.Query).
		Push("type", strings.Join(types, ","))

	if e.Market != "" {
		params.Push("market", e.Market)
	}

	if e.IncludeExternal != "" {
		params.Push("include_external", e.IncludeExternal)
	}

	return params
}
