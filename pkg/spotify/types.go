package spotify

// Page is the offset-paginated envelope the API wraps list results in.
type Page[T any] struct {
	Href     string  `json:"href"`
	Limit    int     `json:"limit"`
	Next     *string `json:"next"`
	Offset   int     `json:"offset"`
	Previous *string `json:"previous"`
	Total    int     `json:"total"`
	Items    []T     `json:"items"`
}

// Image is an image with an optional size.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// ExternalURLs holds known external URLs for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Followers holds follower information for an artist, playlist or user.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Restrictions explains why content is unavailable in a market.
type Restrictions struct {
	Reason string `json:"reason"`
}

// SimplifiedArtist is the artist shape embedded in albums and tracks.
type SimplifiedArtist struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// Album is a full album object.
type Album struct {
	AlbumType            string             `json:"album_type"`
	TotalTracks          int                `json:"total_tracks"`
	AvailableMarkets     []string           `json:"available_markets,omitempty"`
	ExternalURLs         ExternalURLs       `json:"external_urls"`
	Href                 string             `json:"href"`
	ID                   string             `json:"id"`
	Images               []Image            `json:"images"`
	Name                 string             `json:"name"`
	ReleaseDate          string             `json:"release_date"`
	ReleaseDatePrecision string             `json:"release_date_precision"`
	Restrictions         *Restrictions      `json:"restrictions,omitempty"`
	Type                 string             `json:"type"`
	URI                  string             `json:"uri"`
	Artists              []SimplifiedArtist `json:"artists"`
	Tracks               *Page[Track]       `json:"tracks,omitempty"`
	Popularity           int                `json:"popularity,omitempty"`
}

// SimplifiedAlbum is the album shape returned by artist-album listings;
// AlbumGroup says how the artist relates to the album.
type SimplifiedAlbum struct {
	AlbumType            string             `json:"album_type"`
	AlbumGroup           string             `json:"album_group,omitempty"`
	TotalTracks          int                `json:"total_tracks"`
	ExternalURLs         ExternalURLs       `json:"external_urls"`
	Href                 string             `json:"href"`
	ID                   string             `json:"id"`
	Images               []Image            `json:"images"`
	Name                 string             `json:"name"`
	ReleaseDate          string             `json:"release_date"`
	ReleaseDatePrecision string             `json:"release_date_precision"`
	Type                 string             `json:"type"`
	URI                  string             `json:"uri"`
	Artists              []SimplifiedArtist `json:"artists"`
}

// Track is a full track object.
type Track struct {
	Album            *Album             `json:"album,omitempty"`
	Artists          []SimplifiedArtist `json:"artists"`
	AvailableMarkets []string           `json:"available_markets,omitempty"`
	DiscNumber       int                `json:"disc_number"`
	DurationMS       int                `json:"duration_ms"`
	Explicit         bool               `json:"explicit"`
	ExternalURLs     ExternalURLs       `json:"external_urls"`
	Href             string             `json:"href"`
	ID               string             `json:"id"`
	IsPlayable       *bool              `json:"is_playable,omitempty"`
	Name             string             `json:"name"`
	Popularity       int                `json:"popularity"`
	TrackNumber      int                `json:"track_number"`
	Type             string             `json:"type"`
	URI              string             `json:"uri"`
	IsLocal          bool               `json:"is_local"`
}

// SavedTrack is a track with the time it was saved to the library.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// PlaylistOwner is the user shape embedded in playlists.
type PlaylistOwner struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
	DisplayName  *string      `json:"display_name"`
}

// PlaylistTracksRef is the abbreviated track listing in playlist summaries.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplifiedPlaylist is the playlist shape returned by playlist listings.
type SimplifiedPlaylist struct {
	Collaborative bool              `json:"collaborative"`
	Description   *string           `json:"description"`
	ExternalURLs  ExternalURLs      `json:"external_urls"`
	Href          string            `json:"href"`
	ID            string            `json:"id"`
	Images        []Image           `json:"images"`
	Name          string            `json:"name"`
	Owner         PlaylistOwner     `json:"owner"`
	Public        *bool             `json:"public"`
	SnapshotID    string            `json:"snapshot_id"`
	Tracks        PlaylistTracksRef `json:"tracks"`
	Type          string            `json:"type"`
	URI           string            `json:"uri"`
}

// Playlist is a full playlist object.
type Playlist struct {
	Collaborative bool          `json:"collaborative"`
	Description   *string       `json:"description"`
	ExternalURLs  ExternalURLs  `json:"external_urls"`
	Followers     *Followers    `json:"followers,omitempty"`
	Href          string        `json:"href"`
	ID            string        `json:"id"`
	Images        []Image       `json:"images"`
	Name          string        `json:"name"`
	Owner         PlaylistOwner `json:"owner"`
	Public        *bool         `json:"public"`
	SnapshotID    string        `json:"snapshot_id"`
	Type          string        `json:"type"`
	URI           string        `json:"uri"`
}

// SearchResults groups the paginated result sets of a search, one per
// requested item type.
type SearchResults struct {
	Tracks    *Page[Track]              `json:"tracks,omitempty"`
	Artists   *Page[SimplifiedArtist]   `json:"artists,omitempty"`
	Albums    *Page[SimplifiedAlbum]    `json:"albums,omitempty"`
	Playlists *Page[SimplifiedPlaylist] `json:"playlists,omitempty"`
}

// SearchType selects which item types a search returns.
type SearchType string

// Search item types.
const (
	SearchAlbum    SearchType = "album"
	SearchArtist   SearchType = "artist"
	SearchPlaylist SearchType = "playlist"
	SearchTrack    SearchType = "track"
	SearchShow     SearchType = "show"
	SearchEpisode  SearchType = "episode"
)

// AlbumGroup filters artist-album listings by the artist's relationship
// to the album.
type AlbumGroup string

// Album groups.
const (
	AlbumGroupAlbum       AlbumGroup = "album"
	AlbumGroupSingle      AlbumGroup = "single"
	AlbumGroupAppearsOn   AlbumGroup = "appears_on"
	AlbumGroupCompilation AlbumGroup = "compilation"
)
