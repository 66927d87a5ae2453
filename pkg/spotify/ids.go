package spotify

import (
	"fmt"
	"strings"
)

// IDKind is the resource type a Spotify ID refers to.
type IDKind int

// Resource kinds.
const (
	KindAlbum IDKind = iota
	KindArtist
	KindTrack
	KindPlaylist
	KindShow
	KindEpisode
	KindUser
)

// String returns the kind as it appears in Spotify URIs.
func (k IDKind) String() string {
	switch k {
	case KindAlbum:
		return "album"
	case KindArtist:
		return "artist"
	case KindTrack:
		return "track"
	case KindPlaylist:
		return "playlist"
	case KindShow:
		return "show"
	case KindEpisode:
		return "episode"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

const idLength = 22

// ID is a validated Spotify resource identifier. Except for user IDs,
// the value is always 22 base62 characters.
type ID struct {
	kind  IDKind
	value string
}

// NewID validates raw as an identifier of the given kind. User IDs are
// free-form; every other kind must be 22 base62 characters.
func NewID(kind IDKind, raw string) (ID, error) {
	if kind == KindUser {
		return ID{kind: kind, value: raw}, nil
	}

	if len(raw) != idLength {
		return ID{}, &IDLengthError{Got: len(raw), Expected: idLength}
	}

	if !isBase62(raw) {
		return ID{}, ErrInvalidIDFormat
	}

	return ID{kind: kind, value: raw}, nil
}

// ParseURI extracts and validates the ID from a URI of the form
// "spotify:<kind>:<id>".
func ParseURI(kind IDKind, uri string) (ID, error) {
	prefix := "spotify:" + kind.String() + ":"

	raw, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidURIFormat, uri)
	}

	return NewID(kind, raw)
}

// AlbumID validates raw as an album identifier.
func AlbumID(raw string) (ID, error) { return NewID(KindAlbum, raw) }

// ArtistID validates raw as an artist identifier.
func ArtistID(raw string) (ID, error) { return NewID(KindArtist, raw) }

// TrackID validates raw as a track identifier.
func TrackID(raw string) (ID, error) { return NewID(KindTrack, raw) }

// PlaylistID validates raw as a playlist identifier.
func PlaylistID(raw string) (ID, error) { return NewID(KindPlaylist, raw) }

// ShowID validates raw as a show identifier.
func ShowID(raw string) (ID, error) { return NewID(KindShow, raw) }

// EpisodeID validates raw as an episode identifier.
func EpisodeID(raw string) (ID, error) { return NewID(KindEpisode, raw) }

// UserID wraps raw as a user identifier. User IDs are not validated.
func UserID(raw string) ID {
	id, _ := NewID(KindUser, raw)

	return id
}

// Kind returns the resource type of the ID.
func (id ID) Kind() IDKind {
	return id.kind
}

// String returns the bare base62 identifier.
func (id ID) String() string {
	return id.value
}

// URI returns the full Spotify URI, e.g.
// "spotify:track:6rqhFgbbKwnb9MLmUQDhG6".
func (id ID) URI() string {
	return "spotify:" + id.kind.String() + ":" + id.value
}

func isBase62(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}

	return true
}
