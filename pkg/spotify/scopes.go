package spotify

import "strings"

// Scope is an OAuth authorization scope.
type Scope string

// Authorization scopes. Client Credentials tokens carry none; the PKCE
// flow requests whichever scopes the application needs.
const (
	ScopeUserReadPrivate           Scope = "user-read-private"
	ScopeUserReadEmail             Scope = "user-read-email"
	ScopeUserTopRead               Scope = "user-top-read"
	ScopeUserReadRecentlyPlayed    Scope = "user-read-recently-played"
	ScopeUserFollowRead            Scope = "user-follow-read"
	ScopeUserFollowModify          Scope = "user-follow-modify"
	ScopeUserLibraryRead           Scope = "user-library-read"
	ScopeUserLibraryModify         Scope = "user-library-modify"
	ScopeUserReadPlaybackState     Scope = "user-read-playback-state"
	ScopeUserModifyPlaybackState   Scope = "user-modify-playback-state"
	ScopeUserReadCurrentlyPlaying  Scope = "user-read-currently-playing"
	ScopeUserReadPlaybackPosition  Scope = "user-read-playback-position"
	ScopePlaylistReadPrivate       Scope = "playlist-read-private"
	ScopePlaylistReadCollaborative Scope = "playlist-read-collaborative"
	ScopePlaylistModifyPublic      Scope = "playlist-modify-public"
	ScopePlaylistModifyPrivate     Scope = "playlist-modify-private"
	ScopeUGCImageUpload            Scope = "ugc-image-upload"
	ScopeStreaming                 Scope = "streaming"
)

// UserDetailScopes covers reading the current user's profile.
func UserDetailScopes() []Scope {
	return []Scope{ScopeUserReadPrivate, ScopeUserReadEmail}
}

// PlaylistScopes covers reading and modifying playlists.
func PlaylistScopes() []Scope {
	return []Scope{
		ScopePlaylistReadPrivate,
		ScopePlaylistReadCollaborative,
		ScopePlaylistModifyPublic,
		ScopePlaylistModifyPrivate,
	}
}

// LibraryScopes covers the user's saved items.
func LibraryScopes() []Scope {
	return []Scope{ScopeUserLibraryRead, ScopeUserLibraryModify}
}

// PlaybackScopes covers reading and controlling playback.
func PlaybackScopes() []Scope {
	return []Scope{
		ScopeUserReadPlaybackState,
		ScopeUserModifyPlaybackState,
		ScopeUserReadCurrentlyPlaying,
	}
}

// JoinScopes renders scopes as the space-separated string the
// authorization endpoint expects.
func JoinScopes(scopes []Scope) string {
	parts := make([]string, 0, len(scopes))
	for _, s := range scopes {
		parts = append(parts, string(s))
	}

	return strings.Join(parts, " ")
}
