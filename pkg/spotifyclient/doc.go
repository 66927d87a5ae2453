// Package spotifyclient constructs ready-to-use Spotify Web API clients.
//
// It wires the transport, the token manager, and one of the two
// supported OAuth flows:
//
//   - NewWithPKCE: Authorization Code with PKCE, acting on behalf of a
//     user. Requires sending the user to an authorization URL once and
//     supports refresh.
//   - NewWithClientCredentials: app-only tokens without a user context
//     and without refresh; renew by requesting a new token.
//
// The returned clients implement spotify.Client, so endpoint descriptors
// execute against them through the strategies in pkg/spotify:
//
//	cli, err := spotifyclient.NewWithClientCredentials("id", "secret")
//	if err != nil { ... }
//	if err := cli.RequestToken(ctx); err != nil { ... }
//
//	album, err := spotify.Query[spotify.Album](ctx, cli, endpoints.GetAlbum{ID: id})
//
// Tokens survive restarts through TokenJSON/SetTokenJSON or the token
// callback registered with WithTokenCallback.
package spotifyclient
