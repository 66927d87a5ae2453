// Package spotify provides the building blocks for working with the
// Spotify Web API: endpoint descriptors, parameter encoding, query
// strategies, offset pagination, and the error taxonomy.
//
// # Overview
//
// The spotify package defines the Endpoint abstraction and the generic
// execution strategies (Query, Ignore, Raw, Paged) that turn an endpoint
// descriptor into a typed result. A concrete transport with OAuth token
// management is provided by the spotifyclient package, which wires
// configuration, the HTTP client, and an authentication flow. Most
// consumers should import spotifyclient to construct a client and then
// execute endpoints through the strategies exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/ry-sev/spotify-web-api/pkg/spotify"
//	  "github.com/ry-sev/spotify-web-api/pkg/spotify/endpoints"
//	  "github.com/ry-sev/spotify-web-api/pkg/spotifyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := spotifyclient.NewWithClientCredentials("client-id", "client-secret")
//	  if err != nil { log.Fatal(err) }
//
//	  if err := cli.RequestToken(ctx); err != nil { log.Fatal(err) }
//
//	  id, _ := spotify.AlbumID("4aawyAB9vmqN3uQ7FjRGTy")
//	  album, err := spotify.Query[spotify.Album](ctx, cli, endpoints.GetAlbum{ID: id})
//	  if err != nil { log.Fatal(err) }
//	  _ = album
//	}
//
// # Pagination
//
// Pageable endpoints combine with a Pagination policy through Paged.
// Collect everything eagerly, iterate lazily, or consume page-by-page
// from a channel:
//
//	paged := spotify.PagedWithLimit[spotify.SimplifiedPlaylist](endpoints.GetCurrentUserPlaylists{}, 100)
//
//	all, err := paged.All(ctx, cli)
//
//	it := paged.Iter(cli)
//	for {
//	  item, err := it.Next(ctx)
//	  if err != nil { break }
//	  _ = item
//	}
//
//	for page := range paged.Stream(ctx, cli) {
//	  if page.Err != nil { break }
//	  _ = page.Items
//	}
//
// # Errors
//
// API errors are represented by APIError, LegacyAPIError, UnknownAPIError
// and ServerError depending on the response body shape. Helpers such as
// IsNotFound, IsUnauthorized and IsRateLimited make it easy to branch on
// common cases without unwrapping by hand.
package spotify
