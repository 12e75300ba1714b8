// Package models defines the Spotify payload types and response envelopes used by shelf.
//
// The package contains three categories of types:
//
// 1. Items: the flat records a caller actually wants and that get persisted
//   - [Artist], [Playlist], [Album], [SavedAlbum], [Track]
//
// 2. Envelopes: the outer JSON shapes returned by each endpoint, wrapping a collection of items
//   - [FollowedArtists] : {"artists": {"items": [...]}}
//   - [FollowedPlaylists], [SavedAlbums] : {"items": [...]}
//   - [AlbumSearch], [PlaylistSearch] : {"albums"|"playlists": [Page]}
//   - [Page] : the generic pagination wrapper
//
// Every envelope implements [Envelope], which lets generic code build an empty instance when
// decoding fails and unwrap any nesting depth into a flat slice in a single call.
//
// 3. Persistent entities: database-backed records implementing [Model]
//   - [SyncRun] : one row per sync operation, used by the history command
package models
