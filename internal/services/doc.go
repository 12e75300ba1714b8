// Package services implements the credentialed Spotify Web API client.
//
// # Pipeline
//
// [Sync] is the generic fetch, decode, unwrap and persist pipeline. It is parameterized by an envelope type
// implementing [models.Envelope] and never returns an error: transport failures and non-2xx statuses are
// logged and leave the target file untouched, undecodable bodies are replaced by the envelope's empty value.
// The outcome is reported as a [SyncResult].
//
// [Load] reads a persisted collection back for offline use.
//
// # Credentials
//
// [Credentials] is an immutable snapshot. [Client.RefreshToken] rotates it through the token endpoint with
// [golang.org/x/oauth2] and leaves it unchanged on any failure. There is no expiry detection: refresh is an
// explicit call.
//
// # Search
//
// [Client.SearchAlbums], [Client.SearchPlaylists] and [Client.AlbumTracks] share a typed query helper whose
// errors wrap [shared.ErrTransport], [shared.ErrStatus] or [shared.ErrDecode]. The exported methods log the
// error and return an empty value.
package services
