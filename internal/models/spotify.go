// Spotify API item types based on https://developer.spotify.com/documentation/web-api/reference/
package models

// ExternalURLs holds the known external URLs for a Spotify object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Image represents an image resource. Width and height are null for user uploaded images.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// Owner represents the user owning a playlist.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Href        string `json:"href"`
	Type        string `json:"type"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres,omitempty"`
	Href         string       `json:"href"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
	Type         string       `json:"type"`
}

// Track represents a simplified track as returned by an album track listing.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	TrackNumber  int          `json:"track_number"`
	DurationMS   int          `json:"duration_ms"`
	Explicit     bool         `json:"explicit"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// AlbumTracks is the embedded track page of a full album object.
type AlbumTracks struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

// Album represents a Spotify album.
//
// Tracks is only populated by the saved albums endpoint; search results omit it.
type Album struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlbumType    string       `json:"album_type"` // album, single or compilation
	Artists      []Artist     `json:"artists"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	Images       []Image      `json:"images,omitempty"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Tracks       *AlbumTracks `json:"tracks,omitempty"`
	URI          string       `json:"uri"`
	Type         string       `json:"type"`
}

// SavedAlbum represents an album saved in the user's library.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// PlaylistTracks is the track reference of a simplified playlist.
type PlaylistTracks struct {
	Href  string `json:"href,omitempty"`
	Total int    `json:"total"`
}

// Playlist represents a simplified playlist object (used in lists and search results).
type Playlist struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Collaborative bool           `json:"collaborative"`
	Public        bool           `json:"public"`
	Owner         Owner          `json:"owner"`
	Tracks        PlaylistTracks `json:"tracks"`
	Href          string         `json:"href"`
	ExternalURLs  ExternalURLs   `json:"external_urls"`
	SnapshotID    string         `json:"snapshot_id,omitempty"`
	URI           string         `json:"uri"`
	Type          string         `json:"type"`
}

// TrackCount returns the number of tracks reported for the playlist.
func (p Playlist) TrackCount() int {
	return p.Tracks.Total
}

// ArtistNames returns the names of the album's credited artists.
func (a Album) ArtistNames() []string {
	names := make([]string, 0, len(a.Artists))
	for _, artist := range a.Artists {
		names = append(names, artist.Name)
	}
	return names
}
