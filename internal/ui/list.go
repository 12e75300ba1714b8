package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/models"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = playlistItem{}
	_ list.Item = albumItem{}
	_ list.Item = trackItem{}
)

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	if len(i.artist.Genres) == 0 {
		return "no genres listed"
	}
	return strings.Join(i.artist.Genres, ", ")
}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.TrackCount())
	if i.playlist.Owner.DisplayName != "" {
		desc = fmt.Sprintf("%s • by %s", desc, i.playlist.Owner.DisplayName)
	}
	if i.playlist.Collaborative {
		desc += " • collaborative"
	}
	return desc
}

// albumItem wraps a saved [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Name }
func (i albumItem) Title() string       { return i.album.Name }
func (i albumItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.album.TotalTracks)
	if names := i.album.ArtistNames(); len(names) > 0 {
		desc = fmt.Sprintf("%s • %s", strings.Join(names, ", "), desc)
	}
	return desc
}

// embeddedTracks returns the track page carried by saved albums, if it is present and non-empty.
func (i albumItem) embeddedTracks() ([]models.Track, bool) {
	if i.album.Tracks == nil || len(i.album.Tracks.Items) == 0 {
		return nil, false
	}
	return i.album.Tracks.Items, true
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string {
	return fmt.Sprintf("%d. %s", i.track.TrackNumber, i.track.Name)
}
func (i trackItem) Description() string {
	secs := i.track.DurationMS / 1000
	desc := fmt.Sprintf("%d:%02d", secs/60, secs%60)
	if i.track.Explicit {
		desc += " • explicit"
	}
	return desc
}

func artistItems(artists []models.Artist) []list.Item {
	items := make([]list.Item, len(artists))
	for i, a := range artists {
		items[i] = artistItem{artist: a}
	}
	return items
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	return items
}

func albumItems(saved []models.SavedAlbum) []list.Item {
	items := make([]list.Item, len(saved))
	for i, sa := range saved {
		items[i] = albumItem{album: sa.Album}
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}
