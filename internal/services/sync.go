package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// File names of the persisted collections, relative to the data directory.
const (
	FollowedArtistsFile   = "followed_artists.json"
	FollowedPlaylistsFile = "followed_playlists.json"
	SavedAlbumsFile       = "saved_albums.json"
)

// SyncTarget binds a resource kind to the URL it is fetched from and the file it is written to.
type SyncTarget struct {
	Kind string
	URL  string
	Path string
}

// SyncResult reports the outcome of a sync. It is informational: failures have already been logged.
type SyncResult struct {
	Kind   string
	Path   string
	Count  int
	Status models.SyncStatus
	Err    error
}

// Sync fetches target.URL, decodes the body into E, unwraps its items and writes them to target.Path.
//
// Nothing is written when the request fails or the status is not 2xx. A body that cannot be decoded is
// replaced with E's empty value, so an empty collection is written and the status is [models.SyncEmpty].
func Sync[E models.Envelope[E, T], T any](ctx context.Context, c *Client, target SyncTarget) SyncResult {
	result := SyncResult{Kind: target.Kind, Path: target.Path}
	logger := c.logger.With("kind", target.Kind)

	resp, err := c.get(ctx, target.URL)
	if err != nil {
		logger.Error("could not receive response", "url", target.URL, "error", err)
		result.Status, result.Err = models.SyncTransportError, err
		return result
	}

	if !resp.ok() {
		logger.Error("unsuccessful request", "status", resp.StatusCode, "url", target.URL)
		result.Status = models.SyncStatusError
		result.Err = fmt.Errorf("%w: status %d", shared.ErrStatus, resp.StatusCode)
		return result
	}

	result.Status = models.SyncOK

	var env E
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		logger.Warn("could not deserialize json body, writing an empty collection", "error", err)
		env = env.Empty()
		result.Status = models.SyncEmpty
		result.Err = fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}

	items := env.Unwrap()
	if err := shared.WriteJSONFile(target.Path, items); err != nil {
		logger.Error("could not persist items", "path", target.Path, "error", err)
		result.Status, result.Err = models.SyncPersistError, err
		return result
	}

	result.Count = len(items)
	logger.Info("synced", "count", result.Count, "path", target.Path)
	return result
}

// Load reads a collection written by [Sync]. A missing or unreadable file yields E's empty items.
func Load[E models.Envelope[E, T], T any](path string, logger *log.Logger) []T {
	var items models.ItemCollection[T]
	if err := shared.ReadJSONFile(path, &items); err != nil {
		if errors.Is(err, shared.ErrDecode) {
			logger.Error("could not deserialize json file", "path", path, "error", err)
		} else {
			logger.Error("could not read file", "path", path, "error", err)
		}
		var empty E
		return empty.Empty().Unwrap()
	}
	return items.Unwrap()
}

func (c *Client) target(kind, endpoint, file string) SyncTarget {
	return SyncTarget{Kind: kind, URL: c.Endpoint(endpoint), Path: filepath.Join(c.dataDir, file)}
}

// SyncFollowedArtists writes the first page of followed artists to followed_artists.json.
func (c *Client) SyncFollowedArtists(ctx context.Context) SyncResult {
	return Sync[models.FollowedArtists, models.Artist](ctx, c, c.target(models.KindFollowedArtists, "/me/following?type=artist", FollowedArtistsFile))
}

// SyncFollowedPlaylists writes the first page of the user's playlists to followed_playlists.json.
func (c *Client) SyncFollowedPlaylists(ctx context.Context) SyncResult {
	return Sync[models.FollowedPlaylists, models.Playlist](ctx, c, c.target(models.KindFollowedPlaylists, "/me/playlists", FollowedPlaylistsFile))
}

// SyncSavedAlbums writes the first page of saved albums to saved_albums.json.
func (c *Client) SyncSavedAlbums(ctx context.Context) SyncResult {
	return Sync[models.SavedAlbums, models.SavedAlbum](ctx, c, c.target(models.KindSavedAlbums, "/me/albums", SavedAlbumsFile))
}

// SyncAll runs every named sync in order.
func (c *Client) SyncAll(ctx context.Context) []SyncResult {
	return []SyncResult{
		c.SyncFollowedArtists(ctx),
		c.SyncFollowedPlaylists(ctx),
		c.SyncSavedAlbums(ctx),
	}
}

func LoadFollowedArtists(dataDir string, logger *log.Logger) []models.Artist {
	return Load[models.FollowedArtists, models.Artist](filepath.Join(dataDir, FollowedArtistsFile), logger)
}

func LoadFollowedPlaylists(dataDir string, logger *log.Logger) []models.Playlist {
	return Load[models.FollowedPlaylists, models.Playlist](filepath.Join(dataDir, FollowedPlaylistsFile), logger)
}

func LoadSavedAlbums(dataDir string, logger *log.Logger) []models.SavedAlbum {
	return Load[models.SavedAlbums, models.SavedAlbum](filepath.Join(dataDir, SavedAlbumsFile), logger)
}

// Library reads the collections persisted in a data directory.
type Library struct {
	dir    string
	logger *log.Logger
}

// NewLibrary returns a [Library] over dir.
func NewLibrary(dir string, logger *log.Logger) Library {
	return Library{dir: dir, logger: logger}
}

// Library returns a [Library] over the client's data directory.
func (c *Client) Library() Library {
	return NewLibrary(c.dataDir, c.logger)
}

func (l Library) Artists() []models.Artist         { return LoadFollowedArtists(l.dir, l.logger) }
func (l Library) Playlists() []models.Playlist     { return LoadFollowedPlaylists(l.dir, l.logger) }
func (l Library) SavedAlbums() []models.SavedAlbum { return LoadSavedAlbums(l.dir, l.logger) }
