package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// query fetches rawURL and decodes the body into E.
//
// Errors wrap [shared.ErrTransport], [shared.ErrStatus] or [shared.ErrDecode].
func query[E any](ctx context.Context, c *Client, rawURL string) (E, error) {
	var env E

	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return env, err
	}

	if !resp.ok() {
		return env, fmt.Errorf("%w, status: %d", shared.ErrStatus, resp.StatusCode)
	}

	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return env, fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}

	return env, nil
}

// SearchURL builds the search endpoint URL. A non-positive limit uses the configured default.
func (c *Client) SearchURL(terms string, kind models.SearchType, limit int) string {
	if limit <= 0 {
		limit = c.searchLimit
	}

	v := url.Values{}
	v.Set("q", terms)
	v.Set("type", kind.String())
	v.Set("limit", strconv.Itoa(limit))
	return c.Endpoint("/search") + "?" + v.Encode()
}

// SearchAlbums searches the catalog for albums. Any failure is logged and yields an empty result.
func (c *Client) SearchAlbums(ctx context.Context, terms string, limit int) models.AlbumSearch {
	data, err := query[models.AlbumSearch](ctx, c, c.SearchURL(terms, models.SearchTypeAlbum, limit))
	if err != nil {
		c.logger.Error(err.Error(), "terms", terms)
		return data.Empty()
	}
	return data
}

// SearchPlaylists searches the catalog for playlists. Any failure is logged and yields an empty result.
func (c *Client) SearchPlaylists(ctx context.Context, terms string, limit int) models.PlaylistSearch {
	data, err := query[models.PlaylistSearch](ctx, c, c.SearchURL(terms, models.SearchTypePlaylist, limit))
	if err != nil {
		c.logger.Error(err.Error(), "terms", terms)
		return data.Empty()
	}
	return data
}

// AlbumTracks lists the first page of tracks of an album.
//
// The boolean is false when the request failed; true with an empty slice means the album has no tracks.
func (c *Client) AlbumTracks(ctx context.Context, albumID string) ([]models.Track, bool) {
	if albumID == "" {
		c.logger.Error("could not list album tracks", "error", fmt.Errorf("%w: album id", shared.ErrMissingArgument))
		return nil, false
	}

	data, err := query[models.Page[models.Track]](ctx, c, c.Endpoint("/albums/"+url.PathEscape(albumID)+"/tracks"))
	if err != nil {
		c.logger.Error(err.Error(), "album", albumID)
		return nil, false
	}
	return data.Unwrap(), true
}

// AlbumTracksFor lists the tracks of album using its id.
func (c *Client) AlbumTracksFor(ctx context.Context, album models.Album) ([]models.Track, bool) {
	return c.AlbumTracks(ctx, album.ID)
}
