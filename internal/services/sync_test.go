package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	tu "github.com/desertthunder/shelf/internal/testing"
)

const followedArtistsBody = `{
  "artists": {
    "items": [
      {"id": "a1", "name": "Boards of Canada", "genres": ["idm"]},
      {"id": "a2", "name": "Autechre", "genres": ["idm", "glitch"]}
    ],
    "total": 2,
    "limit": 20
  }
}`

const playlistsBody = `{"items": [{"id": "p1", "name": "Morning", "public": true, "tracks": {"total": 12}}], "total": 1}`

const savedAlbumsBody = `{"items": [{"added_at": "2024-03-01T10:00:00Z", "album": {"id": "al1", "name": "Geogaddi", "total_tracks": 23}}], "total": 1}`

func newSyncClient(t *testing.T, status int, body string) (*Client, *tu.APIServer, string, func() string) {
	t.Helper()
	srv := tu.NewAPIServer(t, status, body)
	logger, buf := tu.NewLogger()
	dir := filepath.Join(t.TempDir(), "data")
	c := NewClient(testCreds, WithLogger(logger), WithBaseURL(srv.URL), WithDataDir(dir))
	return c, srv, dir, buf.String
}

func TestSync(t *testing.T) {
	t.Run("Persists Unwrapped Items", func(t *testing.T) {
		c, srv, dir, _ := newSyncClient(t, http.StatusOK, followedArtistsBody)

		result := c.SyncFollowedArtists(context.Background())

		if result.Status != models.SyncOK || result.Err != nil {
			t.Fatalf("expected ok, got %s (%v)", result.Status, result.Err)
		}
		if result.Count != 2 {
			t.Errorf("expected 2 items, got %d", result.Count)
		}
		if result.Kind != models.KindFollowedArtists {
			t.Errorf("unexpected kind %s", result.Kind)
		}

		path := filepath.Join(dir, FollowedArtistsFile)
		if result.Path != path {
			t.Errorf("expected path %s, got %s", path, result.Path)
		}

		content := tu.MustReadFile(t, path)
		if !strings.HasPrefix(strings.TrimSpace(content), "[") {
			t.Errorf("expected a bare JSON array, got %s", content)
		}
		if strings.Contains(content, `"artists"`) {
			t.Error("expected wrapper to be stripped")
		}

		req := srv.Last(t)
		if req.Path != "/me/following" || req.Query != "type=artist" {
			t.Errorf("unexpected request %s?%s", req.Path, req.Query)
		}
	})

	t.Run("Named Targets", func(t *testing.T) {
		tt := []struct {
			name  string
			body  string
			run   func(*Client) SyncResult
			path  string
			file  string
			kind  string
			count int
		}{
			{"FollowedPlaylists", playlistsBody, func(c *Client) SyncResult { return c.SyncFollowedPlaylists(context.Background()) }, "/me/playlists", FollowedPlaylistsFile, models.KindFollowedPlaylists, 1},
			{"SavedAlbums", savedAlbumsBody, func(c *Client) SyncResult { return c.SyncSavedAlbums(context.Background()) }, "/me/albums", SavedAlbumsFile, models.KindSavedAlbums, 1},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				c, srv, dir, _ := newSyncClient(t, http.StatusOK, tc.body)

				result := tc.run(c)
				if result.Status != models.SyncOK {
					t.Fatalf("expected ok, got %s", result.Status)
				}
				if result.Count != tc.count || result.Kind != tc.kind {
					t.Errorf("unexpected result %+v", result)
				}
				if req := srv.Last(t); req.Path != tc.path {
					t.Errorf("expected request to %s, got %s", tc.path, req.Path)
				}
				tu.AssertFileExists(t, filepath.Join(dir, tc.file))
			})
		}
	})

	t.Run("Non 2xx Leaves File Untouched", func(t *testing.T) {
		c, _, dir, logs := newSyncClient(t, http.StatusUnauthorized, `{"error": {"status": 401, "message": "The access token expired"}}`)

		path := filepath.Join(dir, SavedAlbumsFile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		tu.MustWriteFile(t, path, `["previous"]`)

		result := c.SyncSavedAlbums(context.Background())

		if result.Status != models.SyncStatusError {
			t.Errorf("expected status error, got %s", result.Status)
		}
		if !errors.Is(result.Err, shared.ErrStatus) {
			t.Errorf("expected ErrStatus, got %v", result.Err)
		}
		if got := tu.MustReadFile(t, path); got != `["previous"]` {
			t.Errorf("expected file to be untouched, got %s", got)
		}

		out := logs()
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 1 {
			t.Fatalf("expected exactly one log line, got %d:\n%s", len(lines), out)
		}
		if !strings.Contains(lines[0], "unsuccessful request") || !strings.Contains(lines[0], "status=401") {
			t.Errorf("expected status diagnostic, got %q", lines[0])
		}
	})

	t.Run("Non 2xx Creates Nothing", func(t *testing.T) {
		c, _, dir, _ := newSyncClient(t, http.StatusInternalServerError, ``)

		c.SyncFollowedPlaylists(context.Background())
		tu.AssertFileNotExists(t, filepath.Join(dir, FollowedPlaylistsFile))
	})

	t.Run("Malformed Body Persists Empty Collection", func(t *testing.T) {
		c, _, dir, logs := newSyncClient(t, http.StatusOK, `{"artists": {"items": [`)

		result := c.SyncFollowedArtists(context.Background())

		if result.Status != models.SyncEmpty {
			t.Errorf("expected empty status, got %s", result.Status)
		}
		if !errors.Is(result.Err, shared.ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", result.Err)
		}
		if result.Count != 0 {
			t.Errorf("expected 0 items, got %d", result.Count)
		}

		content := tu.MustReadFile(t, filepath.Join(dir, FollowedArtistsFile))
		if strings.TrimSpace(content) != "[]" {
			t.Errorf("expected empty array, got %q", content)
		}
		if !strings.Contains(logs(), "could not deserialize json body") {
			t.Error("expected decode failure to be logged")
		}
	})

	t.Run("Wrong Shape Persists Empty Collection", func(t *testing.T) {
		c, _, dir, _ := newSyncClient(t, http.StatusOK, `{"something": "else"}`)

		result := c.SyncSavedAlbums(context.Background())
		if result.Status != models.SyncOK || result.Count != 0 {
			t.Errorf("expected ok with no items, got %+v", result)
		}
		if content := tu.MustReadFile(t, filepath.Join(dir, SavedAlbumsFile)); strings.TrimSpace(content) != "[]" {
			t.Errorf("expected empty array, got %q", content)
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		logger, buf := tu.NewLogger()
		dir := t.TempDir()
		h := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("dial tcp: connection refused"))}
		c := NewClient(testCreds, WithLogger(logger), WithHTTPClient(h), WithDataDir(dir))

		result := c.SyncFollowedArtists(context.Background())

		if result.Status != models.SyncTransportError {
			t.Errorf("expected transport error, got %s", result.Status)
		}
		if !errors.Is(result.Err, shared.ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", result.Err)
		}
		if got := tu.CountLines(buf, "could not receive response"); got != 1 {
			t.Errorf("expected one transport diagnostic, got %d", got)
		}
		tu.AssertFileNotExists(t, filepath.Join(dir, FollowedArtistsFile))
	})

	t.Run("Persist Failure Is Reported", func(t *testing.T) {
		srv := tu.NewAPIServer(t, http.StatusOK, playlistsBody)
		logger, buf := tu.NewLogger()

		blocker := filepath.Join(t.TempDir(), "blocker")
		tu.MustWriteFile(t, blocker, "x")

		c := NewClient(testCreds, WithLogger(logger), WithBaseURL(srv.URL), WithDataDir(blocker))
		result := c.SyncFollowedPlaylists(context.Background())

		if result.Status != models.SyncPersistError {
			t.Errorf("expected persist error, got %s", result.Status)
		}
		if !errors.Is(result.Err, shared.ErrPersist) {
			t.Errorf("expected ErrPersist, got %v", result.Err)
		}
		if got := tu.CountLines(buf, "could not persist items"); got != 1 {
			t.Errorf("expected one persist diagnostic, got %d", got)
		}
	})

	t.Run("SyncAll Runs In Order", func(t *testing.T) {
		c, srv, _, _ := newSyncClient(t, http.StatusOK, `{}`)

		results := c.SyncAll(context.Background())
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}

		want := []string{models.KindFollowedArtists, models.KindFollowedPlaylists, models.KindSavedAlbums}
		for i, r := range results {
			if r.Kind != want[i] {
				t.Errorf("result %d: expected %s, got %s", i, want[i], r.Kind)
			}
		}

		reqs := srv.Requests()
		paths := []string{reqs[0].Path, reqs[1].Path, reqs[2].Path}
		if !reflect.DeepEqual(paths, []string{"/me/following", "/me/playlists", "/me/albums"}) {
			t.Errorf("unexpected request order %v", paths)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("Round Trip Preserves Order", func(t *testing.T) {
		c, _, dir, _ := newSyncClient(t, http.StatusOK, followedArtistsBody)
		c.SyncFollowedArtists(context.Background())

		logger, buf := tu.NewLogger()
		artists := LoadFollowedArtists(dir, logger)

		if len(artists) != 2 {
			t.Fatalf("expected 2 artists, got %d", len(artists))
		}
		if artists[0].ID != "a1" || artists[1].ID != "a2" {
			t.Errorf("expected source order, got %s, %s", artists[0].ID, artists[1].ID)
		}
		if !reflect.DeepEqual(artists[1].Genres, []string{"idm", "glitch"}) {
			t.Errorf("unexpected genres %v", artists[1].Genres)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no log output, got %q", buf.String())
		}
	})

	t.Run("Write Then Load Is Equal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), SavedAlbumsFile)
		want := []models.SavedAlbum{
			{AddedAt: "2024-01-01T00:00:00Z", Album: models.Album{ID: "x", Name: "First", TotalTracks: 3}},
			{AddedAt: "2024-01-02T00:00:00Z", Album: models.Album{ID: "y", Name: "Second", TotalTracks: 9}},
		}
		if err := shared.WriteJSONFile(path, want); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		logger, _ := tu.NewLogger()
		got := Load[models.SavedAlbums, models.SavedAlbum](path, logger)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
	})

	t.Run("Missing File Yields Empty", func(t *testing.T) {
		logger, buf := tu.NewLogger()
		got := LoadFollowedPlaylists(t.TempDir(), logger)

		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
		if got := tu.CountLines(buf, "could not read file"); got != 1 {
			t.Errorf("expected one diagnostic, got %d", got)
		}
	})

	t.Run("Malformed File Yields Empty", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, SavedAlbumsFile), `[{"album": `)

		logger, buf := tu.NewLogger()
		got := LoadSavedAlbums(dir, logger)

		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
		if got := tu.CountLines(buf, "could not deserialize json file"); got != 1 {
			t.Errorf("expected one diagnostic, got %d", got)
		}
	})
}

func TestLibrary(t *testing.T) {
	dir := t.TempDir()
	artists := []models.Artist{{ID: "a1", Name: "First"}}
	if err := shared.WriteJSONFile(filepath.Join(dir, FollowedArtistsFile), artists); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	logger, buf := tu.NewLogger()
	c := NewClient(Credentials{ClientID: "id", ClientSecret: "secret", AccessToken: "a", RefreshToken: "r"}, WithDataDir(dir), WithLogger(logger))
	lib := c.Library()

	if got := lib.Artists(); !reflect.DeepEqual(got, artists) {
		t.Errorf("expected persisted artists, got %+v", got)
	}
	if got := lib.Playlists(); len(got) != 0 {
		t.Errorf("expected no playlists, got %d", len(got))
	}
	if got := lib.SavedAlbums(); len(got) != 0 {
		t.Errorf("expected no albums, got %d", len(got))
	}
	if got := tu.CountLines(buf, "could not read file"); got != 2 {
		t.Errorf("expected two missing file diagnostics, got %d", got)
	}
}
