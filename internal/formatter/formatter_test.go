package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
	tu "github.com/desertthunder/shelf/internal/testing"
)

func testAlbums() []models.SavedAlbum {
	return []models.SavedAlbum{
		{
			AddedAt: "2024-03-01T10:00:00Z",
			Album: models.Album{
				ID:          "al1",
				Name:        "Blue Train",
				Artists:     []models.Artist{{Name: "John Coltrane"}},
				TotalTracks: 5,
			},
		},
		{
			AddedAt: "not a date",
			Album: models.Album{
				ID:          "al2",
				Name:        "Duets | Live",
				Artists:     []models.Artist{{Name: "A"}, {Name: "B"}},
				TotalTracks: 12,
			},
		},
	}
}

func TestSheets(t *testing.T) {
	t.Run("Artists", func(t *testing.T) {
		s := Artists([]models.Artist{
			{ID: "a1", Name: "First", Genres: []string{"jazz", "bop"}},
			{ID: "a2", Name: "Second"},
		})

		if len(s.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(s.Rows))
		}
		if got := s.Rows[0][2]; got != "jazz, bop" {
			t.Errorf("expected joined genres, got %q", got)
		}
		if s.Rows[1][0] != "2" {
			t.Errorf("expected 1-based position, got %q", s.Rows[1][0])
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		s := Playlists([]models.Playlist{{
			ID:            "p1",
			Name:          "Mix",
			Public:        true,
			Collaborative: false,
			Owner:         models.Owner{DisplayName: "owner"},
			Tracks:        models.PlaylistTracks{Total: 33},
		}})

		want := []string{"1", "Mix", "owner", "yes", "no", "33", "p1"}
		for i, cell := range want {
			if s.Rows[0][i] != cell {
				t.Errorf("column %s: expected %q, got %q", s.Headers[i], cell, s.Rows[0][i])
			}
		}
	})

	t.Run("SavedAlbums", func(t *testing.T) {
		s := SavedAlbums(testAlbums())

		if got := s.Rows[0][4]; got != "2024-03-01" {
			t.Errorf("expected date only, got %q", got)
		}
		if got := s.Rows[1][4]; got != "not a date" {
			t.Errorf("expected unparseable date to be kept, got %q", got)
		}
		if got := s.Rows[1][2]; got != "A, B" {
			t.Errorf("expected artist names, got %q", got)
		}
	})

	t.Run("Tracks", func(t *testing.T) {
		s := Tracks([]models.Track{
			{ID: "t1", Name: "One", TrackNumber: 3, DurationMS: 185000},
			{ID: "t2", Name: "Two", Explicit: true},
		})

		if s.Rows[0][0] != "3" || s.Rows[0][2] != "3:05" {
			t.Errorf("unexpected first row: %v", s.Rows[0])
		}
		if s.Rows[1][0] != "2" || s.Rows[1][2] != "0:00" || s.Rows[1][3] != "yes" {
			t.Errorf("unexpected second row: %v", s.Rows[1])
		}
	})

	t.Run("SyncResults", func(t *testing.T) {
		s := SyncResults([]services.SyncResult{
			{Kind: models.KindSavedAlbums, Path: "data/saved_albums.json", Count: 2, Status: models.SyncOK},
			{Kind: models.KindFollowedArtists, Status: models.SyncStatusError, Err: errors.New("boom")},
		})

		if s.Rows[0][1] != "ok" || s.Rows[0][2] != "2" || s.Rows[0][4] != "" {
			t.Errorf("unexpected ok row: %v", s.Rows[0])
		}
		if s.Rows[1][4] != "boom" {
			t.Errorf("expected error text, got %q", s.Rows[1][4])
		}
	})

	t.Run("History", func(t *testing.T) {
		run := models.NewSyncRun(models.KindFollowedPlaylists, "p", 4, models.SyncEmpty, "bad json")
		run.SetID("run-1")

		s := History([]*models.SyncRun{run})
		row := s.Rows[0]
		if row[1] != models.KindFollowedPlaylists || row[2] != "empty" || row[3] != "4" || row[4] != "bad json" || row[5] != "run-1" {
			t.Errorf("unexpected row: %v", row)
		}
	})
}

func TestRendering(t *testing.T) {
	s := SavedAlbums(testAlbums())

	t.Run("Table", func(t *testing.T) {
		out := s.Table()
		for _, want := range []string{"Saved albums (2)", "Blue Train", "John Coltrane", "Name"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("Table Without Rows", func(t *testing.T) {
		out := Artists(nil).Table()
		if !strings.Contains(out, "Followed artists (0)") {
			t.Errorf("expected empty title count, got:\n%s", out)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, err := s.CSV()
		if err != nil {
			t.Fatalf("CSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "#,Name,Artists,Tracks,Added,ID\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, `"A, B"`) {
			t.Errorf("expected quoted field, got: %s", output)
		}
		if got := strings.Count(output, "\n"); got != 3 {
			t.Errorf("expected 3 records, got %d", got)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		output := string(s.Markdown())

		if !strings.HasPrefix(output, "# Saved albums\n\n") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "| --- | --- | --- | --- | --- | --- |") {
			t.Errorf("Markdown missing separator, got: %s", output)
		}
		if !strings.Contains(output, `Duets \| Live`) {
			t.Errorf("expected escaped pipe, got: %s", output)
		}
	})

	t.Run("Write", func(t *testing.T) {
		tt := []struct {
			format Format
			want   string
		}{
			{FormatCSV, "#,Name"},
			{FormatMarkdown, "# Saved albums"},
			{FormatTable, "Blue Train"},
		}

		for _, tc := range tt {
			t.Run(string(tc.format), func(t *testing.T) {
				var buf bytes.Buffer
				if err := s.Write(&buf, tc.format); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
				if !strings.Contains(buf.String(), tc.want) {
					t.Errorf("expected %q in output, got: %s", tc.want, buf.String())
				}
			})
		}
	})

	t.Run("Write Error", func(t *testing.T) {
		if err := s.Write(&tu.FWriter{}, FormatCSV); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"CSV", FormatCSV, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"xml", "", true},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tt := map[int]string{0: "0:00", -5: "0:00", 999: "0:00", 61000: "1:01", 3600000: "60:00"}
	for ms, want := range tt {
		if got := formatDuration(ms); got != want {
			t.Errorf("formatDuration(%d) = %s, want %s", ms, got, want)
		}
	}
}
