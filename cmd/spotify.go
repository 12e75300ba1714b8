package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// syncReport is the JSON form of a [services.SyncResult].
type syncReport struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func syncReports(results []services.SyncResult) []syncReport {
	reports := make([]syncReport, 0, len(results))
	for _, res := range results {
		rep := syncReport{Kind: res.Kind, Path: res.Path, Count: res.Count, Status: string(res.Status)}
		if res.Err != nil {
			rep.Error = res.Err.Error()
		}
		reports = append(reports, rep)
	}
	return reports
}

// SyncArtists writes followed artists to the data directory.
func (r *Runner) SyncArtists(ctx context.Context, cmd *cli.Command) error {
	return r.reportSync(cmd, r.api().SyncFollowedArtists(ctx))
}

// SyncPlaylists writes the user's playlists to the data directory.
func (r *Runner) SyncPlaylists(ctx context.Context, cmd *cli.Command) error {
	return r.reportSync(cmd, r.api().SyncFollowedPlaylists(ctx))
}

// SyncAlbums writes saved albums to the data directory.
func (r *Runner) SyncAlbums(ctx context.Context, cmd *cli.Command) error {
	return r.reportSync(cmd, r.api().SyncSavedAlbums(ctx))
}

// SyncAll runs every sync in order. A failed sync does not stop the ones after it.
func (r *Runner) SyncAll(ctx context.Context, cmd *cli.Command) error {
	return r.reportSync(cmd, r.api().SyncAll(ctx)...)
}

// reportSync records the results in the history and prints them. Sync failures are already logged
// and are reported in the output, not as a command error.
func (r *Runner) reportSync(cmd *cli.Command, results ...services.SyncResult) error {
	r.recordSync(results)

	if cmd.Bool("json") {
		return r.writeJSON(syncReports(results), true)
	}
	return r.writeSheet(formatter.SyncResults(results), formatter.FormatTable, "")
}

func searchTerms(cmd *cli.Command) (string, error) {
	terms := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if terms == "" {
		return "", fmt.Errorf("%w: search terms", shared.ErrMissingArgument)
	}
	return terms, nil
}

// SearchAlbums prints the first page of albums matching the arguments.
func (r *Runner) SearchAlbums(ctx context.Context, cmd *cli.Command) error {
	terms, err := searchTerms(cmd)
	if err != nil {
		return err
	}

	result := r.api().SearchAlbums(ctx, terms, cmd.Int("limit"))
	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	sheet := formatter.Albums(result.Unwrap())
	sheet.Title = fmt.Sprintf("Albums matching %q", terms)
	return r.writeSheet(sheet, formatter.FormatTable, "")
}

// SearchPlaylists prints the first page of playlists matching the arguments.
func (r *Runner) SearchPlaylists(ctx context.Context, cmd *cli.Command) error {
	terms, err := searchTerms(cmd)
	if err != nil {
		return err
	}

	result := r.api().SearchPlaylists(ctx, terms, cmd.Int("limit"))
	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	sheet := formatter.Playlists(result.Unwrap())
	sheet.Title = fmt.Sprintf("Playlists matching %q", terms)
	return r.writeSheet(sheet, formatter.FormatTable, "")
}

// AlbumTracks prints the first page of an album's tracks.
func (r *Runner) AlbumTracks(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: album id", shared.ErrMissingArgument)
	}

	tracks, ok := r.api().AlbumTracks(ctx, id)
	if !ok {
		return fmt.Errorf("could not fetch tracks for album %s", id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}
	return r.writeSheet(formatter.Tracks(tracks), formatter.FormatTable, "")
}

// ShowArtists prints the persisted followed artists.
func (r *Runner) ShowArtists(ctx context.Context, cmd *cli.Command) error {
	items := r.library().Artists()
	return r.show(cmd, models.KindFollowedArtists, items, formatter.Artists(items))
}

// ShowPlaylists prints the persisted playlists.
func (r *Runner) ShowPlaylists(ctx context.Context, cmd *cli.Command) error {
	items := r.library().Playlists()
	return r.show(cmd, models.KindFollowedPlaylists, items, formatter.Playlists(items))
}

// ShowAlbums prints the persisted saved albums.
func (r *Runner) ShowAlbums(ctx context.Context, cmd *cli.Command) error {
	items := r.library().SavedAlbums()
	return r.show(cmd, models.KindSavedAlbums, items, formatter.SavedAlbums(items))
}

func (r *Runner) show(cmd *cli.Command, kind string, items any, sheet formatter.Sheet) error {
	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := r.writeSheet(sheet, format, output); err != nil {
		return err
	}

	if format == formatter.FormatTable && output == "" {
		r.writeLastSynced(kind)
	}
	return nil
}

// writeLastSynced prints when kind was last synced, if the history has a record of it.
func (r *Runner) writeLastSynced(kind string) {
	repo := r.syncHistory()
	if repo == nil {
		return
	}

	run, err := repo.LatestByKind(kind)
	if err != nil {
		r.logger.Debug("no sync history", "kind", kind, "error", err)
		return
	}
	r.writePlain("Last synced %s (%s)\n", run.CreatedAt().Local().Format("2006-01-02 15:04"), run.Status())
}
