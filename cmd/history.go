package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// historyEntry is the JSON form of a recorded sync run.
type historyEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	Count     int       `json:"count"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// History prints the most recent sync runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo := r.syncHistory()
	if repo == nil {
		return fmt.Errorf("%w: sync history is unavailable, check database.path", shared.ErrInvalidConfig)
	}

	criteria := map[string]any{"limit": cmd.Int("limit")}
	if kind := cmd.String("kind"); kind != "" {
		criteria["kind"] = kind
	}

	runs, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		entries := make([]historyEntry, 0, len(runs))
		for _, run := range runs {
			entries = append(entries, historyEntry{
				ID:        run.ID(),
				Kind:      run.Kind(),
				Path:      run.Path(),
				Count:     run.ItemCount(),
				Status:    string(run.Status()),
				Error:     run.ErrText(),
				CreatedAt: run.CreatedAt(),
			})
		}
		return r.writeJSON(entries, true)
	}

	return r.writeSheet(formatter.History(runs), formatter.FormatTable, "")
}

// HistoryPrune deletes all but the --keep most recent runs.
func (r *Runner) HistoryPrune(ctx context.Context, cmd *cli.Command) error {
	repo := r.syncHistory()
	if repo == nil {
		return fmt.Errorf("%w: sync history is unavailable, check database.path", shared.ErrInvalidConfig)
	}

	n, err := repo.Prune(cmd.Int("keep"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Removed %d runs\n", n)
}
