package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive browser over the synced collections.
//
// Album tracks missing from the saved albums are fetched from the API when an access token is configured.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	kind, err := ui.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	// Logs would be drawn over the TUI, so they go to a file while it runs.
	logPath := cmd.String("log-file")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	r.logger.SetOutput(logFile)
	defer r.logger.SetOutput(os.Stderr)

	var tracks ui.TrackSource
	if r.config.Credentials.Spotify.AccessToken != "" {
		tracks = r.api()
	}

	model := ui.NewModel(ctx, r.library(), tracks, kind)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
