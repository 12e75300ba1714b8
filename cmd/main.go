package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrMissingCredentials):
			logger.Fatal("missing credentials, run `shelf auth login` or set SPOTIFY_* variables", "error", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

// app builds the root command. Global flags are visible to every subcommand.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "shelf",
		Usage:   "Mirror your Spotify library to local JSON files",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.prepare,
		After:    r.close,
		Commands: r.register(),
	}
}
