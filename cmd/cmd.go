// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output JSON instead of a table",
	}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   "Maximum number of results (0 uses spotify.search_limit)",
	}
}

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file and initialize the history database",
		Action: r.Setup,
		Commands: []*cli.Command{
			{
				Name:   "rollback",
				Usage:  "Roll back the latest database migration",
				Action: r.SetupRollback,
			},
			{
				Name:   "version",
				Usage:  "Print the current database migration version",
				Action: r.SetupVersion,
			},
		},
	}
}

// authCommand handles token acquisition and rotation.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify credentials",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize with Spotify in the browser and save the tokens",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL without opening it",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the authorization redirect",
						Value: 2 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "refresh",
				Usage: "Exchange the refresh token for a new access token",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write the rotated tokens to the config file",
					},
				},
				Action: r.AuthRefresh,
			},
			{
				Name:   "status",
				Usage:  "Show which credentials are configured",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// syncCommand fetches library collections and writes them to the data directory.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch library collections and save them as JSON",
		Commands: []*cli.Command{
			{
				Name:   "artists",
				Usage:  "Sync followed artists",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SyncArtists,
			},
			{
				Name:   "playlists",
				Usage:  "Sync followed and owned playlists",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SyncPlaylists,
			},
			{
				Name:   "albums",
				Usage:  "Sync saved albums",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SyncAlbums,
			},
			{
				Name:   "all",
				Usage:  "Sync every collection in order",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SyncAll,
			},
		},
	}
}

// searchCommand runs typed catalog searches.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog",
		Commands: []*cli.Command{
			{
				Name:      "album",
				Aliases:   []string{"albums"},
				Usage:     "Search albums",
				ArgsUsage: "<terms...>",
				Flags:     []cli.Flag{limitFlag(), jsonFlag()},
				Action:    r.SearchAlbums,
			},
			{
				Name:      "playlist",
				Aliases:   []string{"playlists"},
				Usage:     "Search playlists",
				ArgsUsage: "<terms...>",
				Flags:     []cli.Flag{limitFlag(), jsonFlag()},
				Action:    r.SearchPlaylists,
			},
		},
	}
}

// albumCommand handles album lookups.
func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "album",
		Usage: "Album operations",
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List the tracks of an album",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.AlbumTracks,
			},
		},
	}
}

// showCommand prints persisted collections.
func showCommand(r *Runner) *cli.Command {
	flags := func() []cli.Flag {
		return []cli.Flag{
			jsonFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: table, csv or md",
				Value:   "table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
		}
	}

	return &cli.Command{
		Name:  "show",
		Usage: "Print a synced collection",
		Commands: []*cli.Command{
			{
				Name:   "artists",
				Usage:  "Print followed artists",
				Flags:  flags(),
				Action: r.ShowArtists,
			},
			{
				Name:   "playlists",
				Usage:  "Print playlists",
				Flags:  flags(),
				Action: r.ShowPlaylists,
			},
			{
				Name:   "albums",
				Usage:  "Print saved albums",
				Flags:  flags(),
				Action: r.ShowAlbums,
			},
		},
	}
}

// browseCommand opens the interactive library browser.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse synced collections interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Collection to open: artists, playlists or albums",
				Value:   "albums",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the browser is open",
				Value: "shelf-browse.log",
			},
		},
		Action: r.Browse,
	}
}

// historyCommand reads and trims the sync history.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded sync runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of runs to show",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Only show runs of this kind (followed_artists, followed_playlists, saved_albums)",
			},
			jsonFlag(),
		},
		Action: r.History,
		Commands: []*cli.Command{
			{
				Name:  "prune",
				Usage: "Delete all but the most recent runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "keep",
						Usage: "Number of runs to keep",
						Value: 50,
					},
				},
				Action: r.HistoryPrune,
			},
		},
	}
}
