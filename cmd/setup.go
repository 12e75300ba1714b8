package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when it is missing, then initializes
// the history database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return err
		}
		config.ApplyEnv()
		r.config = config
		r.writePlain("✓ Config file created at %s\n", r.configPath)
	} else {
		r.writePlain("✓ Using config file %s\n", r.configPath)
	}

	if r.config.Database.Path == "" {
		r.writePlain("Sync history is disabled (database.path is empty)\n")
	} else {
		r.logger.Info("initializing database", "path", r.config.Database.Path)

		db, err := shared.OpenHistoryDatabase(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		version, err := shared.CurrentMigrationVersion(db)
		if err != nil {
			return err
		}
		r.writePlain("✓ Database ready at %s (schema version %d)\n", r.config.Database.Path, version)
	}

	if missing := r.config.Credentials.Spotify.Missing(); len(missing) > 0 {
		r.writePlain("\nNext steps:\n")
		r.writePlain("1. Set client_id and client_secret under [credentials.spotify] in %s\n", r.configPath)
		r.writePlain("2. Run 'shelf auth login' to fetch an access and refresh token\n")
		r.writePlain("3. Run 'shelf sync all'\n")
	}

	return nil
}

// SetupRollback reverts the most recent migration of the history database.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	if r.config.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", shared.ErrInvalidConfig)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}

	version, err := shared.CurrentMigrationVersion(db)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Rolled back, schema version is now %d\n", version)
}

// SetupVersion prints the schema version of the history database.
func (r *Runner) SetupVersion(ctx context.Context, cmd *cli.Command) error {
	if r.config.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", shared.ErrInvalidConfig)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := shared.CurrentMigrationVersion(db)
	if err != nil {
		return err
	}
	return r.writePlain("%d\n", version)
}
