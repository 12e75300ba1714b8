package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The API client and the history database are created on first use, so commands that need
// neither (setup, show) never warn about missing credentials or touch the database.
type Runner struct {
	config     *shared.Config
	configPath string
	loadConfig bool
	client     *services.Client
	history    *repositories.SyncRunRepository
	db         *sql.DB
	historyErr error
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *services.Client
	History    *repositories.SyncRunRepository
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// Without a Config the file named by the --config flag is loaded before any command runs.
func NewRunner(opts RunnerOpts) *Runner {
	loadConfig := opts.Config == nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		loadConfig: loadConfig,
		client:     opts.Client,
		history:    opts.History,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, syncCommand, searchCommand, albumCommand, showCommand, browseCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// prepare runs before every command: it applies --debug and loads the configuration file.
func (r *Runner) prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if cmd.IsSet("config") || r.configPath == "" {
		r.configPath = cmd.String("config")
	}

	if !r.loadConfig {
		return ctx, nil
	}

	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	r.config.ApplyEnv()
	r.loadConfig = false
	return ctx, nil
}

// close releases the history database, if it was opened.
func (r *Runner) close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.history = nil, nil
	return err
}

// api returns the API client, building it from the configuration on first use.
func (r *Runner) api() *services.Client {
	if r.client == nil {
		r.client = services.NewClientFromConfig(r.config, r.logger)
	}
	return r.client
}

// library reads the persisted collections without building an API client.
func (r *Runner) library() services.Library {
	if r.client != nil {
		return r.client.Library()
	}
	return services.NewLibrary(r.config.DataDir(), r.logger)
}

// syncHistory returns the history repository, opening the database on first use.
//
// It returns nil when no database path is configured or the database cannot be opened; the
// failure is logged once and remembered.
func (r *Runner) syncHistory() *repositories.SyncRunRepository {
	if r.history != nil || r.historyErr != nil {
		return r.history
	}

	if r.config.Database.Path == "" {
		r.historyErr = errors.New("no database path configured")
		return nil
	}

	db, err := shared.OpenHistoryDatabase(r.config.Database)
	if err != nil {
		r.logger.Warn("sync history unavailable", "path", r.config.Database.Path, "error", err)
		r.historyErr = err
		return nil
	}

	r.db = db
	r.history = repositories.NewSyncRunRepository(db)
	return r.history
}

// recordSync stores one history row per result. Failures are logged and never change the results.
func (r *Runner) recordSync(results []services.SyncResult) {
	repo := r.syncHistory()
	if repo == nil {
		return
	}

	for _, res := range results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		run := models.NewSyncRun(res.Kind, res.Path, res.Count, res.Status, errText)
		if err := repo.Create(run); err != nil {
			r.logger.Warn("could not record sync run", "kind", res.Kind, "error", err)
			continue
		}
		r.logger.Debug("recorded sync run", "id", run.ID(), "kind", res.Kind)
	}
}

// saveCredentials stores a credential snapshot's tokens in the config and writes it to configPath.
//
// With an empty configPath only the in-memory config is updated.
func (r *Runner) saveCredentials(creds services.Credentials) error {
	if r.config == nil {
		return errors.New("config is nil")
	}

	r.config.Credentials.Spotify.SetTokens(creds.AccessToken, creds.RefreshToken)

	if r.configPath == "" {
		return nil
	}

	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.logger.Info("tokens saved", "path", r.configPath)
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeSheet writes sheet in format to path, or to the runner's output when path is empty.
func (r *Runner) writeSheet(sheet formatter.Sheet, format formatter.Format, path string) error {
	if path == "" {
		if err := sheet.Write(r.output, format); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := sheet.Write(f, format); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.logger.Info("export written", "path", path, "rows", len(sheet.Rows))
	return r.writePlain("✓ Wrote %d rows to %s\n", len(sheet.Rows), path)
}
