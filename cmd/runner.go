package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ac1714/chirp/internal/auth"
	"github.com/ac1714/chirp/internal/player"
	"github.com/ac1714/chirp/internal/repositories"
	"github.com/ac1714/chirp/internal/search"
	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	store      *auth.Store
	manager    *auth.Manager
	client     *services.Client
	pipeline   *search.Pipeline
	controller *player.Controller
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Store      *auth.Store
	Manager    *auth.Manager
	Client     *services.Client
	Pipeline   *search.Pipeline
	Controller *player.Controller
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		store:      opts.Store,
		manager:    opts.Manager,
		client:     opts.Client,
		pipeline:   opts.Pipeline,
		controller: opts.Controller,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger and the pipeline's, so TUI mode
// can redirect everything to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, artistCommand, trackCommand, playCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireAuth ensures the runner has an authenticated session before a
// command talks to the API.
func (r *Runner) requireAuth() error {
	if r.manager == nil {
		return fmt.Errorf("%w: set spotify.client_id in config.toml", shared.ErrMissingCredentials)
	}
	if !r.manager.Authenticated() {
		return fmt.Errorf("%w: run 'chirp auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// openDatabase opens the play history database with the configured
// connection pool.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.OpenHistory(r.config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openHistory opens the database and returns the repositories backed by it.
//
// The caller closes the returned database.
func (r *Runner) openHistory() (*sql.DB, *repositories.HistoryRepository, *repositories.TrackCacheRepository, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, nil, nil, err
	}
	return db, repositories.NewHistoryRepository(db), repositories.NewTrackCacheRepository(db), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
