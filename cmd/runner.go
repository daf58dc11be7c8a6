package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/repositories"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/spotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     *spotify.Client
	db         *sql.DB
	apiBase    string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *spotify.Client
	DB         *sql.DB
	APIBase    string
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
	if opts.APIBase == "" {
		opts.APIBase = spotify.BaseURL
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		db:         opts.DB,
		apiBase:    opts.APIBase,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the terminal is
// occupied by an interactive view.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the database handle if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, meCommand, searchCommand, libraryCommand,
		playlistsCommand, playerCommand, browseCommand, cacheCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDB opens the configured SQLite database on first use and keeps
// the handle for the rest of the run.
func (r *Runner) openDB() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	r.db = db
	return db, nil
}

func (r *Runner) tokenStore() (*repositories.TokenStore, error) {
	db, err := r.openDB()
	if err != nil {
		return nil, err
	}
	return repositories.NewTokenStore(db), nil
}

// authenticator builds the OAuth flow driver from the configured
// application credentials.
func (r *Runner) authenticator() *spotify.Authenticator {
	sp := r.config.Credentials.Spotify
	return spotify.NewAuthenticator(sp.ClientID, sp.ClientSecret, sp.RedirectURI)
}

// apiClient returns the API client, building one from the most recently
// used stored token on first call. Tokens renewed through the refresh
// grant are written back to the store so the next run starts current.
func (r *Runner) apiClient() (*spotify.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	store, err := r.tokenStore()
	if err != nil {
		return nil, err
	}

	stored, err := store.Latest()
	if err != nil {
		if errors.Is(err, shared.ErrTokenNotFound) {
			return nil, fmt.Errorf("%w: run 'spx auth login' first", shared.ErrNotAuthenticated)
		}
		return nil, fmt.Errorf("failed to load stored token: %w", err)
	}

	accountID := stored.AccountID()
	creds := r.authenticator().Credentials(stored.OAuthToken())
	creds.OnRefresh(func(tok *oauth2.Token) {
		if err := store.Save(models.NewStoredToken(accountID, tok)); err != nil {
			r.logger.Warn("failed to persist refreshed token", "account", accountID, "error", err)
		}
	})

	r.client = spotify.New(creds, spotify.Opts{Logger: r.logger})
	return r.client, nil
}

// saveToken persists tok as accountID's current grant.
func (r *Runner) saveToken(accountID string, tok *oauth2.Token) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	if err := store.Save(models.NewStoredToken(accountID, tok)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
