package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cook/internal/auth"
	"github.com/desertthunder/cook/internal/browse"
	"github.com/desertthunder/cook/internal/favorites"
	"github.com/desertthunder/cook/internal/repositories"
	"github.com/desertthunder/cook/internal/services"
	"github.com/desertthunder/cook/internal/session"
	"github.com/desertthunder/cook/internal/shared"
	"github.com/desertthunder/cook/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and everything built on it are opened on first use so that setup can run first.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	open       func(string) error

	db        *sql.DB
	ownsDB    bool
	session   session.Store
	mirror    *repositories.FavoriteRepository
	gateway   *services.Gateway
	recipes   *services.RecipeService
	auth      *auth.Flow
	browser   *browse.Browser
	favorites *favorites.Flow
	exporter  *tasks.Exporter
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	DB         *sql.DB // already migrated; opened from Config.Database when nil
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
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       shared.OpenBrowser,
	}
}

// SetLogger replaces the logger. It must be called before the first command touches the API.
func (r *Runner) SetLogger(l *log.Logger) {
	shared.SetLogLevel(l, r.logger.GetLevel())
	r.logger = l
}

// Close releases the database if the runner opened it.
func (r *Runner) Close() error {
	if r.ownsDB && r.db != nil {
		return r.db.Close()
	}
	return nil
}

// init wires storage, the session, the gateway and the flows.
func (r *Runner) init(ctx context.Context) error {
	if r.gateway != nil {
		return nil
	}

	if r.db == nil {
		db, err := shared.OpenDatabase(ctx, r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open database (run 'cook setup' first?): %w", err)
		}
		r.db = db
		r.ownsDB = true
	}

	r.session = session.NewSQLiteStore(r.db)
	r.mirror = repositories.NewFavoriteRepository(r.db)
	r.gateway = services.NewGateway(services.GatewayOpts{
		BaseURL:           r.config.API.BaseURL,
		Session:           r.session,
		HTTPClient:        r.httpClient,
		Timeout:           r.config.API.Timeout(),
		RequestsPerSecond: r.config.API.RequestsPerSecond,
		Logger:            r.logger,
	})
	r.recipes = services.NewRecipeService(r.gateway, r.config.API.LookupURL, r.httpClient)
	r.auth = auth.NewFlow(services.NewAuthService(r.gateway), r.session, r.logger)
	r.browser = browse.New(r.recipes, r.logger)
	r.favorites = favorites.NewFlow(services.NewFavoriteService(r.gateway), r.mirror, r.logger)
	r.exporter = tasks.NewExporter(r.recipes, r.logger)

	if _, err := r.auth.Restore(ctx); err != nil {
		r.logger.Warn("failed to restore session", "error", err)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, recipesCommand, favoritesCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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

// writeNotification prints n with a marker for its kind.
func (r *Runner) writeNotification(n favorites.Notification) error {
	marker := "✓"
	switch n.Kind {
	case favorites.KindInfo:
		marker = "•"
	case favorites.KindError:
		marker = "✗"
	}
	return r.writePlain("%s %s\n", marker, n.Message)
}
