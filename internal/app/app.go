package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/tercera/internal/session"
	"github.com/aussiebroadwan/tercera/internal/store"
	"github.com/aussiebroadwan/tercera/internal/store/drivers/memory"
	"github.com/aussiebroadwan/tercera/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
	"github.com/aussiebroadwan/tercera/pkg/slogx"
)

// AppName names the service in logs and the version banner.
const AppName = "tercera"

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the local state, the session store and the API client
// behind the CLI screens.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	client  *firesdk.SDKClient
	session *session.Store
	api     *firesdk.Session
	nav     Navigator

	in  io.Reader
	out io.Writer
	now func() time.Time
}

// Option customises an Application, mostly for tests.
type Option func(*Application)

// WithStore uses s instead of opening the configured state database.
func WithStore(s store.Store) Option { return func(a *Application) { a.db = s } }

// WithLogger uses logger instead of building one from the config.
func WithLogger(logger *slog.Logger) Option { return func(a *Application) { a.logger = logger } }

// WithIO redirects screen input and output.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *Application) { a.in, a.out = in, out }
}

// WithClock fixes "now" for date-dependent screens.
func WithClock(now func() time.Time) Option { return func(a *Application) { a.now = now } }

// WithNavigator replaces the CLI navigator.
func WithNavigator(nav Navigator) Option { return func(a *Application) { a.nav = nav } }

// New creates an Application with all dependencies initialised. The
// persisted session is not restored until Run.
func New(cfg Config, opts ...Option) (*Application, error) {
	app := &Application{
		cfg: cfg,
		in:  os.Stdin,
		out: os.Stdout,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: AppName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}
	if app.nav == nil {
		app.nav = &cliNavigator{out: app.out}
	}

	if app.db == nil {
		if err := app.initDatabase(); err != nil {
			return nil, err
		}
	}

	app.initClient()
	return app, nil
}

// initDatabase opens the local state database and applies migrations.
func (app *Application) initDatabase() error {
	if app.cfg.Ephemeral {
		app.db = memory.NewStore()
		app.logger.Debug("using in-memory local state")
		return nil
	}

	if dir := filepath.Dir(app.cfg.StateFile); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.StateFile))
	if err != nil {
		return fmt.Errorf("failed to open local state: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply local state migrations: %w", err)
	}

	app.db = db
	app.logger.Debug("local state ready", "path", app.cfg.StateFile)
	return nil
}

// initClient builds the API client, the session store and the expiry
// adapter that joins them.
func (app *Application) initClient() {
	app.client = firesdk.NewSDKClient(app.cfg.APIOrigin)
	if app.cfg.HTTPTimeout > 0 {
		app.client.HTTPClient.Timeout = app.cfg.HTTPTimeout
	}
	app.client.SetCredentialRate(app.cfg.LoginRate)

	app.session = session.New(app.db, app.client)
	app.client.OnUnauthorized = app.handleUnauthorized
	app.api = app.client.NewSession(app.session)
}

// Run restores the persisted session and executes the command line.
func (app *Application) Run(ctx context.Context, args []string) error {
	ctx = slogx.WithContext(ctx, app.logger)

	if err := app.session.Init(ctx); err != nil {
		return err
	}

	root := app.rootCommand()
	root.SetArgs(args)
	root.SetIn(app.in)
	root.SetOut(app.out)
	root.SetErr(app.out)
	return app.execute(ctx, root)
}

// Close releases the local state database.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing local state", "error", err)
		return err
	}
	return nil
}
