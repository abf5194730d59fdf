// Package app provides the application context and dependency management
// for the invsync CLI. It centralizes configuration, logging, and the
// lazily constructed reconciliation engine.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/netgrove/invsync"
	intdirectory "github.com/netgrove/invsync/internal/directory"
	"github.com/netgrove/invsync/internal/sources/netbox"
	"github.com/netgrove/invsync/pkg/errors"
)

// App represents the invsync application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// engine instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu       sync.RWMutex
	datafile *Datafile
	engine   *invsync.Engine
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Datafile returns the parsed datafile, loading it lazily from the
// configured path. This is thread-safe and ensures only one load.
func (a *App) Datafile() (*Datafile, error) {
	a.mu.RLock()
	if a.datafile != nil {
		df := a.datafile
		a.mu.RUnlock()
		return df, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.datafile != nil {
		return a.datafile, nil
	}

	df, err := LoadDatafile(a.config.Datafile)
	if err != nil {
		return nil, err
	}

	a.datafile = df
	return df, nil
}

// Engine returns the reconciliation engine, creating it lazily from the
// datafile. This is thread-safe and ensures only one instance is created.
func (a *App) Engine() (*invsync.Engine, error) {
	a.mu.RLock()
	if a.engine != nil {
		eng := a.engine
		a.mu.RUnlock()
		return eng, nil
	}
	a.mu.RUnlock()

	df, err := a.Datafile()
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.engine != nil {
		return a.engine, nil
	}

	eng, err := buildEngine(df)
	if err != nil {
		return nil, err
	}

	a.engine = eng
	return eng, nil
}

// buildEngine wires the inventory source, the directory client, and the
// jobs described by the datafile into an engine.
func buildEngine(df *Datafile) (*invsync.Engine, error) {
	if errs := df.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	source, err := netbox.New(netbox.Config{
		URL:   df.Defaults.NetBox.URL,
		Token: df.Defaults.NetBox.Token,
	})
	if err != nil {
		return nil, err
	}

	client, err := intdirectory.NewClient(intdirectory.Config{
		Address:  df.Defaults.Directory.Address,
		Username: df.Defaults.Directory.Username,
		Password: df.Defaults.Directory.Password,
		Version:  df.Defaults.Directory.Version,
	})
	if err != nil {
		return nil, err
	}

	jobs := df.EngineJobs()
	if len(jobs) == 0 {
		return nil, errors.NewConfigError("jobs", "datafile defines no jobs", nil)
	}

	return invsync.New(
		invsync.WithSource(source),
		invsync.WithDirectory(client),
		invsync.WithJobs(jobs...),
	)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a custom engine instance (useful for testing).
func WithEngine(eng *invsync.Engine) Option {
	return func(a *App) error {
		a.engine = eng
		return nil
	}
}
