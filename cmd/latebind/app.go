// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/latebind/latebind/internal/config"
	"github.com/latebind/latebind/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// App wires CLI services and per-invocation state. Every command handler
	// receives the App; the root command populates the configuration and the
	// logger before any subcommand runs.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		// Flag values.
		verbose    bool
		configPath string

		cfg    *config.Config
		logger *log.Logger
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: log.New(io.Discard),
	}
}

// loadOptions maps the --config flag to provider options.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.configPath)}
}

// initialize loads the configuration and builds the logger. The verbose flag
// wins over ui.verbose and log.level.
func (a *App) initialize(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.UI.Verbose {
		a.verbose = true
	}

	level := cfg.Log.Level.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	return nil
}
