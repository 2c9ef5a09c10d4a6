package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spins/internal/catalog"
	"github.com/desertthunder/spins/internal/models"
	"github.com/desertthunder/spins/internal/repositories"
	"github.com/desertthunder/spins/internal/session"
	"github.com/desertthunder/spins/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	input   io.Reader
	output  io.Writer
	capture io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Capture puts sessions started by the Runner in test mode.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Input   io.Reader
	Output  io.Writer
	Capture io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		input:   opts.Input,
		output:  opts.Output,
		capture: opts.Capture,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){listenCommand, setupCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Listen runs an interactive session against a fresh catalog until quit or end of input.
func (r *Runner) Listen(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	level, _ := shared.ParseLogLevel(config.Log.Level)
	shared.SetLogLevel(r.logger, level)

	albums, closeCatalog, err := r.openCatalog(config.Catalog.Backend)
	if err != nil {
		return err
	}
	defer closeCatalog()

	r.logger.Debug("starting session", "backend", config.Catalog.Backend, "test_mode", r.capture != nil)

	s := session.New(session.Options{
		Catalog: albums,
		Input:   r.input,
		Console: r.output,
		Capture: r.capture,
		Prompt:  config.Session.Prompt,
		Logger:  r.logger,
	})

	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}

// resolveConfig layers the config file (when present) and flag overrides over the Runner's config.
func (r *Runner) resolveConfig(cmd *cli.Command) (*shared.Config, error) {
	config := *r.config

	if path := cmd.String("config"); path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := shared.LoadConfig(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
			config = *loaded
			r.logger.Debug("loaded config", "path", path)
		} else {
			r.logger.Debug("config file not found, using defaults", "path", path)
		}
	}

	if cmd.IsSet("backend") {
		config.Catalog.Backend = cmd.String("backend")
	}
	if cmd.IsSet("log-level") {
		config.Log.Level = cmd.String("log-level")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// openCatalog builds the configured backend and a func that releases it.
func (r *Runner) openCatalog(backend string) (models.Catalog, func() error, error) {
	switch backend {
	case shared.BackendSQLite:
		repo, err := repositories.OpenMemoryCatalog()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
		}
		return repo, repo.Close, nil
	case shared.BackendMemory:
		return catalog.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown catalog backend %q", shared.ErrInvalidConfig, backend)
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
