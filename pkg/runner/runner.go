// Package runner executes resolved recipe steps one after another.
package runner

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/ui"
)

// Options contains configuration for the runner
type Options struct {
	Console *ui.Console
	// Filesystem operations interface for testing
	FS      filesystem.FS
	WorkDir string
	Logger  *zerolog.Logger
}

// Runner instantiates and calls plugins in recipe order
type Runner struct {
	env    plugin.Env
	logger zerolog.Logger
}

// New creates a runner
func New(opts Options) *Runner {
	logger := logging.OrNop(opts.Logger)
	env := plugin.Env{
		Console: opts.Console,
		FS:      opts.FS,
		Logger:  logger,
		WorkDir: opts.WorkDir,
	}.WithDefaults()

	return &Runner{env: env, logger: logger}
}

// Run executes configs in order. The first failing step stops the run and its
// error is returned unchanged; steps already executed are not undone.
// Cancellation is checked before each step.
func (r *Runner) Run(ctx context.Context, configs []plugin.Configuration) error {
	for i, cfg := range configs {
		if err := ctx.Err(); err != nil {
			r.logger.Debug().Int("step", i+1).Msg("run cancelled")
			return err
		}
		if err := r.runStep(ctx, i+1, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, index int, cfg plugin.Configuration) error {
	stepLogger := r.logger.With().Int("step", index).Str("plugin", cfg.Name).Logger()
	stepLogger.Debug().Str("source", cfg.Source).Int("line", cfg.Line).Msg("Executing step")

	if cfg.Factory == nil {
		return errors.Newf(errors.ErrPluginNotFound, "plugin %s has no implementation", cfg.Name).
			WithDetail("plugin", cfg.Name)
	}

	done := logging.LogOperationStart(stepLogger, "step")

	env := r.env
	env.Logger = stepLogger
	p, err := cfg.Instantiate(env)
	if err != nil {
		stepLogger.Debug().Err(err).Msg("step could not be instantiated")
		return err
	}

	if err := p.Call(ctx); err != nil {
		stepLogger.Debug().Err(err).Msg("step failed")
		return err
	}

	done()
	return nil
}
