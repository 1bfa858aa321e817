// Package run implements the run command: load a recipe, resolve its steps
// and execute them.
package run

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/recipe"
	"github.com/arthur-debert/quicken/pkg/runner"
	"github.com/arthur-debert/quicken/pkg/types"
	"github.com/arthur-debert/quicken/pkg/ui"
)

// RunOptions defines the options for the Run command.
type RunOptions struct {
	// Source is a local path, file:// URL or http(s) URL.
	Source string
	// Resolver defaults to the static plugin registry.
	Resolver recipe.Resolver
	// Loaders are consulted for names missing from the static registry when
	// no Resolver is given.
	Loaders []plugin.Loader
	// FS is used for reading local recipes and for plugin writes.
	FS      filesystem.FS
	Console *ui.Console
	// WorkDir is where plugins write relative paths.
	WorkDir      string
	FetchTimeout time.Duration
	Logger       *zerolog.Logger
}

// Run executes the recipe and reports failures in the result. It never
// returns an error and never panics: every failure, including a plugin
// panic, is recorded as a CommandError.
func Run(ctx context.Context, opts RunOptions) (result *types.CommandResult) {
	result = &types.CommandResult{}
	logger := logging.OrNop(opts.Logger)
	logger.Debug().Str("command", "Run").Str("source", opts.Source).Msg("Executing command")

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("recipe run panicked")
			result.Add(errors.ErrUnknown, panicMessage(r))
		}
	}()

	resolver := opts.Resolver
	if resolver == nil {
		resolver = plugin.NewResolver(plugin.ResolverOptions{Loaders: opts.Loaders, Logger: opts.Logger})
	}

	parser := recipe.NewParser(recipe.Options{
		Resolver:     resolver,
		FS:           opts.FS,
		FetchTimeout: opts.FetchTimeout,
		Logger:       opts.Logger,
	})

	configs, err := parser.Parse(ctx, opts.Source)
	if err != nil {
		result.Errors = append(result.Errors, Classify(err))
		return result
	}
	logger.Debug().Int("steps", len(configs)).Msg("running recipe")

	r := runner.New(runner.Options{
		Console: opts.Console,
		FS:      opts.FS,
		WorkDir: opts.WorkDir,
		Logger:  opts.Logger,
	})
	if err := r.Run(ctx, configs); err != nil {
		result.Errors = append(result.Errors, Classify(err))
	}
	return result
}

// Classify maps an error to the kind reported to users. Coded errors keep
// their code, a missing file is file_not_found, anything else is
// unknown_error with the Go type of the error in front of its message.
func Classify(err error) types.CommandError {
	switch {
	case errors.IsCoded(err):
		return types.CommandError{Kind: errors.GetErrorCode(err), Message: errors.Message(err)}
	case stderrors.Is(err, fs.ErrNotExist):
		return types.CommandError{Kind: errors.ErrFileNotFound, Message: err.Error()}
	default:
		return types.CommandError{Kind: errors.ErrUnknown, Message: fmt.Sprintf("%T: %s", err, err.Error())}
	}
}

func panicMessage(r interface{}) string {
	if err, ok := r.(error); ok {
		return fmt.Sprintf("%T: %s", err, err.Error())
	}
	return fmt.Sprintf("panic: %v", r)
}
