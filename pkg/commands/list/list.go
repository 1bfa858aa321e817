// Package list implements the plugins listing command.
package list

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/plugin"
)

// ListPluginsOptions defines the options for the ListPlugins command.
type ListPluginsOptions struct {
	// Loaders contribute plugins beyond the static registry.
	Loaders []plugin.Loader
	Logger  *zerolog.Logger
}

// ListPlugins returns every plugin a recipe can use, built-ins first
func ListPlugins(opts ListPluginsOptions) ([]plugin.Available, error) {
	logger := logging.OrNop(opts.Logger)
	logger.Debug().Str("command", "ListPlugins").Int("loaders", len(opts.Loaders)).Msg("Executing command")

	resolver := plugin.NewResolver(plugin.ResolverOptions{Loaders: opts.Loaders, Logger: opts.Logger})
	return resolver.Available()
}
