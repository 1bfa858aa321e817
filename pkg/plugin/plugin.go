// Package plugin defines the contract between the recipe runner and the units
// of work a recipe names: the Plugin interface, the Factory that builds one
// from step arguments, and the Env every plugin runs in.
//
// Built-in plugins register a Factory from their package init(). Names that
// are not registered are looked up through Loaders by a Resolver.
package plugin

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/types"
	"github.com/arthur-debert/quicken/pkg/ui"
)

// Plugin is a single step of a recipe, ready to run
type Plugin interface {
	Call(ctx context.Context) error
}

// Factory builds a plugin instance from step arguments. Argument validation
// belongs here so that bad input fails before anything runs.
type Factory func(args types.Value, env Env) (Plugin, error)

// Env is what a plugin instance may touch
type Env struct {
	Console *ui.Console
	FS      filesystem.FS
	Logger  zerolog.Logger
	WorkDir string
}

// WithDefaults fills unset fields: a discarding console, the OS filesystem
// and the current directory.
func (e Env) WithDefaults() Env {
	if e.Console == nil {
		e.Console = ui.Discard()
	}
	if e.FS == nil {
		e.FS = filesystem.NewOS()
	}
	if e.WorkDir == "" {
		e.WorkDir = "."
	}
	return e
}

// Configuration is a step whose plugin name has been resolved
type Configuration struct {
	Name    string
	Args    types.Value
	Factory Factory
	// Source tells where the factory came from, "builtin" or a loader source
	Source string
	// Line is the recipe line of the step, 0 when unknown
	Line int
}

// Instantiate builds the plugin for this configuration
func (c Configuration) Instantiate(env Env) (Plugin, error) {
	return c.Factory(c.Args, env)
}
