package plugin

import (
	"github.com/arthur-debert/quicken/pkg/registry"
)

// SourceBuiltin marks configurations resolved from the static registry
const SourceBuiltin = "builtin"

var builtins = registry.New[Factory]("plugin")

// Register adds a plugin to the static registry. Built-in plugins call it
// from init(); programs embedding quicken can register their own the same way.
func Register(name string, factory Factory) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return builtins.Register(name, factory)
}

// MustRegister is Register for init() functions
func MustRegister(name string, factory Factory) {
	if err := ValidateName(name); err != nil {
		panic(err.Error())
	}
	registry.MustRegister(builtins, name, factory)
}

// Builtins returns the static plugin registry
func Builtins() registry.Registry[Factory] {
	return builtins
}
