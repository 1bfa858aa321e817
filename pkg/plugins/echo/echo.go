// Package echo implements the echo plugin, which prints its argument.
package echo

import (
	"context"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Name is the recipe step name of the plugin
const Name = "echo"

func init() {
	plugin.MustRegister(Name, New)
}

// Echo prints a line of text
type Echo struct {
	plugin.Base
	text string
}

// New builds an Echo from a scalar argument
func New(args types.Value, env plugin.Env) (plugin.Plugin, error) {
	text, ok := args.Scalar()
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidArguments,
			"echo expects a text argument, got %s", args.Kind()).
			WithDetail("plugin", Name)
	}
	return &Echo{Base: plugin.NewBase(Name, env), text: text}, nil
}

// Call prints the text
func (e *Echo) Call(ctx context.Context) error {
	e.Say(e.text)
	return nil
}
