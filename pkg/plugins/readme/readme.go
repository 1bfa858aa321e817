// Package readme implements the readme plugin, which writes a README.md from a
// template and the step arguments.
package readme

import (
	"context"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/template"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Name is the recipe step name of the plugin
const Name = "readme"

// DefaultPath is where the README is written unless path is given
const DefaultPath = "README.md"

// DefaultTemplate is used when no template argument is given
const DefaultTemplate = "# <%= project_name %>\n" +
	"### by <%= author_name %> <<%= author_email %>>\n" +
	"---\n" +
	"<%= description %>"

// Messages printed after the write
const (
	MsgSkipped = "README already present. Skipping..."
	MsgCreated = "Created README file"
)

var reservedKeys = []string{"template", "force", "path"}

func init() {
	plugin.MustRegister(Name, New)
}

// Readme writes a README file
type Readme struct {
	plugin.Base
	tmpl  *template.Template
	vars  map[string]string
	force bool
	path  string
}

// New validates the arguments and parses the template
func New(args types.Value, env plugin.Env) (plugin.Plugin, error) {
	if k := args.Kind(); k != types.KindAbsent && k != types.KindMap {
		return nil, errors.Newf(errors.ErrInvalidArguments,
			"readme expects a mapping of arguments, got %s", k).
			WithDetail("plugin", Name)
	}

	text, err := args.OptionalString("template")
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = DefaultTemplate
	}

	force, err := args.OptionalBool("force")
	if err != nil {
		return nil, err
	}

	path, err := args.OptionalString("path")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultPath
	}

	vars, err := args.ScalarMap(reservedKeys...)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.Parse(Name, text)
	if err != nil {
		return nil, err
	}

	return &Readme{
		Base:  plugin.NewBase(Name, env),
		tmpl:  tmpl,
		vars:  vars,
		force: force,
		path:  path,
	}, nil
}

// Call renders the template and writes the file
func (r *Readme) Call(ctx context.Context) error {
	logger := r.Logger()
	logger.Info().Str("path", r.path).Msg("Creating README file")
	logger.Debug().Strs("placeholders", r.tmpl.Placeholders()).Msg("compiling template")

	content, err := r.tmpl.Compile(r.vars)
	if err != nil {
		return err
	}

	outcome, err := r.WriteFile(r.path, content, r.force)
	if err != nil {
		return err
	}

	if outcome == filesystem.AlreadyExists {
		r.Say(MsgSkipped)
	} else {
		r.Say(MsgCreated)
	}
	return nil
}
