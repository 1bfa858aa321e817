package plugin

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/template"
)

// Base carries the helpers plugins share. Embed it and override Call.
type Base struct {
	name   string
	env    Env
	writer *filesystem.Writer
}

// NewBase prepares the helpers for the plugin registered as name
func NewBase(name string, env Env) Base {
	env = env.WithDefaults()
	return Base{
		name:   name,
		env:    env,
		writer: filesystem.NewWriter(env.FS),
	}
}

// Name returns the registered plugin name
func (b *Base) Name() string { return b.name }

// DisplayName returns the name camelized, readme -> Readme, new_file -> NewFile
func (b *Base) DisplayName() string { return Camelize(b.name) }

// Env returns the environment the plugin was built with
func (b *Base) Env() Env { return b.env }

// Logger returns the plugin logger tagged with the plugin name
func (b *Base) Logger() zerolog.Logger {
	return b.env.Logger.With().Str("plugin", b.name).Logger()
}

// Call is the fallback for plugins that do not implement their own
func (b *Base) Call(ctx context.Context) error {
	b.Warn("WARNING: " + b.DisplayName() + " not implemented")
	return nil
}

// Compile renders a <%= name %> template
func (b *Base) Compile(text string, vars map[string]string) (string, error) {
	tmpl, err := template.Parse(b.name, text)
	if err != nil {
		return "", err
	}
	return tmpl.Compile(vars)
}

// Path resolves p against the working directory
func (b *Base) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.env.WorkDir, p)
}

// WriteFile writes content unless the file exists and force is false
func (b *Base) WriteFile(path, content string, force bool) (filesystem.WriteOutcome, error) {
	target := b.Path(path)
	outcome, err := b.writer.Write(target, content, force)
	if err != nil {
		return outcome, err
	}
	logger := b.Logger()
	logger.Debug().Str("path", target).Str("outcome", outcome.String()).Msg("write file")
	return outcome, nil
}

// Say prints a message on the console
func (b *Base) Say(msg string) { b.env.Console.Say(msg) }

// Status prints a labelled status line
func (b *Base) Status(status, msg string) { b.env.Console.Status(status, msg) }

// Warn prints a warning on the console
func (b *Base) Warn(msg string) { b.env.Console.Warn(msg) }

// Camelize turns a plugin name into its display form
func Camelize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
