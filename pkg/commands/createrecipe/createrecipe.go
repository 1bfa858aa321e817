// Package createrecipe implements the command that writes a starter recipe
// for a new project.
package createrecipe

import (
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/template"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Variable names understood by the recipe template
const (
	VarProjectName = "project_name"
	VarAuthorName  = "author_name"
	VarAuthorEmail = "author_email"
	VarDescription = "description"
	VarLicense     = "license"
)

// DefaultLicense is used when no license is given
const DefaultLicense = "mit"

// CreateRecipeOptions defines the options for the CreateRecipe command.
type CreateRecipeOptions struct {
	// Path of the recipe file to create.
	Path string
	// Variables fill the template, keyed by the Var* names.
	Variables map[string]string
	// Empty writes a zero-length file and ignores Variables.
	Empty  bool
	FS     filesystem.FS
	Logger *zerolog.Logger
}

// CreateRecipe writes a new recipe file. An existing file is never
// overwritten and is reported as file_write_conflict.
func CreateRecipe(opts CreateRecipeOptions) *types.CommandResult {
	result := &types.CommandResult{}
	logger := logging.OrNop(opts.Logger)
	logger.Debug().Str("command", "CreateRecipe").Str("path", opts.Path).Bool("empty", opts.Empty).Msg("Executing command")

	if strings.TrimSpace(opts.Path) == "" {
		result.AddError(errors.New(errors.ErrInvalidArguments, "recipe path cannot be empty"))
		return result
	}

	content := ""
	if !opts.Empty {
		rendered, err := Render(opts.Variables)
		if err != nil {
			result.AddError(err)
			return result
		}
		content = rendered
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	outcome, err := filesystem.NewWriter(fsys).Write(opts.Path, content, false)
	if err != nil {
		result.AddError(err)
		return result
	}
	if outcome != filesystem.Written {
		result.AddError(errors.Conflict(opts.Path))
	}
	return result
}

// Render produces the recipe text for vars. Values are YAML-quoted where
// needed so any input yields a valid recipe; author_email and description
// lines are left out when empty.
func Render(vars map[string]string) (string, error) {
	name := vars[VarProjectName]
	license := vars[VarLicense]
	if license == "" {
		license = DefaultLicense
	}

	var text strings.Builder
	text.WriteString("---\n")
	text.WriteString("- echo: <%= greeting %>\n\n")
	text.WriteString("- readme:\n")
	text.WriteString("    project_name: <%= project_name %>\n")
	text.WriteString("    author_name: <%= author_name %>\n")
	if vars[VarAuthorEmail] != "" {
		text.WriteString("    author_email: <%= author_email %>\n")
	}
	if vars[VarDescription] != "" {
		text.WriteString("    description: <%= description %>\n")
	}
	text.WriteString("- license: <%= license %>\n")

	tmpl, err := template.Parse("recipe", text.String())
	if err != nil {
		return "", err
	}

	quoted := map[string]string{
		"greeting":     quote("Generating project " + name),
		VarProjectName: quote(name),
		VarAuthorName:  quote(vars[VarAuthorName]),
		VarAuthorEmail: quote(vars[VarAuthorEmail]),
		VarDescription: quote(vars[VarDescription]),
		VarLicense:     quote(license),
	}
	return tmpl.Compile(quoted)
}

// quote renders s as a YAML scalar that reads back as the same string
func quote(s string) string {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsAny(s, "\n\r\t") {
		node.Style = yaml.DoubleQuotedStyle
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return `""`
	}
	return strings.TrimSuffix(string(out), "\n")
}
