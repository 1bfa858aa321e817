// Package plan implements the plan command, which resolves a recipe without
// running it.
package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/recipe"
)

// PlanOptions defines the options for the Plan command.
type PlanOptions struct {
	Source       string
	Resolver     recipe.Resolver
	Loaders      []plugin.Loader
	FS           filesystem.FS
	FetchTimeout time.Duration
	Logger       *zerolog.Logger
}

// Step is a resolved step as shown to the user
type Step struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Source string `json:"source"`
	Line   int    `json:"line"`
	Args   string `json:"args"`
}

// Result lists what running the recipe would do
type Result struct {
	Source string `json:"source"`
	Steps  []Step `json:"steps"`
}

// Plan parses and resolves the recipe at opts.Source
func Plan(ctx context.Context, opts PlanOptions) (*Result, error) {
	logger := logging.OrNop(opts.Logger)
	logger.Debug().Str("command", "Plan").Str("source", opts.Source).Msg("Executing command")

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
		return nil, err
	}

	result := &Result{Source: opts.Source, Steps: make([]Step, 0, len(configs))}
	for i, cfg := range configs {
		result.Steps = append(result.Steps, Step{
			Index:  i + 1,
			Name:   cfg.Name,
			Source: cfg.Source,
			Line:   cfg.Line,
			Args:   cfg.Args.String(),
		})
	}
	return result, nil
}

// Markdown renders the plan as a markdown document
func (r *Result) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Recipe plan\n\n")
	fmt.Fprintf(&sb, "Source: `%s`\n\n", r.Source)

	if len(r.Steps) == 0 {
		sb.WriteString("_The recipe has no steps._\n")
		return sb.String()
	}

	sb.WriteString("| # | Plugin | Source | Line | Arguments |\n")
	sb.WriteString("|---|--------|--------|------|-----------|\n")
	for _, s := range r.Steps {
		fmt.Fprintf(&sb, "| %d | %s | %s | %d | `%s` |\n",
			s.Index, s.Name, s.Source, s.Line, escapeCell(s.Args))
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "`", "'")
	return strings.ReplaceAll(s, "\n", " ")
}
