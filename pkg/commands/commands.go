// Package commands provides the high-level command implementations for quicken.
//
// Each command lives in its own subdirectory:
//   - run/          - Run executes a recipe
//   - createrecipe/ - CreateRecipe writes a starter recipe
//   - plan/         - Plan resolves a recipe without running it
//   - list/         - ListPlugins reports the plugins a recipe can use
//
// This file re-exports them so callers only need one import.
package commands

import (
	"context"

	"github.com/arthur-debert/quicken/pkg/commands/createrecipe"
	"github.com/arthur-debert/quicken/pkg/commands/list"
	"github.com/arthur-debert/quicken/pkg/commands/plan"
	"github.com/arthur-debert/quicken/pkg/commands/run"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Run parses a recipe and executes its steps in order.
type RunOptions = run.RunOptions

func Run(ctx context.Context, opts RunOptions) *types.CommandResult {
	return run.Run(ctx, opts)
}

// CreateRecipe writes a starter recipe to disk.
type CreateRecipeOptions = createrecipe.CreateRecipeOptions

func CreateRecipe(opts CreateRecipeOptions) *types.CommandResult {
	return createrecipe.CreateRecipe(opts)
}

// Plan resolves a recipe without running any step.
type PlanOptions = plan.PlanOptions

type PlanResult = plan.Result

func Plan(ctx context.Context, opts PlanOptions) (*PlanResult, error) {
	return plan.Plan(ctx, opts)
}

// ListPlugins reports built-in and scripted plugins.
type ListPluginsOptions = list.ListPluginsOptions

func ListPlugins(opts ListPluginsOptions) ([]plugin.Available, error) {
	return list.ListPlugins(opts)
}
