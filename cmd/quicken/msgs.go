package quicken

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Scaffold new projects from recipes"
	MsgRunShort     = "Run a recipe"
	MsgInitShort    = "Write a starter recipe"
	MsgPlanShort    = "Show what a recipe would run"
	MsgPluginsShort = "List available plugins"
	MsgConfigShort  = "Print the effective configuration"
	MsgVersionShort = "Print version information"

	// Status messages
	MsgRecipeGenerated = "Generated new recipe file in %s"
	MsgNoPlugins       = "No plugins available."
	MsgVersionFormat   = "quicken %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrRunFailed    = "recipe %s failed"
	MsgErrInitFailed   = "could not create recipe %s"
	MsgErrPlan         = "failed to plan recipe: %w"
	MsgErrListPlugins  = "failed to list plugins: %w"
	MsgErrRenderConfig = "failed to render configuration: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Read configuration from this file"
	MsgFlagFormat      = "Output format: auto, term or text"
	MsgFlagEmpty       = "Create an empty recipe"
	MsgFlagOutput      = "Recipe file to write (default from config recipe.output)"
	MsgFlagAuthor      = "Author name"
	MsgFlagEmail       = "Author email"
	MsgFlagDescription = "Project description"
	MsgFlagLicense     = "License id (default from config project.license)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plugins-long.txt
	msgPluginsLongRaw string
	MsgPluginsLong    = strings.TrimSpace(msgPluginsLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
