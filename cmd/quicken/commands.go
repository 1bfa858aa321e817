package quicken

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/quicken/internal/version"
	"github.com/arthur-debert/quicken/pkg/commands"
	"github.com/arthur-debert/quicken/pkg/commands/createrecipe"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "run <recipe>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console := a.console(cmd)
			log.Info().Str("recipe", args[0]).Msg("Running recipe")

			result := commands.Run(cmd.Context(), commands.RunOptions{
				Source:       args[0],
				Loaders:      a.loaders(),
				Console:      console,
				FetchTimeout: a.cfg.Recipe.FetchTimeout,
				Logger:       a.logger("run"),
			})
			if !result.Success() {
				console.Error(result.Summary())
				return fmt.Errorf(MsgErrRunFailed, args[0])
			}
			return nil
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	var (
		empty       bool
		output      string
		author      string
		email       string
		description string
		license     string
	)

	cmd := &cobra.Command{
		Use:     "init [project-name]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console := a.console(cmd)

			if output == "" {
				output = a.cfg.Recipe.Output
			}
			if license == "" {
				license = a.cfg.Project.License
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			} else if cwd, err := os.Getwd(); err == nil {
				name = filepath.Base(cwd)
			}

			result := commands.CreateRecipe(commands.CreateRecipeOptions{
				Path:  output,
				Empty: empty,
				Variables: map[string]string{
					createrecipe.VarProjectName: name,
					createrecipe.VarAuthorName:  author,
					createrecipe.VarAuthorEmail: email,
					createrecipe.VarDescription: description,
					createrecipe.VarLicense:     license,
				},
				Logger: a.logger("init"),
			})
			if !result.Success() {
				console.Error(result.Summary())
				return fmt.Errorf(MsgErrInitFailed, output)
			}

			console.Say(fmt.Sprintf(MsgRecipeGenerated, output))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&empty, "empty", "e", false, MsgFlagEmpty)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&author, "author", "", MsgFlagAuthor)
	cmd.Flags().StringVar(&email, "email", "", MsgFlagEmail)
	cmd.Flags().StringVar(&description, "description", "", MsgFlagDescription)
	cmd.Flags().StringVar(&license, "license", "", MsgFlagLicense)

	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "plan <recipe>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console := a.console(cmd)

			result, err := commands.Plan(cmd.Context(), commands.PlanOptions{
				Source:       args[0],
				Loaders:      a.loaders(),
				FetchTimeout: a.cfg.Recipe.FetchTimeout,
				Logger:       a.logger("plan"),
			})
			if err != nil {
				return fmt.Errorf(MsgErrPlan, err)
			}

			console.Say(renderMarkdown(result.Markdown(), console.Styled))
			return nil
		},
	}
}

func newPluginsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "plugins",
		Short:   MsgPluginsShort,
		Long:    MsgPluginsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := a.console(cmd)

			available, err := commands.ListPlugins(commands.ListPluginsOptions{
				Loaders: a.loaders(),
				Logger:  a.logger("plugins"),
			})
			if err != nil {
				return fmt.Errorf(MsgErrListPlugins, err)
			}
			if len(available) == 0 {
				console.Say(MsgNoPlugins)
				return nil
			}

			rows := make([][]string, 0, len(available))
			for _, p := range available {
				rows = append(rows, []string{p.Name, p.Source})
			}
			return console.Table([]string{"Plugin", "Source"}, rows)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.TOML()
			if err != nil {
				return fmt.Errorf(MsgErrRenderConfig, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}
