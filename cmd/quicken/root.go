package quicken

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/quicken/internal/version"
	"github.com/arthur-debert/quicken/pkg/config"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/scripted"
	"github.com/arthur-debert/quicken/pkg/ui"
)

// app carries what the persistent flags resolve to, shared by every command
type app struct {
	verbosity  int
	configFile string
	format     string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "quicken",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ui.ParseFormat(a.format); err != nil {
				return err
			}
			cfg, err := config.Load(config.LoadOptions{File: a.configFile})
			if err != nil {
				logging.SetupLogger(a.verbosity, "")
				return err
			}
			a.cfg = cfg
			logging.SetupLogger(a.verbosity, cfg.Logging.File)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newPluginsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// console builds the console for cmd according to --format. The format was
// validated in PersistentPreRunE.
func (a *app) console(cmd *cobra.Command) *ui.Console {
	format, _ := ui.ParseFormat(a.format)
	c := ui.NewConsoleWithFormat(cmd.OutOrStdout(), format)
	c.Err = cmd.ErrOrStderr()
	return c
}

func (a *app) loaders() []plugin.Loader {
	return []plugin.Loader{scripted.NewLoader(a.cfg.Plugins.Dir)}
}

func (a *app) logger(component string) *zerolog.Logger {
	l := logging.GetLogger(component)
	return &l
}
