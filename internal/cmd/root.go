package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/quantmind-br/pri3o/internal/config"
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/helpers"
	"github.com/quantmind-br/pri3o/internal/launcher"
	"github.com/quantmind-br/pri3o/internal/paths"
	"github.com/quantmind-br/pri3o/internal/picker"
	"github.com/quantmind-br/pri3o/internal/session"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Env carries the process collaborators shared by all commands
type Env struct {
	Runner   helpers.CommandRunner
	Fs       afero.Fs
	Resolver *paths.Resolver
	Getenv   func(string) string
}

// DefaultEnv returns the environment of the running process
func DefaultEnv() *Env {
	return &Env{
		Runner:   helpers.NewOSCommandRunner(),
		Fs:       afero.NewOsFs(),
		Resolver: paths.NewResolver(),
		Getenv:   os.Getenv,
	}
}

// NewRootCmd creates the root command. Running it without a subcommand
// starts a launcher session.
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string, env *Env) *cobra.Command {
	entryTypes := make([]string, 0, len(core.EntryTypes))
	for _, t := range core.EntryTypes {
		entryTypes = append(entryTypes, string(t))
	}

	cmd := &cobra.Command{
		Use:   "pri3o",
		Short: "Launch desktop applications through dmenu, most used first",
		Long: `pri3o lists the applications described by .desktop files in a dmenu-compatible
picker, ordered by how often each one was chosen, and launches the selection.
Terminal applications are started through the terminal wrapper.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prepareConfig(cfg, env); err != nil {
				return err
			}

			controller := newController(cfg, env, log)
			result, err := controller.Run(cmd.Context())
			if err != nil {
				return err
			}

			log.Debug().
				Str("state", result.State.String()).
				Str("choice", result.Choice).
				Msg("session finished")
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfg.Paths.DBFile, "database", "d", cfg.Paths.DBFile, "usage database file")
	flags.StringVarP(&cfg.Launcher.EntryType, "entry-type", "e", cfg.Launcher.EntryType,
		fmt.Sprintf("entry text shown in the picker (%s)", strings.Join(entryTypes, ", ")))
	flags.StringVarP(&cfg.Launcher.Locale, "locale", "l", cfg.Launcher.Locale, "locale used for localized names (default from LC_ALL, LC_CTYPE, LANG)")
	flags.StringVarP(&cfg.Launcher.Picker, "dmenu", "m", cfg.Launcher.Picker, `picker command, or "builtin" for the terminal menu`)
	flags.StringVarP(&cfg.Launcher.Terminal, "term", "t", cfg.Launcher.Terminal, "terminal wrapper for Terminal=true applications")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	})

	_ = cmd.RegisterFlagCompletionFunc("entry-type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return entryTypes, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(NewListCmd(cfg, log, env))
	cmd.AddCommand(NewStatsCmd(cfg, log, env))
	cmd.AddCommand(NewDoctorCmd(cfg, log, env))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}

// prepareConfig applies path expansion to flag values and validates the result
func prepareConfig(cfg *config.Config, env *Env) error {
	cfg.Paths.DBFile = config.ExpandPath(env.Resolver, cfg.Paths.DBFile)
	return cfg.Validate()
}

// newController wires a session from validated configuration
func newController(cfg *config.Config, env *Env, log *zerolog.Logger) *session.Controller {
	entryType, _ := core.ParseEntryType(cfg.Launcher.EntryType)

	return &session.Controller{
		Ctx: session.Context{
			DBPath:          cfg.Paths.DBFile,
			EntryType:       entryType,
			Locale:          cfg.Launcher.Locale,
			PickerCommand:   cfg.Launcher.Picker,
			TerminalCommand: cfg.Launcher.Terminal,
			SearchDirs:      env.Resolver.SearchDirs(),
			Fs:              env.Fs,
			Log:             log,
			Getenv:          env.Getenv,
		},
		OpenStore: session.OpenDB,
		Picker:    picker.New(cfg.Launcher.Picker, env.Runner, log),
		Launcher:  launcher.New(env.Runner, cfg.Launcher.Terminal, log),
	}
}
