package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/quantmind-br/pri3o/internal/catalog"
	"github.com/quantmind-br/pri3o/internal/config"
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/db"
	"github.com/quantmind-br/pri3o/internal/desktop"
	"github.com/quantmind-br/pri3o/internal/fsops"
	"github.com/quantmind-br/pri3o/internal/helpers"
	"github.com/quantmind-br/pri3o/internal/locale"
	"github.com/quantmind-br/pri3o/internal/picker"
	"github.com/quantmind-br/pri3o/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// report collects doctor findings
type report struct {
	issues   []string
	warnings []string
}

func (r *report) issue(format string, args ...interface{}) {
	r.issues = append(r.issues, fmt.Sprintf(format, args...))
}

func (r *report) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger, env *Env) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check picker, terminal, database and descriptors",
		Long:  `Check that the picker and terminal commands exist, the usage database is accessible and the application directories parse cleanly.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui.PrintHeader("pri3o Diagnostics")

			r := &report{}

			ui.PrintSubheader("Configuration")
			if err := prepareConfig(cfg, env); err != nil {
				ui.PrintError("%v", err)
				r.issue("invalid configuration: %v", err)
			} else {
				ui.PrintSuccess("configuration valid")
			}
			ui.PrintKeyValue("Entry type", ui.ColorizeEntryType(cfg.Launcher.EntryType))

			ui.PrintSubheader("Commands")
			checkCommands(cfg, env.Runner, r)

			ui.PrintSubheader("Database")
			checkDatabase(cmd.Context(), cfg.Paths.DBFile, r)

			ui.PrintSubheader("Applications")
			checkDescriptors(cfg, env, log, verbose, r)

			ui.PrintHeader("Summary")
			if len(r.issues) == 0 {
				ui.PrintSuccess("All critical checks passed!")
			} else {
				ui.PrintError("Found %d issue(s):", len(r.issues))
				ui.PrintList(r.issues)
			}

			if len(r.warnings) > 0 {
				ui.PrintWarning("Found %d warning(s):", len(r.warnings))
				ui.PrintList(r.warnings)
			}

			if len(r.issues) > 0 {
				return fmt.Errorf("system check failed with %d issue(s)", len(r.issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every descriptor that failed to parse")

	return cmd
}

// checkCommands verifies the picker and terminal executables are on PATH
func checkCommands(cfg *config.Config, runner helpers.CommandRunner, r *report) {
	commands := []struct {
		label    string
		line     string
		required bool
	}{
		{"picker", cfg.Launcher.Picker, true},
		{"terminal", cfg.Launcher.Terminal, false},
	}

	for _, c := range commands {
		if c.label == "picker" && strings.TrimSpace(c.line) == picker.Builtin {
			ui.PrintSuccess("picker: builtin terminal menu")
			continue
		}

		name, _, err := helpers.SplitCommand(c.line)
		if err != nil {
			ui.PrintError("%s: not configured", c.label)
			r.issue("%s command is empty", c.label)
			continue
		}

		switch {
		case runner.CommandExists(name):
			ui.PrintSuccess("%s: %s", c.label, name)
		case c.required:
			ui.PrintError("%s: %s NOT FOUND", c.label, name)
			r.issue("%s command not found: %s", c.label, name)
		default:
			ui.PrintWarning("%s: %s not found (terminal applications cannot start)", c.label, name)
			r.warn("%s command not found: %s", c.label, name)
		}
	}
}

// checkDatabase opens the usage store and reports how many entries it holds
func checkDatabase(ctx context.Context, path string, r *report) {
	if !fsops.Exists(afero.NewOsFs(), path) {
		ui.PrintInfo("database %s does not exist yet and will be created", path)
	}

	database, err := db.Open(ctx, path)
	if err != nil {
		ui.PrintError("database: NOT ACCESSIBLE (%s)", path)
		r.issue("cannot open database: %v", err)
		return
	}
	defer database.Close()

	entries, err := database.List(ctx)
	if err != nil {
		ui.PrintError("database: unreadable (%s)", path)
		r.issue("cannot read database: %v", err)
		return
	}

	ui.PrintSuccess("database: %s", path)
	ui.PrintInfo("Recorded applications: %d", len(entries))
}

// checkDescriptors scans the application directories and reports parse failures
func checkDescriptors(cfg *config.Config, env *Env, log *zerolog.Logger, verbose bool, r *report) {
	dirs := env.Resolver.SearchDirs()
	found := 0
	for _, dir := range dirs {
		if fsops.IsDir(env.Fs, dir) {
			found++
			ui.PrintSuccess("%s", dir)
		} else {
			ui.PrintInfo("%s: not present", dir)
		}
	}
	if found == 0 {
		r.issue("no application directory exists")
	}

	entryType, err := core.ParseEntryType(cfg.Launcher.EntryType)
	if err != nil {
		entryType = core.EntryTypeName
	}
	getenv := env.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	quiet := log.Level(zerolog.Disabled)
	cat := catalog.Build(env.Fs, dirs, catalog.Options{
		NameKeys:  locale.NameKeys(locale.Resolve(cfg.Launcher.Locale, getenv)),
		EntryType: entryType,
	}, &quiet)

	var broken []string
	for _, skipped := range cat.Skipped {
		if !desktop.IsSkip(skipped.Err) {
			broken = append(broken, skipped.Err.Error())
		}
	}

	ui.PrintInfo("Descriptors: %d files, %d listed, %d hidden, %d invalid",
		cat.Files, len(cat.Records), len(cat.Skipped)-len(broken), len(broken))

	if len(broken) > 0 {
		r.warn("%d descriptor(s) failed to parse", len(broken))
		if verbose {
			ui.PrintList(broken)
		}
	}
	if cat.Files > 0 && len(cat.Records) == 0 {
		r.issue("no application is visible")
	}
}
