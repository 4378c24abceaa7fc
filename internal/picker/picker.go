// Package picker presents ranked entries to an external or builtin menu
// and returns the user's choice.
package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/quantmind-br/pri3o/internal/helpers"
	"github.com/quantmind-br/pri3o/internal/ui"
	"github.com/rs/zerolog"
)

// Builtin is the picker command that selects the terminal menu instead of
// an external program.
const Builtin = "builtin"

// Picker shows entries in order and returns the chosen line.
// An empty choice with a nil error means the user cancelled.
type Picker interface {
	Select(ctx context.Context, entries []string) (string, error)
}

// New returns the picker for command. Command "builtin" selects the
// terminal menu; anything else is run as an external program.
func New(command string, runner helpers.CommandRunner, log *zerolog.Logger) Picker {
	if strings.TrimSpace(command) == Builtin {
		return &BuiltinPicker{Label: "Run"}
	}
	return &CommandPicker{Command: command, Runner: runner, Log: log}
}

// CommandPicker pipes entries to a dmenu-compatible program
type CommandPicker struct {
	Command string
	Runner  helpers.CommandRunner
	Log     *zerolog.Logger
}

// Select runs the picker command with one entry per line on stdin
func (p *CommandPicker) Select(ctx context.Context, entries []string) (string, error) {
	name, args, err := helpers.SplitCommand(p.Command)
	if err != nil {
		return "", fmt.Errorf("picker command: %w", err)
	}
	if err := p.Runner.RequireCommand(name); err != nil {
		return "", fmt.Errorf("picker command: %w", err)
	}

	input := strings.NewReader(strings.Join(entries, "\n"))
	output, err := p.Runner.RunCommandWithInput(ctx, input, name, args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("run picker: %w", ctx.Err())
		}
		// dmenu and rofi exit 1 without output on Escape
		if code := p.Runner.GetExitCode(err); output == "" && code > 0 {
			if p.Log != nil {
				p.Log.Debug().
					Err(err).
					Str("picker", name).
					Int("exit_code", code).
					Msg("picker exited without a choice")
			}
			return "", nil
		}
		return "", fmt.Errorf("run picker: %w", err)
	}

	return FirstLine(output), nil
}

// FirstLine returns the first line of a picker reply without its terminator
func FirstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimSuffix(line, "\r")
}

// BuiltinPicker shows a fuzzy-searchable list on the terminal
type BuiltinPicker struct {
	Label  string
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Select shows entries through promptui. Abort and EOF cancel.
func (p *BuiltinPicker) Select(ctx context.Context, entries []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("builtin picker: %w", err)
	}
	return ui.FuzzySelect(ui.SelectConfig{
		Label:  p.Label,
		Size:   15,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}, entries)
}
