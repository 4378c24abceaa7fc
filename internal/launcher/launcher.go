package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/helpers"
	"github.com/rs/zerolog"
)

// Launcher starts the command of a chosen record
type Launcher struct {
	Runner   helpers.CommandRunner
	Terminal string
	log      *zerolog.Logger
}

// New creates a launcher that wraps terminal applications with terminal
func New(runner helpers.CommandRunner, terminal string, log *zerolog.Logger) *Launcher {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Launcher{Runner: runner, Terminal: terminal, log: log}
}

// Argv returns the argument vector for record. Terminal applications are
// prefixed with the terminal wrapper. Words are split on whitespace only.
func (l *Launcher) Argv(record core.DescriptorRecord) []string {
	line := record.Command
	if record.Terminal {
		line = l.Terminal + " " + record.Command
	}
	return strings.Fields(line)
}

// Launch starts the record detached from this process and does not wait for it
func (l *Launcher) Launch(ctx context.Context, record core.DescriptorRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("launch %s: %w", record.DisplayName, err)
	}

	argv := l.Argv(record)
	if len(argv) == 0 {
		return fmt.Errorf("launch %s: %w", record.DisplayName, helpers.ErrEmptyCommand)
	}

	pid, err := l.Runner.StartDetached(argv[0], argv[1:]...)
	if err != nil {
		return fmt.Errorf("launch %s: %w", record.DisplayName, err)
	}

	if l.log != nil {
		l.log.Debug().
			Strs("argv", argv).
			Int("pid", pid).
			Msg("launched application")
	}
	return nil
}
