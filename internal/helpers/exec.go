package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// ErrEmptyCommand is returned when a command line has no words
var ErrEmptyCommand = errors.New("empty command")

// CommandRunner defines an interface for executing system commands
// This allows for mocking in tests and dependency injection
type CommandRunner interface {
	// CommandExists checks if a command is available in PATH
	CommandExists(name string) bool

	// RequireCommand ensures a command exists or returns error
	RequireCommand(name string) error

	// RunCommandWithInput runs a command with stdin and returns its stdout
	RunCommandWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)

	// StartDetached starts a command in its own session and does not wait for it
	StartDetached(name string, args ...string) (int, error)

	// GetExitCode extracts the exit code from a command error
	GetExitCode(err error) int
}

// OSCommandRunner is the default implementation using os/exec
type OSCommandRunner struct {
	commandCache sync.Map // map[string]bool
}

// NewOSCommandRunner creates a new OSCommandRunner instance
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// CommandExists checks if a command is available in PATH
func (r *OSCommandRunner) CommandExists(name string) bool {
	if cached, ok := r.commandCache.Load(name); ok {
		if exists, ok := cached.(bool); ok {
			return exists
		}
		r.commandCache.Delete(name)
	}

	_, err := exec.LookPath(name)
	exists := err == nil
	r.commandCache.Store(name, exists)
	return exists
}

// RequireCommand ensures a command exists or returns error
func (r *OSCommandRunner) RequireCommand(name string) error {
	if !r.CommandExists(name) {
		return fmt.Errorf("required command %q not found in PATH", name)
	}
	return nil
}

// RunCommandWithInput runs a command feeding stdin and returns stdout.
// On failure the captured stdout is still returned next to the error.
// SECURITY: Uses exec.CommandContext with separate arguments to prevent command injection
func (r *OSCommandRunner) RunCommandWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return stdout.String(), fmt.Errorf("command %q failed: %w", name, err)
		}
		return stdout.String(), fmt.Errorf("command %q failed: %w\nstderr: %s", name, err, msg)
	}

	return stdout.String(), nil
}

// StartDetached starts a command in a new session without stdio and returns
// its pid. The process is released; it keeps running after we exit.
func (r *OSCommandRunner) StartDetached(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %q: %w", name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("release %q: %w", name, err)
	}
	return pid, nil
}

// GetExitCode extracts the exit code from a command error
func (r *OSCommandRunner) GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// SplitCommand splits a command line on whitespace into name and args.
// Quoting is not interpreted.
func SplitCommand(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, ErrEmptyCommand
	}
	return fields[0], fields[1:], nil
}
