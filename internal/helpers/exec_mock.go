package helpers

import (
	"context"
	"io"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing
type MockCommandRunner struct {
	CommandExistsFunc       func(name string) bool
	RequireCommandFunc      func(name string) error
	RunCommandWithInputFunc func(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)
	StartDetachedFunc       func(name string, args ...string) (int, error)
	GetExitCodeFunc         func(err error) int
}

// CommandExists implements CommandRunner.CommandExists
func (m *MockCommandRunner) CommandExists(name string) bool {
	if m.CommandExistsFunc != nil {
		return m.CommandExistsFunc(name)
	}
	return false
}

// RequireCommand implements CommandRunner.RequireCommand
func (m *MockCommandRunner) RequireCommand(name string) error {
	if m.RequireCommandFunc != nil {
		return m.RequireCommandFunc(name)
	}
	return nil
}

// RunCommandWithInput implements CommandRunner.RunCommandWithInput
func (m *MockCommandRunner) RunCommandWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	if m.RunCommandWithInputFunc != nil {
		return m.RunCommandWithInputFunc(ctx, stdin, name, args...)
	}
	return "", nil
}

// StartDetached implements CommandRunner.StartDetached
func (m *MockCommandRunner) StartDetached(name string, args ...string) (int, error) {
	if m.StartDetachedFunc != nil {
		return m.StartDetachedFunc(name, args...)
	}
	return 0, nil
}

// GetExitCode implements CommandRunner.GetExitCode
func (m *MockCommandRunner) GetExitCode(err error) int {
	if m.GetExitCodeFunc != nil {
		return m.GetExitCodeFunc(err)
	}
	if err != nil {
		return 1
	}
	return 0
}
