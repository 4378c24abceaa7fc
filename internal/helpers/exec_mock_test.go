package helpers

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockCommandRunner_CommandExists(t *testing.T) {
	t.Parallel()

	t.Run("with custom function", func(t *testing.T) {
		mock := &MockCommandRunner{
			CommandExistsFunc: func(name string) bool {
				return name == "dmenu"
			},
		}

		assert.True(t, mock.CommandExists("dmenu"))
		assert.False(t, mock.CommandExists("rofi"))
	})

	t.Run("without custom function", func(t *testing.T) {
		mock := &MockCommandRunner{}
		assert.False(t, mock.CommandExists("dmenu"))
	})
}

func TestMockCommandRunner_RequireCommand(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("command not found")
	mock := &MockCommandRunner{
		RequireCommandFunc: func(name string) error {
			if name == "missing" {
				return expectedErr
			}
			return nil
		},
	}

	assert.NoError(t, mock.RequireCommand("dmenu"))
	assert.Equal(t, expectedErr, mock.RequireCommand("missing"))
	assert.NoError(t, (&MockCommandRunner{}).RequireCommand("anything"))
}

func TestMockCommandRunner_RunCommandWithInput(t *testing.T) {
	t.Parallel()

	t.Run("with custom function", func(t *testing.T) {
		mock := &MockCommandRunner{
			RunCommandWithInputFunc: func(_ context.Context, stdin io.Reader, name string, _ ...string) (string, error) {
				data, _ := io.ReadAll(stdin)
				return name + ":" + string(data), nil
			},
		}

		output, err := mock.RunCommandWithInput(context.Background(), strings.NewReader("a\nb"), "dmenu", "-i")
		assert.NoError(t, err)
		assert.Equal(t, "dmenu:a\nb", output)
	})

	t.Run("without custom function", func(t *testing.T) {
		mock := &MockCommandRunner{}
		output, err := mock.RunCommandWithInput(context.Background(), nil, "dmenu")
		assert.NoError(t, err)
		assert.Empty(t, output)
	})
}

func TestMockCommandRunner_StartDetached(t *testing.T) {
	t.Parallel()

	var got []string
	mock := &MockCommandRunner{
		StartDetachedFunc: func(name string, args ...string) (int, error) {
			got = append([]string{name}, args...)
			return 4242, nil
		},
	}

	pid, err := mock.StartDetached("xterm", "-e", "vim")
	assert.NoError(t, err)
	assert.Equal(t, 4242, pid)
	assert.Equal(t, []string{"xterm", "-e", "vim"}, got)

	pid, err = (&MockCommandRunner{}).StartDetached("xterm")
	assert.NoError(t, err)
	assert.Zero(t, pid)
}

func TestMockCommandRunner_GetExitCode(t *testing.T) {
	t.Parallel()

	mock := &MockCommandRunner{
		GetExitCodeFunc: func(_ error) int {
			return 42
		},
	}
	assert.Equal(t, 42, mock.GetExitCode(errors.New("some error")))

	plain := &MockCommandRunner{}
	assert.Equal(t, 1, plain.GetExitCode(errors.New("some error")))
	assert.Equal(t, 0, plain.GetExitCode(nil))
}
