package picker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/quantmind-br/pri3o/internal/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	runner := &helpers.MockCommandRunner{}
	log := zerolog.Nop()

	p := New("dmenu -i", runner, &log)
	cp, ok := p.(*CommandPicker)
	require.True(t, ok)
	assert.Equal(t, "dmenu -i", cp.Command)
	assert.Same(t, runner, cp.Runner)
	assert.Same(t, &log, cp.Log)

	_, ok = New(" builtin ", runner, &log).(*BuiltinPicker)
	assert.True(t, ok)
}

func TestCommandPicker_Select(t *testing.T) {
	var gotName string
	var gotArgs []string
	var gotInput string

	runner := &helpers.MockCommandRunner{
		RunCommandWithInputFunc: func(_ context.Context, stdin io.Reader, name string, args ...string) (string, error) {
			gotName = name
			gotArgs = args
			data, err := io.ReadAll(stdin)
			require.NoError(t, err)
			gotInput = string(data)
			return "Terminal\n", nil
		},
	}

	p := &CommandPicker{Command: "rofi -dmenu -i", Runner: runner}
	choice, err := p.Select(context.Background(), []string{"Zathura", "Terminal", "Firefox"})

	require.NoError(t, err)
	assert.Equal(t, "Terminal", choice)
	assert.Equal(t, "rofi", gotName)
	assert.Equal(t, []string{"-dmenu", "-i"}, gotArgs)
	assert.Equal(t, "Zathura\nTerminal\nFirefox", gotInput)
}

func TestCommandPicker_Replies(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		err     error
		want    string
		wantErr bool
	}{
		{"FirstLineOnly", "Firefox\nextra\n", nil, "Firefox", false},
		{"NoTerminator", "Firefox", nil, "Firefox", false},
		{"CarriageReturn", "Firefox\r\n", nil, "Firefox", false},
		{"EmptyReply", "", nil, "", false},
		{"EmptyLine", "\n", nil, "", false},
		{"EscapeExit", "", errors.New("exit status 1"), "", false},
		{"FailureWithOutput", "garbage", errors.New("exit status 2"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &helpers.MockCommandRunner{
				RunCommandWithInputFunc: func(context.Context, io.Reader, string, ...string) (string, error) {
					return tt.output, tt.err
				},
			}

			choice, err := (&CommandPicker{Command: "dmenu", Runner: runner}).Select(context.Background(), []string{"Firefox"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, choice)
		})
	}
}

func TestCommandPicker_SilentFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	runner := &helpers.MockCommandRunner{
		RunCommandWithInputFunc: func(context.Context, io.Reader, string, ...string) (string, error) {
			return "", errors.New("exit status 139")
		},
		GetExitCodeFunc: func(error) int { return 139 },
	}

	p := &CommandPicker{Command: "dmenu -i", Runner: runner, Log: &log}
	choice, err := p.Select(context.Background(), []string{"Firefox"})

	require.NoError(t, err)
	assert.Empty(t, choice)
	assert.Contains(t, buf.String(), "picker exited without a choice")
	assert.Contains(t, buf.String(), `"exit_code":139`)
	assert.Contains(t, buf.String(), `"picker":"dmenu"`)
	assert.Contains(t, buf.String(), "exit status 139")
}

func TestCommandPicker_MissingBinary(t *testing.T) {
	called := false
	runner := &helpers.MockCommandRunner{
		RequireCommandFunc: func(name string) error {
			return errors.New("required command \"" + name + "\" not found in PATH")
		},
		RunCommandWithInputFunc: func(context.Context, io.Reader, string, ...string) (string, error) {
			called = true
			return "", nil
		},
	}

	_, err := (&CommandPicker{Command: "dmenu -i", Runner: runner}).Select(context.Background(), nil)
	assert.ErrorContains(t, err, "dmenu")
	assert.False(t, called)
}

func TestCommandPicker_EmptyCommand(t *testing.T) {
	_, err := (&CommandPicker{Command: "  ", Runner: &helpers.MockCommandRunner{}}).Select(context.Background(), nil)
	assert.ErrorIs(t, err, helpers.ErrEmptyCommand)
}

func TestCommandPicker_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &helpers.MockCommandRunner{
		RunCommandWithInputFunc: func(ctx context.Context, _ io.Reader, _ string, _ ...string) (string, error) {
			return "", errors.New("signal: killed")
		},
	}

	_, err := (&CommandPicker{Command: "dmenu", Runner: runner}).Select(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuiltinPicker_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&BuiltinPicker{}).Select(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuiltinPicker_NoEntries(t *testing.T) {
	choice, err := (&BuiltinPicker{}).Select(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, choice)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a", FirstLine("a\nb"))
	assert.Equal(t, "", FirstLine(""))
	assert.Equal(t, " spaced ", FirstLine(" spaced \n"))
}
