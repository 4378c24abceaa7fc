package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	*target = w

	fn()

	w.Close()
	*target = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestInitColors(t *testing.T) {
	t.Run("with NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		color.NoColor = false
		InitColors()

		assert.True(t, color.NoColor)
	})

	t.Run("with TERM=dumb", func(t *testing.T) {
		t.Setenv("TERM", "dumb")

		color.NoColor = false
		InitColors()

		assert.True(t, color.NoColor)
	})
}

func TestApplyColorMode(t *testing.T) {
	ApplyColorMode("never")
	assert.True(t, color.NoColor)

	ApplyColorMode("always")
	assert.False(t, color.NoColor)

	t.Setenv("NO_COLOR", "1")
	ApplyColorMode("auto")
	assert.True(t, color.NoColor)
}

func TestPrintFunctions(t *testing.T) {
	DisableColors()
	defer EnableColors()

	t.Run("PrintSuccess", func(t *testing.T) {
		output := captureOutput(t, &os.Stdout, func() { PrintSuccess("test %s", "message") })
		assert.Contains(t, output, "✓")
		assert.Contains(t, output, "test message")
	})

	t.Run("PrintError", func(t *testing.T) {
		output := captureOutput(t, &os.Stderr, func() { PrintError("test %s", "error") })
		assert.Contains(t, output, "✗")
		assert.Contains(t, output, "Error:")
		assert.Contains(t, output, "test error")
	})

	t.Run("PrintWarning", func(t *testing.T) {
		output := captureOutput(t, &os.Stderr, func() { PrintWarning("test %s", "warning") })
		assert.Contains(t, output, "Warning: test warning")
	})

	t.Run("PrintInfo", func(t *testing.T) {
		output := captureOutput(t, &os.Stdout, func() { PrintInfo("test %s", "info") })
		assert.Contains(t, output, "→")
		assert.Contains(t, output, "test info")
	})

	t.Run("PrintKeyValue", func(t *testing.T) {
		output := captureOutput(t, &os.Stdout, func() { PrintKeyValue("key", "value") })
		assert.Contains(t, output, "key: value")
	})

	t.Run("PrintHeader", func(t *testing.T) {
		output := captureOutput(t, &os.Stdout, func() { PrintHeader("Header") })
		assert.Contains(t, output, "Header")
		assert.Contains(t, output, "─")
	})

	t.Run("PrintSubheader", func(t *testing.T) {
		output := captureOutput(t, &os.Stdout, func() { PrintSubheader("Subheader") })
		assert.Contains(t, output, "Subheader")
	})

	t.Run("PrintList", func(t *testing.T) {
		output := captureOutput(t, &os.Stdout, func() { PrintList([]string{"item1", "item2"}) })
		assert.Contains(t, output, "• item1")
		assert.Contains(t, output, "• item2")
	})
}

func TestColorizeEntryType(t *testing.T) {
	DisableColors()
	defer EnableColors()

	for _, entryType := range []string{"name", "command", "filename", "unknown"} {
		t.Run(entryType, func(t *testing.T) {
			assert.Equal(t, entryType, ColorizeEntryType(entryType))
		})
	}
}

func TestColorControls(t *testing.T) {
	color.NoColor = false
	DisableColors()
	assert.True(t, color.NoColor)

	EnableColors()
	assert.False(t, color.NoColor)
}
