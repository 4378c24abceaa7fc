package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Color scheme for pri3o
var (
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)

	Highlight = color.New(color.FgHiCyan, color.Bold)
	Muted     = color.New(color.Faint)
	Bold      = color.New(color.Bold)

	CheckMark = color.GreenString("✓")
	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")
	Bullet    = color.HiBlackString("•")

	// entry type colors
	TypeName     = color.New(color.FgMagenta)
	TypeCommand  = color.New(color.FgBlue)
	TypeFilename = color.New(color.FgYellow)
)

// InitColors initializes color settings based on environment
func InitColors() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	if os.Getenv("TERM") == "dumb" {
		color.NoColor = true
	}
}

// ApplyColorMode applies a logging.color style setting: "always", "never" or "auto".
func ApplyColorMode(mode string) {
	switch mode {
	case "always":
		EnableColors()
	case "never":
		DisableColors()
	default:
		InitColors()
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Fprintf(os.Stdout, "%s %s\n", CheckMark, fmt.Sprintf(format, args...))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "%s Error: %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Fprintf(os.Stderr, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Fprintf(os.Stdout, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}

// PrintKeyValue prints a key-value pair with color
func PrintKeyValue(key, value string) {
	Bold.Fprintf(os.Stdout, "%s: ", key)
	fmt.Fprintln(os.Stdout, value)
}

// PrintHeader prints a section header
func PrintHeader(text string) {
	fmt.Fprintln(os.Stdout)
	Bold.Fprintln(os.Stdout, text)
	Muted.Fprintln(os.Stdout, "────────────────────────────────────────")
}

// PrintSubheader prints a subsection header
func PrintSubheader(text string) {
	fmt.Fprintln(os.Stdout)
	Highlight.Fprintln(os.Stdout, text)
}

// ColorizeEntryType returns a colored entry type string
func ColorizeEntryType(entryType string) string {
	switch entryType {
	case "name":
		return TypeName.Sprint(entryType)
	case "command":
		return TypeCommand.Sprint(entryType)
	case "filename":
		return TypeFilename.Sprint(entryType)
	default:
		return entryType
	}
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Fprintf(os.Stdout, "  %s %s\n", Bullet, item)
	}
}

// DisableColors disables all color output
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output
func EnableColors() {
	color.NoColor = false
}
