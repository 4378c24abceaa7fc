package desktop

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/fsops"
	"github.com/spf13/afero"
)

// Extension is the suffix of descriptor files
const Extension = ".desktop"

const groupHeader = "[Desktop Entry]"

var (
	// ErrMissingHeader is returned when the first significant line is not [Desktop Entry]
	ErrMissingHeader = errors.New("missing [Desktop Entry] header")

	// ErrMalformedLine is wrapped by ParseError
	ErrMalformedLine = errors.New("malformed line")

	// ErrNotVisible is returned for Hidden=true or NoDisplay=true entries
	ErrNotVisible = errors.New("entry is hidden")

	// ErrNoName is returned when none of the name keys is present
	ErrNoName = errors.New("entry has no name")

	// ErrNoExec is returned when Exec is absent or empty
	ErrNoExec = errors.New("entry has no Exec")
)

// ParseError describes a line inside the [Desktop Entry] group without '='
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, ErrMalformedLine)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedLine
}

// IsSkip reports whether err only means the entry should not be listed
func IsSkip(err error) bool {
	return errors.Is(err, ErrNotVisible) || errors.Is(err, ErrNoName) || errors.Is(err, ErrNoExec)
}

var (
	deprecatedFieldCodes = regexp.MustCompile(`%[dDnNvm]`)
	fieldCodes           = regexp.MustCompile(`%[fFuUcik]`)
)

// Parse turns the lines of a .desktop file into a record.
// nameKeys lists the Name keys to try in priority order.
func Parse(lines []string, nameKeys []string) (*core.DescriptorRecord, error) {
	fields, err := parseGroup(lines)
	if err != nil {
		return nil, err
	}

	if fields["Hidden"] == "true" || fields["NoDisplay"] == "true" {
		return nil, ErrNotVisible
	}

	name := ""
	for _, key := range nameKeys {
		if v, ok := fields[key]; ok && v != "" {
			name = v
			break
		}
	}
	if name == "" {
		return nil, ErrNoName
	}

	command := CleanExec(fields["Exec"])
	if command == "" {
		return nil, ErrNoExec
	}

	return &core.DescriptorRecord{
		DisplayName: name,
		Command:     command,
		Terminal:    fields["Terminal"] == "true",
	}, nil
}

// ParseFile reads and parses a .desktop file
func ParseFile(fs afero.Fs, path string, nameKeys []string) (*core.DescriptorRecord, error) {
	lines, err := fsops.ReadLines(fs, path)
	if err != nil {
		return nil, err
	}

	rec, err := Parse(lines, nameKeys)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	rec.FileStem = FileStem(path)
	rec.Path = path
	return rec, nil
}

// parseGroup returns the key/value pairs of the leading [Desktop Entry] group
func parseGroup(lines []string) (map[string]string, error) {
	fields := make(map[string]string)
	header := false

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !header {
			if line != groupHeader {
				return nil, ErrMissingHeader
			}
			header = true
			continue
		}

		// Next group starts
		if strings.HasPrefix(line, "[") {
			break
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &ParseError{Line: i + 1, Text: line}
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if !header {
		return nil, ErrMissingHeader
	}
	return fields, nil
}

// CleanExec strips one pair of outer quotes and removes field codes.
// Arguments are never substituted, so %f, %u and friends simply disappear.
func CleanExec(exec string) string {
	if len(exec) >= 2 {
		first, last := exec[0], exec[len(exec)-1]
		if first == last && (first == '"' || first == '\'') {
			exec = exec[1 : len(exec)-1]
		}
	}

	exec = deprecatedFieldCodes.ReplaceAllString(exec, "")
	exec = fieldCodes.ReplaceAllString(exec, "")
	return strings.TrimSpace(exec)
}

// FileStem returns the base name of path without its last extension
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
