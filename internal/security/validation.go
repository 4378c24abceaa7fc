package security

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxPathLength is the longest path accepted from configuration
const MaxPathLength = 4096

// ValidatePath validates a user supplied file path such as the usage store
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if len(path) >= MaxPathLength {
		return fmt.Errorf("path too long (max %d characters)", MaxPathLength)
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null byte")
	}

	return nil
}

// ValidateCommandLine validates a command template such as the picker or
// terminal wrapper. Lines are split on whitespace and never passed to a
// shell, so only empty lines and control characters are rejected.
func ValidateCommandLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("command cannot be empty")
	}

	for _, r := range line {
		if r == '\t' || r == ' ' {
			continue
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("command contains control character %q", r)
		}
	}

	return nil
}
