package core

import (
	"fmt"
	"strings"
)

// EntryType selects which descriptor field is shown to the picker
type EntryType string

const (
	EntryTypeName     EntryType = "name"
	EntryTypeCommand  EntryType = "command"
	EntryTypeFilename EntryType = "filename"
)

// EntryTypes lists the accepted entry types in help order
var EntryTypes = []EntryType{EntryTypeName, EntryTypeCommand, EntryTypeFilename}

// ParseEntryType validates a user supplied entry type
func ParseEntryType(value string) (EntryType, error) {
	for _, t := range EntryTypes {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: invalid entry type: %s", ErrInvalidConfig, value)
}

// DescriptorRecord is one visible application parsed from a .desktop file
type DescriptorRecord struct {
	DisplayName string `json:"name"`
	Command     string `json:"command"`
	Terminal    bool   `json:"terminal"`
	FileStem    string `json:"filename"`
	Path        string `json:"path,omitempty"`
}

// EntryText returns the field shown to the picker for the given entry type
func (r DescriptorRecord) EntryText(t EntryType) string {
	switch t {
	case EntryTypeCommand:
		return r.Command
	case EntryTypeFilename:
		return r.FileStem
	default:
		return r.DisplayName
	}
}

// UsageKey returns the usage store key of the record
func (r DescriptorRecord) UsageKey() string {
	return UsageKey(r.DisplayName)
}

// UsageEntry is a persisted selection counter.
// Count decreases by one on every selection.
type UsageEntry struct {
	Key   string `json:"-"`
	App   string `json:"app"`
	Count int    `json:"count"`
}

// UsageKey derives the case-insensitive identity of an application name
func UsageKey(app string) string {
	return strings.ToLower(app)
}

// SortKey orders ranked entries: lower count first, then text
type SortKey struct {
	Count int
	Text  string
}

// Less reports whether k sorts before other
func (k SortKey) Less(other SortKey) bool {
	if k.Count != other.Count {
		return k.Count < other.Count
	}
	return k.Text < other.Text
}

// RankedEntry is a record paired with its usage for a single session
type RankedEntry struct {
	Key     string           `json:"entry"`
	Record  DescriptorRecord `json:"record"`
	Count   int              `json:"count"`
	SortKey SortKey          `json:"-"`
}

// Exit codes
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitInvalidArgs = 2
	ExitDatabase    = 5
)
