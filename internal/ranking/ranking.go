// Package ranking orders catalog entries by how often they were selected.
//
// Every selection lowers an application's stored count by one, so more
// frequently used applications have smaller counts and sort first. Entries
// with the same count, including the never used ones at zero, are ordered
// alphabetically ignoring case.
package ranking

import (
	"sort"
	"strings"

	"github.com/quantmind-br/pri3o/internal/core"
)

// Rank merges records with usage data and returns them in display order.
// The result does not depend on map iteration order.
func Rank(records map[string]core.DescriptorRecord, usage map[string]core.UsageEntry, entryType core.EntryType) []core.RankedEntry {
	ranked := make([]core.RankedEntry, 0, len(records))
	for key, rec := range records {
		count := 0
		if entry, ok := usage[rec.UsageKey()]; ok {
			count = entry.Count
		}

		ranked = append(ranked, core.RankedEntry{
			Key:    key,
			Record: rec,
			Count:  count,
			SortKey: core.SortKey{
				Count: count,
				Text:  strings.ToLower(rec.EntryText(entryType)),
			},
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.SortKey != b.SortKey {
			return a.SortKey.Less(b.SortKey)
		}
		// Identical sort keys: fall back to the exact entry text
		return a.Key < b.Key
	})

	return ranked
}

// Keys returns the picker lines of ranked entries in order
func Keys(ranked []core.RankedEntry) []string {
	keys := make([]string, len(ranked))
	for i, entry := range ranked {
		keys[i] = entry.Key
	}
	return keys
}

// Find returns the ranked entry whose key equals choice
func Find(ranked []core.RankedEntry, choice string) (core.RankedEntry, bool) {
	for _, entry := range ranked {
		if entry.Key == choice {
			return entry, true
		}
	}
	return core.RankedEntry{}, false
}

// NextCount returns the count to store after one more selection
func NextCount(current int) int {
	return current - 1
}
