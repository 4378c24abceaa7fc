package ranking

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name, command, stem string) core.DescriptorRecord {
	return core.DescriptorRecord{DisplayName: name, Command: command, FileStem: stem}
}

func usageOf(entries ...core.UsageEntry) map[string]core.UsageEntry {
	m := make(map[string]core.UsageEntry, len(entries))
	for _, e := range entries {
		e.Key = core.UsageKey(e.App)
		m[e.Key] = e
	}
	return m
}

func TestRank_UsageFirst(t *testing.T) {
	records := map[string]core.DescriptorRecord{
		"Firefox":   record("Firefox", "firefox", "firefox"),
		"Terminal":  record("Terminal", "xterm", "xterm"),
		"alacritty": record("alacritty", "alacritty", "Alacritty"),
		"Zathura":   record("Zathura", "zathura", "org.pwmt.zathura"),
	}
	usage := usageOf(
		core.UsageEntry{App: "Zathura", Count: -5},
		core.UsageEntry{App: "TERMINAL", Count: -1},
	)

	ranked := Rank(records, usage, core.EntryTypeName)

	assert.Equal(t, []string{"Zathura", "Terminal", "alacritty", "Firefox"}, Keys(ranked))
	assert.Equal(t, -5, ranked[0].Count)
	assert.Equal(t, core.SortKey{Count: -1, Text: "terminal"}, ranked[1].SortKey)
	assert.Equal(t, 0, ranked[2].Count)
}

func TestRank_EntryTypeText(t *testing.T) {
	records := map[string]core.DescriptorRecord{
		"b-cmd": record("Alpha", "b-cmd", "zz"),
		"a-cmd": record("Beta", "a-cmd", "aa"),
	}

	ranked := Rank(records, nil, core.EntryTypeCommand)
	assert.Equal(t, []string{"a-cmd", "b-cmd"}, Keys(ranked))

	// usage is always looked up by display name
	ranked = Rank(records, usageOf(core.UsageEntry{App: "alpha", Count: -1}), core.EntryTypeCommand)
	assert.Equal(t, []string{"b-cmd", "a-cmd"}, Keys(ranked))
}

func TestRank_CaseInsensitiveTieBreak(t *testing.T) {
	records := map[string]core.DescriptorRecord{
		"beta":  record("beta", "b", "b"),
		"Alpha": record("Alpha", "a", "a"),
		"Gamma": record("Gamma", "g", "g"),
	}

	ranked := Rank(records, nil, core.EntryTypeName)
	assert.Equal(t, []string{"Alpha", "beta", "Gamma"}, Keys(ranked))
}

func TestRank_Deterministic(t *testing.T) {
	records := make(map[string]core.DescriptorRecord)
	var apps []core.UsageEntry
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("App %02d", i)
		records[name] = record(name, "cmd", "stem")
		if i%3 == 0 {
			apps = append(apps, core.UsageEntry{App: name, Count: -(i % 7)})
		}
	}
	// entries differing only in case share a sort key
	records["app 01"] = record("app 01", "cmd", "stem")
	usage := usageOf(apps...)

	want := Keys(Rank(records, usage, core.EntryTypeName))
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, Keys(Rank(shuffled(records), usage, core.EntryTypeName)))
	}
}

func TestRank_MonotonicPriority(t *testing.T) {
	records := map[string]core.DescriptorRecord{
		"Aardvark": record("Aardvark", "a", "a"),
		"Zebra":    record("Zebra", "z", "z"),
	}

	// Zebra is selected more often than Aardvark
	count := map[string]int{}
	for i := 0; i < 3; i++ {
		count["Zebra"] = NextCount(count["Zebra"])
	}
	count["Aardvark"] = NextCount(count["Aardvark"])

	usage := usageOf(
		core.UsageEntry{App: "Zebra", Count: count["Zebra"]},
		core.UsageEntry{App: "Aardvark", Count: count["Aardvark"]},
	)
	ranked := Rank(records, usage, core.EntryTypeName)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Zebra", ranked[0].Key)
	assert.False(t, ranked[1].SortKey.Less(ranked[0].SortKey))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, nil, core.EntryTypeName))
	assert.Empty(t, Keys(nil))
}

func TestFind(t *testing.T) {
	ranked := Rank(map[string]core.DescriptorRecord{
		"Foo": record("Foo", "foo", "foo"),
	}, nil, core.EntryTypeName)

	entry, ok := Find(ranked, "Foo")
	require.True(t, ok)
	assert.Equal(t, "foo", entry.Record.Command)

	_, ok = Find(ranked, "foo")
	assert.False(t, ok)
}

func TestNextCount(t *testing.T) {
	assert.Equal(t, -1, NextCount(0))
	assert.Equal(t, -4, NextCount(-3))
}

func shuffled(in map[string]core.DescriptorRecord) map[string]core.DescriptorRecord {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	out := make(map[string]core.DescriptorRecord, len(in))
	for _, k := range keys {
		out[k] = in[k]
	}
	return out
}
