package catalog

import (
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/desktop"
	"github.com/quantmind-br/pri3o/internal/fsops"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options controls how descriptor files become catalog entries
type Options struct {
	NameKeys  []string
	EntryType core.EntryType
}

// Skipped records a descriptor file that produced no entry
type Skipped struct {
	Path string
	Err  error
}

// Catalog is the set of visible applications keyed by entry text
type Catalog struct {
	Records map[string]core.DescriptorRecord
	Skipped []Skipped
	Files   int
}

// Discover returns the .desktop files directly inside each directory.
// Directory order is kept; files inside a directory are sorted by name.
// Missing or unreadable directories contribute nothing.
func Discover(fs afero.Fs, dirs []string) []string {
	var files []string
	for _, dir := range dirs {
		found, err := fsops.ListFiles(fs, dir, desktop.Extension)
		if err != nil {
			continue
		}
		files = append(files, found...)
	}
	return files
}

// Build discovers and parses all descriptor files in dirs.
// A file whose entry text matches an earlier one replaces it, so
// directories listed later take precedence.
func Build(fs afero.Fs, dirs []string, opts Options, log *zerolog.Logger) *Catalog {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	files := Discover(fs, dirs)
	cat := &Catalog{
		Records: make(map[string]core.DescriptorRecord, len(files)),
		Files:   len(files),
	}

	for _, path := range files {
		rec, err := desktop.ParseFile(fs, path, opts.NameKeys)
		if err != nil {
			cat.Skipped = append(cat.Skipped, Skipped{Path: path, Err: err})
			if desktop.IsSkip(err) {
				log.Debug().Str("file", path).Err(err).Msg("descriptor not listed")
			} else {
				log.Warn().Str("file", path).Err(err).Msg("skipping descriptor")
			}
			continue
		}

		key := rec.EntryText(opts.EntryType)
		if prev, ok := cat.Records[key]; ok {
			log.Debug().
				Str("entry", key).
				Str("previous", prev.Path).
				Str("file", path).
				Msg("descriptor overrides earlier entry")
		}
		cat.Records[key] = *rec
	}

	log.Debug().
		Int("files", cat.Files).
		Int("entries", len(cat.Records)).
		Int("skipped", len(cat.Skipped)).
		Msg("catalog built")

	return cat
}
