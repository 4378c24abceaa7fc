// Package locale turns a POSIX locale into the localized Name keys of a
// .desktop file.
package locale

import (
	"fmt"
	"strings"
)

// envOrder is the precedence of the locale variables for LC_CTYPE
var envOrder = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// Resolve returns the language tags to try, most specific first.
// "de_DE.UTF-8@euro" yields ["de_DE", "de"]. An empty override falls back to
// the environment; C and POSIX yield no tags.
func Resolve(override string, getenv func(string) string) []string {
	value := override
	if value == "" && getenv != nil {
		for _, key := range envOrder {
			if v := getenv(key); v != "" {
				value = v
				break
			}
		}
	}

	value = strip(value)
	if value == "" || value == "C" || value == "POSIX" {
		return nil
	}

	langs := []string{value}
	if lang, _, found := strings.Cut(value, "_"); found && lang != "" {
		langs = append(langs, lang)
	}
	return langs
}

// NameKeys returns the Name keys in lookup order with the plain Name last.
func NameKeys(langs []string) []string {
	keys := make([]string, 0, len(langs)+1)
	for _, lang := range langs {
		keys = append(keys, fmt.Sprintf("Name[%s]", lang))
	}
	return append(keys, "Name")
}

// strip drops the codeset and modifier parts of a locale name
func strip(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	return value
}
