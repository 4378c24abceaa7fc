package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/manifoldco/promptui"
)

// SelectConfig holds the terminal streams and sizing for FuzzySelect.
// Nil streams fall back to the process stdin/stdout.
type SelectConfig struct {
	Label  string
	Size   int
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// FuzzySelect presents items in a searchable list and returns the chosen
// one. An aborted or interrupted prompt returns "" and a nil error.
func FuzzySelect(cfg SelectConfig, items []string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	size := cfg.Size
	if size <= 0 {
		size = 10
	}

	prompt := promptui.Select{
		Label:             cfg.Label,
		Items:             items,
		Size:              min(size, len(items)),
		Searcher:          FuzzySearcher(items),
		StartInSearchMode: true,
		Stdin:             cfg.Stdin,
		Stdout:            cfg.Stdout,
	}

	_, result, err := prompt.Run()
	return selectResult(result, err)
}

// FuzzySearcher matches the search input against items, ignoring case and
// diacritics.
func FuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if index < 0 || index >= len(items) {
			return false
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return true
		}
		return fuzzy.MatchNormalizedFold(input, items[index])
	}
}

func selectResult(result string, err error) (string, error) {
	if err == nil {
		return result, nil
	}
	if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
		return "", nil
	}
	return "", fmt.Errorf("select entry: %w", err)
}
