// Package session runs one launcher invocation: load usage, rank the
// catalog, ask the picker, record the choice and start the application.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/quantmind-br/pri3o/internal/catalog"
	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/db"
	"github.com/quantmind-br/pri3o/internal/locale"
	"github.com/quantmind-br/pri3o/internal/picker"
	"github.com/quantmind-br/pri3o/internal/ranking"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ErrUnknownChoice is returned when the picker replies with text that is
// not one of the offered entries.
var ErrUnknownChoice = errors.New("unknown choice")

// Store is the part of the usage store a session needs
type Store interface {
	LoadAll(ctx context.Context) (map[string]core.UsageEntry, error)
	Upsert(ctx context.Context, app string, count int) error
	Close() error
}

// StoreOpener opens the usage store at path
type StoreOpener func(ctx context.Context, path string) (Store, error)

// Launcher starts a chosen record
type Launcher interface {
	Launch(ctx context.Context, record core.DescriptorRecord) error
}

// OpenDB opens the sqlite usage store
func OpenDB(ctx context.Context, path string) (Store, error) {
	store, err := db.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Context is the resolved configuration of one invocation
type Context struct {
	DBPath          string
	EntryType       core.EntryType
	Locale          string
	PickerCommand   string
	TerminalCommand string
	SearchDirs      []string
	Fs              afero.Fs
	Log             *zerolog.Logger
	Getenv          func(string) string
}

// State is a step of the session lifecycle
type State int

const (
	StateInit State = iota
	StateLocalesResolved
	StateStoreOpened
	StateDataFetched
	StatePresented
	StateCancelled
	StateUpdated
	StateLaunched
)

var stateNames = map[State]string{
	StateInit:            "init",
	StateLocalesResolved: "locales-resolved",
	StateStoreOpened:     "store-opened",
	StateDataFetched:     "data-fetched",
	StatePresented:       "presented",
	StateCancelled:       "cancelled",
	StateUpdated:         "updated",
	StateLaunched:        "launched",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Result describes how a session ended
type Result struct {
	State   State
	Choice  string
	Command string
}

// Controller drives a single session
type Controller struct {
	Ctx       Context
	OpenStore StoreOpener
	Picker    picker.Picker
	Launcher  Launcher

	state State
}

// State returns the last state the controller reached
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) log() *zerolog.Logger {
	if c.Ctx.Log == nil {
		nop := zerolog.Nop()
		c.Ctx.Log = &nop
	}
	return c.Ctx.Log
}

func (c *Controller) transition(s State) {
	c.log().Debug().
		Str("from", c.state.String()).
		Str("to", s.String()).
		Msg("session state")
	c.state = s
}

// Run executes the whole session. Cancellation returns a Result in
// StateCancelled and a nil error. A launch error is returned after the
// usage update, which stays committed.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	ranked, store, err := c.prepare(ctx)
	if err != nil {
		return Result{State: c.state}, err
	}
	defer c.closeStore(store)

	choice, err := c.Picker.Select(ctx, ranking.Keys(ranked))
	if err != nil {
		return Result{State: c.state}, fmt.Errorf("select entry: %w", err)
	}
	c.transition(StatePresented)

	if choice == "" {
		c.transition(StateCancelled)
		return Result{State: StateCancelled}, nil
	}

	entry, ok := ranking.Find(ranked, choice)
	if !ok {
		return Result{State: c.state, Choice: choice}, fmt.Errorf("%w: %q", ErrUnknownChoice, choice)
	}

	count := ranking.NextCount(entry.Count)
	if err := store.Upsert(ctx, entry.Record.DisplayName, count); err != nil {
		return Result{State: c.state, Choice: choice}, fmt.Errorf("%w: record selection: %w", core.ErrStorage, err)
	}
	c.transition(StateUpdated)
	c.log().Debug().
		Str("app", entry.Record.DisplayName).
		Int("count", count).
		Msg("usage updated")

	result := Result{State: StateUpdated, Choice: choice, Command: entry.Record.Command}
	if err := c.Launcher.Launch(ctx, entry.Record); err != nil {
		return result, err
	}
	c.transition(StateLaunched)
	result.State = StateLaunched

	return result, nil
}

// Ranked resolves the catalog and usage and returns the entries in the
// order they would be shown, without presenting them.
func (c *Controller) Ranked(ctx context.Context) ([]core.RankedEntry, error) {
	ranked, store, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}
	c.closeStore(store)
	return ranked, nil
}

func (c *Controller) prepare(ctx context.Context) ([]core.RankedEntry, Store, error) {
	c.state = StateInit
	log := c.log()

	getenv := c.Ctx.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	langs := locale.Resolve(c.Ctx.Locale, getenv)
	c.transition(StateLocalesResolved)
	log.Debug().Strs("languages", langs).Msg("locale resolved")

	store, err := c.OpenStore(ctx, c.Ctx.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %w", core.ErrStorage, c.Ctx.DBPath, err)
	}
	c.transition(StateStoreOpened)

	usage, err := store.LoadAll(ctx)
	if err != nil {
		c.closeStore(store)
		return nil, nil, fmt.Errorf("%w: load usage: %w", core.ErrStorage, err)
	}

	fs := c.Ctx.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	cat := catalog.Build(fs, c.Ctx.SearchDirs, catalog.Options{
		NameKeys:  locale.NameKeys(langs),
		EntryType: c.Ctx.EntryType,
	}, log)
	c.transition(StateDataFetched)

	ranked := ranking.Rank(cat.Records, usage, c.Ctx.EntryType)
	log.Debug().
		Int("files", cat.Files).
		Int("entries", len(ranked)).
		Int("usage", len(usage)).
		Msg("catalog ranked")

	return ranked, store, nil
}

func (c *Controller) closeStore(store Store) {
	if err := store.Close(); err != nil {
		c.log().Warn().Err(err).Msg("close usage store")
	}
}
