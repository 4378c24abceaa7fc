package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"time"

	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/fsops"
	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// DB is the usage store with separate read/write pools
type DB struct {
	write *sql.DB
	read  *sql.DB
	path  string
}

// Open opens or creates the usage store at dbPath.
// The parent directory is created when missing.
func Open(ctx context.Context, dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := fsops.EnsureDir(afero.NewOsFs(), dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}

	connStr, err := connString(dbPath)
	if err != nil {
		return nil, err
	}

	// Write pool: MUST be 1 connection only
	write, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open write connection: %w", err)
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxIdleTime(time.Minute)

	read, err := sql.Open("sqlite", connStr)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read connection: %w", err)
	}
	read.SetMaxOpenConns(2)
	read.SetMaxIdleConns(1)
	read.SetConnMaxIdleTime(time.Minute)

	db := &DB{
		write: write,
		read:  read,
		path:  dbPath,
	}

	if err := db.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return db, nil
}

// connString builds a file: URI for dbPath with the store pragmas.
// The path is escaped so ?, # and % stay part of the file name.
func connString(dbPath string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dbPath, err)
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
	}
	return u.String(), nil
}

// Path returns the file backing the store
func (db *DB) Path() string {
	return db.path
}

// Close closes both database connections
func (db *DB) Close() error {
	writeErr := db.write.Close()
	readErr := db.read.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

// initSchema creates the schema if it doesn't exist.
// The prio table layout matches the dmenu.db files of earlier releases.
func (db *DB) initSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS prio (
    count INTEGER NOT NULL DEFAULT 0,
    app TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    description TEXT
);
	`

	if _, err := db.write.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	_, err := db.write.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_migrations (version, description) VALUES (?, ?)`,
		schemaVersion, "usage counters")
	if err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return nil
}

// LoadAll returns a snapshot of all usage entries keyed by lower-cased app name.
// If legacy rows differ only in case, the newest row wins.
func (db *DB) LoadAll(ctx context.Context) (map[string]core.UsageEntry, error) {
	rows, err := db.read.QueryContext(ctx, `SELECT count, app FROM prio ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[string]core.UsageEntry)
	for rows.Next() {
		var entry core.UsageEntry
		if err := rows.Scan(&entry.Count, &entry.App); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		entry.Key = core.UsageKey(entry.App)
		usage[entry.Key] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return usage, nil
}

// List returns all usage entries, most used first
func (db *DB) List(ctx context.Context) ([]core.UsageEntry, error) {
	usage, err := db.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]core.UsageEntry, 0, len(usage))
	for _, entry := range usage {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count < entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})

	return entries, nil
}

// Upsert stores count for app. Rows matching app case-insensitively are
// updated and keep their stored spelling; otherwise a row is inserted.
// The change is committed before Upsert returns.
func (db *DB) Upsert(ctx context.Context, app string, count int) (err error) {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids, err := matchingRows(ctx, tx, app)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		if _, err = tx.ExecContext(ctx, `INSERT INTO prio (count, app) VALUES (?, ?)`, count, app); err != nil {
			return fmt.Errorf("insert usage: %w", err)
		}
	}
	for _, id := range ids {
		if _, err = tx.ExecContext(ctx, `UPDATE prio SET count = ? WHERE rowid = ?`, count, id); err != nil {
			return fmt.Errorf("update usage: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit usage: %w", err)
	}
	return nil
}

// matchingRows returns the rowids whose app equals app ignoring case.
// Case folding happens in Go: SQLite's lower() only folds ASCII.
func matchingRows(ctx context.Context, tx *sql.Tx, app string) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT rowid, app FROM prio`)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	key := core.UsageKey(app)
	var ids []int64
	for rows.Next() {
		var (
			id     int64
			stored string
		)
		if err := rows.Scan(&id, &stored); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		if core.UsageKey(stored) == key {
			ids = append(ids, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, nil
}
