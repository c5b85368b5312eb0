package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/minehint/internal/timeutil"
)

// DB wraps the sqlite handle that stores parsing sessions and their fields.
type DB struct {
	*sql.DB
	path  string
	clock timeutil.Clock
}

// OpenDB opens the sqlite database at path and applies connection pragmas.
// It does not touch the schema; use NewDB for a ready-to-use store.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection keeps ":memory:"
	// databases from splitting across connections.
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return &DB{DB: sqlDB, path: path, clock: timeutil.RealClock{}}, nil
}

// NewDB opens path and migrates it to the latest schema.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	fsys, err := MigrationsFS()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := db.MigrateUp(fsys); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SetClock replaces the time source used for session timestamps.
func (db *DB) SetClock(c timeutil.Clock) { db.clock = c }

// Path returns the filename the database was opened with.
func (db *DB) Path() string { return db.path }
