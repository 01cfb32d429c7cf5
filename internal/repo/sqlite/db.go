// Package sqlite implements the repo stores on an embedded SQLite file
// through sqlx. It serves single-node deployments and the store tests.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS photos (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	img_url  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS timeline (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	date        TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	img_url     TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	display_name  TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL
);
`

// Open connects to the database file at path, creating it and the tables
// when they do not exist yet.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(2)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return db, nil
}

func NewStores(db *sqlx.DB, prom *observability.Prom) repo.Stores {
	return repo.Stores{
		Notes:    NewNotesRepo(db, prom),
		Photos:   NewPhotosRepo(db, prom),
		Timeline: NewTimelineRepo(db, prom),
		Users:    NewUsersRepo(db, prom),
	}
}
