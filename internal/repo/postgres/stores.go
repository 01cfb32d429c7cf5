package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

// Schema is the DDL the stores expect. It only creates what is missing and
// carries no versioning.
const Schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         SERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS photos (
	id       SERIAL PRIMARY KEY,
	category TEXT NOT NULL,
	img_url  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS timeline (
	id          SERIAL PRIMARY KEY,
	date        TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	img_url     TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	display_name  TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL
);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}

func NewStores(pool *pgxpool.Pool, prom *observability.Prom) repo.Stores {
	return repo.Stores{
		Notes:    NewNotesRepo(pool, prom),
		Photos:   NewPhotosRepo(pool, prom),
		Timeline: NewTimelineRepo(pool, prom),
		Users:    NewUsersRepo(pool, prom),
	}
}
