package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

type base struct {
	db   *sqlx.DB
	prom *observability.Prom
}

func (b base) observe(op string, fn func() error) error {
	run := func() error {
		return classify(op, fn())
	}

	if b.prom != nil {
		return b.prom.ObserveDB(op, run)
	}

	return run()
}

// withTx keeps a write and its reload in one transaction.
func (b base) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return
	}

	defer func() {
		_ = tx.Rollback()
	}()

	err = fn(tx)

	if err != nil {
		return
	}

	err = tx.Commit()

	return
}

// sqlx maps columns to fields by db tag, so SELECT * column order is irrelevant.
func selectAll[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]T, error) {
	out := []T{}

	if err := sqlx.SelectContext(ctx, q, &out, query, args...); err != nil {
		return nil, err
	}

	return out, nil
}

func selectOne[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (T, bool, error) {
	var v T

	err := sqlx.GetContext(ctx, q, &v, query, args...)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, false, nil
		}

		return v, false, err
	}

	return v, true, nil
}

func reload[T any](ctx context.Context, q sqlx.QueryerContext, op, query string, id int) (T, error) {
	v, found, err := selectOne[T](ctx, q, query, id)

	if err != nil {
		return v, err
	}

	if !found {
		return v, repo.NotFound(op)
	}

	return v, nil
}

func insertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// updateByID runs an UPDATE and reports zero matched rows as not found.
func updateByID(ctx context.Context, tx *sqlx.Tx, op, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return repo.NotFound(op)
	}

	return nil
}

func deleteByID(ctx context.Context, db sqlx.ExecerContext, query string, id int) (int64, error) {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
