package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type base struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// observe classifies the error returned by fn and records the logical op
// when metrics are enabled.
func (b base) observe(op string, fn func() error) error {
	run := func() error {
		return classify(op, fn())
	}

	if b.prom != nil {
		return b.prom.ObserveDB(op, run)
	}

	return run()
}

// withTx runs fn inside a transaction and commits when fn succeeds.
// The write and the reload-by-id of Create/Update share one transaction so a
// concurrent delete of the same row cannot slip in between them.
func (b base) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := b.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = fn(tx)

	if err != nil {
		return
	}

	err = tx.Commit(ctx)

	return
}

// rows are mapped by column name through the db tags, so the column order of
// SELECT * does not matter.
func selectAll[T any](ctx context.Context, q querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func selectOne[T any](ctx context.Context, q querier, sql string, args ...any) (T, bool, error) {
	var zero T

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, false, err
	}

	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, false, nil
		}

		return zero, false, err
	}

	return v, true, nil
}

// reload fetches the row a write just touched. A missing row means it was
// removed underneath us and is reported as not found, never as an empty record.
func reload[T any](ctx context.Context, q querier, op, sql string, id int) (T, error) {
	v, found, err := selectOne[T](ctx, q, sql, id)

	if err != nil {
		return v, err
	}

	if !found {
		return v, repo.NotFound(op)
	}

	return v, nil
}

func deleteByID(ctx context.Context, q querier, sql string, id int) (int64, error) {
	tag, err := q.Exec(ctx, sql, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
