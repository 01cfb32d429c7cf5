package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usforever/api/internal/domain/note"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

const selectNoteByID = `SELECT * FROM notes WHERE id = $1`

type NotesRepo struct {
	base
}

func NewNotesRepo(pool *pgxpool.Pool, prom *observability.Prom) *NotesRepo {
	return &NotesRepo{base{pool: pool, prom: prom}}
}

func (r *NotesRepo) List(ctx context.Context) (notes []note.Note, err error) {
	err = r.observe("notes.list", func() error {
		notes, err = selectAll[note.Note](ctx, r.pool, `SELECT * FROM notes ORDER BY created_at DESC, id DESC`)
		return err
	})

	return
}

func (r *NotesRepo) GetByID(ctx context.Context, id int) (n note.Note, found bool, err error) {
	err = r.observe("notes.get_by_id", func() error {
		n, found, err = selectOne[note.Note](ctx, r.pool, selectNoteByID, id)
		return err
	})

	return
}

func (r *NotesRepo) Create(ctx context.Context, in note.Note) (out note.Note, err error) {
	const op = "notes.create"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			var id int

			err := tx.QueryRow(ctx,
				`INSERT INTO notes (title, content) VALUES ($1, $2) RETURNING id`,
				in.Title, in.Content,
			).Scan(&id)

			if err != nil {
				return err
			}

			out, err = reload[note.Note](ctx, tx, op, selectNoteByID, id)
			return err
		})
	})

	return
}

// Update overwrites title and content. created_at is never touched.
func (r *NotesRepo) Update(ctx context.Context, in note.Note) (out note.Note, err error) {
	const op = "notes.update"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			tag, err := tx.Exec(ctx,
				`UPDATE notes SET title = $2, content = $3 WHERE id = $1`,
				in.ID, in.Title, in.Content,
			)

			if err != nil {
				return err
			}

			if tag.RowsAffected() == 0 {
				return repo.NotFound(op)
			}

			out, err = reload[note.Note](ctx, tx, op, selectNoteByID, in.ID)
			return err
		})
	})

	return
}

func (r *NotesRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("notes.delete", func() error {
		removed, err = deleteByID(ctx, r.pool, `DELETE FROM notes WHERE id = $1`, id)
		return err
	})

	return
}
