package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/usforever/api/internal/domain/note"
	"github.com/usforever/api/internal/observability"
)

const selectNoteByID = `SELECT * FROM notes WHERE id = ?`

type NotesRepo struct {
	base
}

func NewNotesRepo(db *sqlx.DB, prom *observability.Prom) *NotesRepo {
	return &NotesRepo{base{db: db, prom: prom}}
}

func (r *NotesRepo) List(ctx context.Context) (notes []note.Note, err error) {
	err = r.observe("notes.list", func() error {
		notes, err = selectAll[note.Note](ctx, r.db, `SELECT * FROM notes ORDER BY created_at DESC, id DESC`)
		return err
	})

	return
}

func (r *NotesRepo) GetByID(ctx context.Context, id int) (n note.Note, found bool, err error) {
	err = r.observe("notes.get_by_id", func() error {
		n, found, err = selectOne[note.Note](ctx, r.db, selectNoteByID, id)
		return err
	})

	return
}

func (r *NotesRepo) Create(ctx context.Context, in note.Note) (out note.Note, err error) {
	const op = "notes.create"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			id, err := insertID(ctx, tx, `INSERT INTO notes (title, content) VALUES (?, ?)`, in.Title, in.Content)
			if err != nil {
				return err
			}

			out, err = reload[note.Note](ctx, tx, op, selectNoteByID, id)
			return err
		})
	})

	return
}

func (r *NotesRepo) Update(ctx context.Context, in note.Note) (out note.Note, err error) {
	const op = "notes.update"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			err := updateByID(ctx, tx, op, `UPDATE notes SET title = ?, content = ? WHERE id = ?`, in.Title, in.Content, in.ID)
			if err != nil {
				return err
			}

			out, err = reload[note.Note](ctx, tx, op, selectNoteByID, in.ID)
			return err
		})
	})

	return
}

func (r *NotesRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("notes.delete", func() error {
		removed, err = deleteByID(ctx, r.db, `DELETE FROM notes WHERE id = ?`, id)
		return err
	})

	return
}
