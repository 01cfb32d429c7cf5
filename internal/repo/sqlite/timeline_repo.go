package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/usforever/api/internal/domain/timeline"
	"github.com/usforever/api/internal/observability"
)

const selectEntryByID = `SELECT * FROM timeline WHERE id = ?`

type TimelineRepo struct {
	base
}

func NewTimelineRepo(db *sqlx.DB, prom *observability.Prom) *TimelineRepo {
	return &TimelineRepo{base{db: db, prom: prom}}
}

func (r *TimelineRepo) List(ctx context.Context) (entries []timeline.Entry, err error) {
	err = r.observe("timeline.list", func() error {
		entries, err = selectAll[timeline.Entry](ctx, r.db, `SELECT * FROM timeline ORDER BY id ASC`)
		return err
	})

	return
}

func (r *TimelineRepo) GetByID(ctx context.Context, id int) (e timeline.Entry, found bool, err error) {
	err = r.observe("timeline.get_by_id", func() error {
		e, found, err = selectOne[timeline.Entry](ctx, r.db, selectEntryByID, id)
		return err
	})

	return
}

func (r *TimelineRepo) Create(ctx context.Context, in timeline.Entry) (out timeline.Entry, err error) {
	const op = "timeline.create"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			id, err := insertID(ctx, tx,
				`INSERT INTO timeline (date, title, description, img_url, icon) VALUES (?, ?, ?, ?, ?)`,
				in.Date, in.Title, in.Description, in.ImgURL, in.Icon,
			)
			if err != nil {
				return err
			}

			out, err = reload[timeline.Entry](ctx, tx, op, selectEntryByID, id)
			return err
		})
	})

	return
}

func (r *TimelineRepo) Update(ctx context.Context, in timeline.Entry) (out timeline.Entry, err error) {
	const op = "timeline.update"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			err := updateByID(ctx, tx, op,
				`UPDATE timeline SET date = ?, title = ?, description = ?, img_url = ?, icon = ? WHERE id = ?`,
				in.Date, in.Title, in.Description, in.ImgURL, in.Icon, in.ID,
			)
			if err != nil {
				return err
			}

			out, err = reload[timeline.Entry](ctx, tx, op, selectEntryByID, in.ID)
			return err
		})
	})

	return
}

func (r *TimelineRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("timeline.delete", func() error {
		removed, err = deleteByID(ctx, r.db, `DELETE FROM timeline WHERE id = ?`, id)
		return err
	})

	return
}
