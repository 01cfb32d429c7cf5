package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usforever/api/internal/domain/timeline"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

const selectEntryByID = `SELECT * FROM timeline WHERE id = $1`

type TimelineRepo struct {
	base
}

func NewTimelineRepo(pool *pgxpool.Pool, prom *observability.Prom) *TimelineRepo {
	return &TimelineRepo{base{pool: pool, prom: prom}}
}

func (r *TimelineRepo) List(ctx context.Context) (entries []timeline.Entry, err error) {
	err = r.observe("timeline.list", func() error {
		entries, err = selectAll[timeline.Entry](ctx, r.pool, `SELECT * FROM timeline ORDER BY id ASC`)
		return err
	})

	return
}

func (r *TimelineRepo) GetByID(ctx context.Context, id int) (e timeline.Entry, found bool, err error) {
	err = r.observe("timeline.get_by_id", func() error {
		e, found, err = selectOne[timeline.Entry](ctx, r.pool, selectEntryByID, id)
		return err
	})

	return
}

func (r *TimelineRepo) Create(ctx context.Context, in timeline.Entry) (out timeline.Entry, err error) {
	const op = "timeline.create"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			var id int

			err := tx.QueryRow(ctx,
				`INSERT INTO timeline (date, title, description, img_url, icon)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				in.Date, in.Title, in.Description, in.ImgURL, in.Icon,
			).Scan(&id)

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
		return r.withTx(ctx, func(tx pgx.Tx) error {
			tag, err := tx.Exec(ctx,
				`UPDATE timeline
					SET date = $2,
						title = $3,
						description = $4,
						img_url = $5,
						icon = $6
				WHERE id = $1`,
				in.ID, in.Date, in.Title, in.Description, in.ImgURL, in.Icon,
			)

			if err != nil {
				return err
			}

			if tag.RowsAffected() == 0 {
				return repo.NotFound(op)
			}

			out, err = reload[timeline.Entry](ctx, tx, op, selectEntryByID, in.ID)
			return err
		})
	})

	return
}

func (r *TimelineRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("timeline.delete", func() error {
		removed, err = deleteByID(ctx, r.pool, `DELETE FROM timeline WHERE id = $1`, id)
		return err
	})

	return
}
