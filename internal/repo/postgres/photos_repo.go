package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usforever/api/internal/domain/photo"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
)

const selectPhotoByID = `SELECT * FROM photos WHERE id = $1`

type PhotosRepo struct {
	base
}

func NewPhotosRepo(pool *pgxpool.Pool, prom *observability.Prom) *PhotosRepo {
	return &PhotosRepo{base{pool: pool, prom: prom}}
}

// List returns every photo in random order; the gallery shuffles on each load.
func (r *PhotosRepo) List(ctx context.Context) (photos []photo.Photo, err error) {
	err = r.observe("photos.list", func() error {
		photos, err = selectAll[photo.Photo](ctx, r.pool, `SELECT * FROM photos ORDER BY RANDOM()`)
		return err
	})

	return
}

// ListByCategory matches the category case-insensitively ("FAMILY" finds "family").
func (r *PhotosRepo) ListByCategory(ctx context.Context, category string) (photos []photo.Photo, err error) {
	err = r.observe("photos.list_by_category", func() error {
		photos, err = selectAll[photo.Photo](ctx, r.pool,
			`SELECT * FROM photos WHERE lower(category) = lower($1) ORDER BY RANDOM()`,
			category,
		)
		return err
	})

	return
}

func (r *PhotosRepo) GetByID(ctx context.Context, id int) (p photo.Photo, found bool, err error) {
	err = r.observe("photos.get_by_id", func() error {
		p, found, err = selectOne[photo.Photo](ctx, r.pool, selectPhotoByID, id)
		return err
	})

	return
}

func (r *PhotosRepo) Create(ctx context.Context, in photo.Photo) (out photo.Photo, err error) {
	const op = "photos.create"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			var id int

			err := tx.QueryRow(ctx,
				`INSERT INTO photos (category, img_url) VALUES ($1, $2) RETURNING id`,
				in.Category, in.ImgURL,
			).Scan(&id)

			if err != nil {
				return err
			}

			out, err = reload[photo.Photo](ctx, tx, op, selectPhotoByID, id)
			return err
		})
	})

	return
}

func (r *PhotosRepo) Update(ctx context.Context, in photo.Photo) (out photo.Photo, err error) {
	const op = "photos.update"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			tag, err := tx.Exec(ctx,
				`UPDATE photos SET category = $2, img_url = $3 WHERE id = $1`,
				in.ID, in.Category, in.ImgURL,
			)

			if err != nil {
				return err
			}

			if tag.RowsAffected() == 0 {
				return repo.NotFound(op)
			}

			out, err = reload[photo.Photo](ctx, tx, op, selectPhotoByID, in.ID)
			return err
		})
	})

	return
}

func (r *PhotosRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("photos.delete", func() error {
		removed, err = deleteByID(ctx, r.pool, `DELETE FROM photos WHERE id = $1`, id)
		return err
	})

	return
}
