package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/usforever/api/internal/domain/photo"
	"github.com/usforever/api/internal/observability"
)

const selectPhotoByID = `SELECT * FROM photos WHERE id = ?`

type PhotosRepo struct {
	base
}

func NewPhotosRepo(db *sqlx.DB, prom *observability.Prom) *PhotosRepo {
	return &PhotosRepo{base{db: db, prom: prom}}
}

func (r *PhotosRepo) List(ctx context.Context) (photos []photo.Photo, err error) {
	err = r.observe("photos.list", func() error {
		photos, err = selectAll[photo.Photo](ctx, r.db, `SELECT * FROM photos ORDER BY RANDOM()`)
		return err
	})

	return
}

// ListByCategory compares categories case-insensitively. LOWER only folds ASCII in SQLite.
func (r *PhotosRepo) ListByCategory(ctx context.Context, category string) (photos []photo.Photo, err error) {
	err = r.observe("photos.list_by_category", func() error {
		photos, err = selectAll[photo.Photo](ctx, r.db,
			`SELECT * FROM photos WHERE LOWER(category) = LOWER(?) ORDER BY RANDOM()`,
			category,
		)
		return err
	})

	return
}

func (r *PhotosRepo) GetByID(ctx context.Context, id int) (p photo.Photo, found bool, err error) {
	err = r.observe("photos.get_by_id", func() error {
		p, found, err = selectOne[photo.Photo](ctx, r.db, selectPhotoByID, id)
		return err
	})

	return
}

func (r *PhotosRepo) Create(ctx context.Context, in photo.Photo) (out photo.Photo, err error) {
	const op = "photos.create"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			id, err := insertID(ctx, tx, `INSERT INTO photos (category, img_url) VALUES (?, ?)`, in.Category, in.ImgURL)
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
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			err := updateByID(ctx, tx, op, `UPDATE photos SET category = ?, img_url = ? WHERE id = ?`, in.Category, in.ImgURL, in.ID)
			if err != nil {
				return err
			}

			out, err = reload[photo.Photo](ctx, tx, op, selectPhotoByID, in.ID)
			return err
		})
	})

	return
}

func (r *PhotosRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("photos.delete", func() error {
		removed, err = deleteByID(ctx, r.db, `DELETE FROM photos WHERE id = ?`, id)
		return err
	})

	return
}
