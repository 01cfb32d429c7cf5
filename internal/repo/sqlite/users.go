package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/usforever/api/internal/domain/user"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/security"
)

const selectUserByID = `SELECT * FROM users WHERE id = ?`

type UsersRepo struct {
	base
}

func NewUsersRepo(db *sqlx.DB, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{base{db: db, prom: prom}}
}

func (r *UsersRepo) List(ctx context.Context) (users []user.User, err error) {
	err = r.observe("users.list", func() error {
		users, err = selectAll[user.User](ctx, r.db, `SELECT * FROM users ORDER BY id ASC`)
		return err
	})

	return
}

func (r *UsersRepo) GetByID(ctx context.Context, id int) (u user.User, found bool, err error) {
	err = r.observe("users.get_by_id", func() error {
		u, found, err = selectOne[user.User](ctx, r.db, selectUserByID, id)
		return err
	})

	return
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (u user.User, found bool, err error) {
	err = r.observe("users.get_by_email", func() error {
		u, found, err = selectOne[user.User](ctx, r.db, `SELECT * FROM users WHERE email = ?`, email)
		return err
	})

	return
}

func (r *UsersRepo) Create(ctx context.Context, in user.User) (out user.User, err error) {
	const op = "users.create"

	hash, err := security.HashNewPassword(op, in.Password)
	if err != nil {
		return user.User{}, err
	}

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			id, err := insertID(ctx, tx,
				`INSERT INTO users (name, display_name, email, password_hash, role) VALUES (?, ?, ?, ?, ?)`,
				in.Name, in.DisplayName, in.Email, hash, in.Role,
			)
			if err != nil {
				return err
			}

			out, err = reload[user.User](ctx, tx, op, selectUserByID, id)
			return err
		})
	})

	return
}

func (r *UsersRepo) Update(ctx context.Context, in user.User) (out user.User, err error) {
	const op = "users.update"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx *sqlx.Tx) error {
			err := updateByID(ctx, tx, op,
				`UPDATE users SET name = ?, display_name = ?, email = ?, role = ? WHERE id = ?`,
				in.Name, in.DisplayName, in.Email, in.Role, in.ID,
			)
			if err != nil {
				return err
			}

			out, err = reload[user.User](ctx, tx, op, selectUserByID, in.ID)
			return err
		})
	})

	return
}

func (r *UsersRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("users.delete", func() error {
		removed, err = deleteByID(ctx, r.db, `DELETE FROM users WHERE id = ?`, id)
		return err
	})

	return
}
