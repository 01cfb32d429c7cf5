package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usforever/api/internal/domain/user"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
	"github.com/usforever/api/internal/security"
)

const selectUserByID = `SELECT * FROM users WHERE id = $1`

type UsersRepo struct {
	base
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{base{pool: pool, prom: prom}}
}

func (r *UsersRepo) List(ctx context.Context) (users []user.User, err error) {
	err = r.observe("users.list", func() error {
		users, err = selectAll[user.User](ctx, r.pool, `SELECT * FROM users ORDER BY id ASC`)
		return err
	})

	return
}

func (r *UsersRepo) GetByID(ctx context.Context, id int) (u user.User, found bool, err error) {
	err = r.observe("users.get_by_id", func() error {
		u, found, err = selectOne[user.User](ctx, r.pool, selectUserByID, id)
		return err
	})

	return
}

// GetByEmail looks a user up for login. An empty email is simply a miss.
func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (u user.User, found bool, err error) {
	err = r.observe("users.get_by_email", func() error {
		u, found, err = selectOne[user.User](ctx, r.pool, `SELECT * FROM users WHERE email = $1`, email)
		return err
	})

	return
}

// Create hashes in.Password before it reaches the database. A nil password
// is rejected without touching storage.
func (r *UsersRepo) Create(ctx context.Context, in user.User) (out user.User, err error) {
	const op = "users.create"

	hash, err := security.HashNewPassword(op, in.Password)
	if err != nil {
		return user.User{}, err
	}

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			var id int

			err := tx.QueryRow(ctx,
				`INSERT INTO users (name, display_name, email, password_hash, role)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				in.Name, in.DisplayName, in.Email, hash, in.Role,
			).Scan(&id)

			if err != nil {
				return err
			}

			out, err = reload[user.User](ctx, tx, op, selectUserByID, id)
			return err
		})
	})

	return
}

// Update overwrites the profile fields. The password hash is left alone.
func (r *UsersRepo) Update(ctx context.Context, in user.User) (out user.User, err error) {
	const op = "users.update"

	err = r.observe(op, func() error {
		return r.withTx(ctx, func(tx pgx.Tx) error {
			tag, err := tx.Exec(ctx,
				`UPDATE users
					SET name = $2,
						display_name = $3,
						email = $4,
						role = $5
				WHERE id = $1`,
				in.ID, in.Name, in.DisplayName, in.Email, in.Role,
			)

			if err != nil {
				return err
			}

			if tag.RowsAffected() == 0 {
				return repo.NotFound(op)
			}

			out, err = reload[user.User](ctx, tx, op, selectUserByID, in.ID)
			return err
		})
	})

	return
}

func (r *UsersRepo) Delete(ctx context.Context, id int) (removed int64, err error) {
	err = r.observe("users.delete", func() error {
		removed, err = deleteByID(ctx, r.pool, `DELETE FROM users WHERE id = $1`, id)
		return err
	})

	return
}
