package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	"github.com/usforever/api/internal/repo"
)

// classify maps a pgx failure onto the repo taxonomy. Errors it does not
// recognise are returned untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var repoErr *repo.Error
	if errors.As(err, &repoErr) {
		return err
	}

	// caller gave up; that says nothing about the database
	if errors.Is(err, context.Canceled) {
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || errors.Is(err, puddle.ErrClosedPool) {
		return repo.Unavailable(op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			// integrity_constraint_violation class: unique, not null, fk, check
			return repo.Integrity(op, err)
		case strings.HasPrefix(pgErr.Code, "08"):
			return repo.Unavailable(op, err)
		case pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03", pgErr.Code == "53300":
			// admin/crash shutdown, cannot connect now, too many connections
			return repo.Unavailable(op, err)
		}

		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return repo.Unavailable(op, err)
	}

	return err
}
