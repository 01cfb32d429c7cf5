package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/usforever/api/internal/repo"
)

// database/sql does not export this one
const errDBClosed = "sql: database is closed"

func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var repoErr *repo.Error
	if errors.As(err, &repoErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrConstraint:
			return repo.Integrity(op, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return repo.Unavailable(op, err)
		}

		return err
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) || err.Error() == errDBClosed {
		return repo.Unavailable(op, err)
	}

	return err
}
