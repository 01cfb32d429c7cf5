package repo

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("cannot connect to database")
	ErrIntegrity   = errors.New("data integrity violation")
	ErrNotFound    = errors.New("record not found")
	ErrValidation  = errors.New("validation failed")
)

// Error ties a store failure to the logical operation that produced it.
// It matches both its Kind and its underlying cause with errors.Is.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// DBClass names the failure for the db error metric.
func (e *Error) DBClass() string {
	switch e.Kind {
	case ErrNotFound:
		return "not_found"
	case ErrValidation:
		return "validation"
	case ErrUnavailable:
		return "unavailable"
	case ErrIntegrity:
		return "integrity_violation"
	}

	return ""
}

func Unavailable(op string, err error) error {
	return &Error{Op: op, Kind: ErrUnavailable, Err: err}
}

func Integrity(op string, err error) error {
	return &Error{Op: op, Kind: ErrIntegrity, Err: err}
}

// NotFound is reported when an update touched zero rows or a reload after a
// write found nothing. A plain GetByID miss is not an error.
func NotFound(op string) error {
	return &Error{Op: op, Kind: ErrNotFound}
}

func Validation(op, msg string) error {
	return &Error{Op: op, Kind: ErrValidation, Err: errors.New(msg)}
}

// KindOf returns the taxonomy sentinel carried by err, or nil when err is
// not one of ours.
func KindOf(err error) error {
	for _, kind := range []error{ErrUnavailable, ErrIntegrity, ErrNotFound, ErrValidation} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}
