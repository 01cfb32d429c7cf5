// Package repo defines the persistence contracts shared by every storage
// backend and the failure taxonomy their operations report.
package repo

import (
	"context"

	"github.com/usforever/api/internal/domain/note"
	"github.com/usforever/api/internal/domain/photo"
	"github.com/usforever/api/internal/domain/timeline"
	"github.com/usforever/api/internal/domain/user"
)

// Store is the capability set every entity store provides.
//
// GetByID reports a plain miss with found == false and a nil error.
// Create and Update return the record as reloaded from storage, not the input.
// Delete returns the number of rows removed; a missing id is 0, not an error.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (T, bool, error)
	Create(ctx context.Context, in T) (T, error)
	Update(ctx context.Context, in T) (T, error)
	Delete(ctx context.Context, id int) (int64, error)
}

// NoteStore lists notes newest first.
type NoteStore interface {
	Store[note.Note]
}

// PhotoStore lists photos in random order.
type PhotoStore interface {
	Store[photo.Photo]
	ListByCategory(ctx context.Context, category string) ([]photo.Photo, error)
}

type TimelineStore interface {
	Store[timeline.Entry]
}

// UserStore hashes User.Password on Create and lists users by ascending id.
type UserStore interface {
	Store[user.User]
	GetByEmail(ctx context.Context, email string) (user.User, bool, error)
}

// Stores holds one store per entity. It is built once at startup by a
// backend constructor and handed to whatever needs it.
type Stores struct {
	Notes    NoteStore
	Photos   PhotoStore
	Timeline TimelineStore
	Users    UserStore
}
