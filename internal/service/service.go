// Package service exposes the stores to the HTTP layer. Each service is a
// thin pass-through; the stores own the persistence rules.
package service

import (
	"context"
	"errors"

	"github.com/usforever/api/internal/domain/note"
	"github.com/usforever/api/internal/domain/photo"
	"github.com/usforever/api/internal/domain/timeline"
	"github.com/usforever/api/internal/domain/user"
	"github.com/usforever/api/internal/repo"
	"github.com/usforever/api/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Services struct {
	Notes    *NoteService
	Photos   *PhotoService
	Timeline *TimelineService
	Users    *UserService
}

func New(stores repo.Stores) Services {
	return Services{
		Notes:    NewNoteService(stores.Notes),
		Photos:   NewPhotoService(stores.Photos),
		Timeline: NewTimelineService(stores.Timeline),
		Users:    NewUserService(stores.Users),
	}
}

type NoteService struct {
	store repo.NoteStore
}

func NewNoteService(store repo.NoteStore) *NoteService {
	return &NoteService{store: store}
}

func (s *NoteService) List(ctx context.Context) ([]note.Note, error) {
	return s.store.List(ctx)
}

func (s *NoteService) GetByID(ctx context.Context, id int) (note.Note, bool, error) {
	return s.store.GetByID(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, in note.Note) (note.Note, error) {
	return s.store.Create(ctx, in)
}

func (s *NoteService) Update(ctx context.Context, in note.Note) (note.Note, error) {
	return s.store.Update(ctx, in)
}

func (s *NoteService) Delete(ctx context.Context, id int) (int64, error) {
	return s.store.Delete(ctx, id)
}

type PhotoService struct {
	store repo.PhotoStore
}

func NewPhotoService(store repo.PhotoStore) *PhotoService {
	return &PhotoService{store: store}
}

func (s *PhotoService) List(ctx context.Context) ([]photo.Photo, error) {
	return s.store.List(ctx)
}

func (s *PhotoService) ListByCategory(ctx context.Context, category string) ([]photo.Photo, error) {
	return s.store.ListByCategory(ctx, category)
}

func (s *PhotoService) GetByID(ctx context.Context, id int) (photo.Photo, bool, error) {
	return s.store.GetByID(ctx, id)
}

func (s *PhotoService) Create(ctx context.Context, in photo.Photo) (photo.Photo, error) {
	return s.store.Create(ctx, in)
}

func (s *PhotoService) Update(ctx context.Context, in photo.Photo) (photo.Photo, error) {
	return s.store.Update(ctx, in)
}

func (s *PhotoService) Delete(ctx context.Context, id int) (int64, error) {
	return s.store.Delete(ctx, id)
}

type TimelineService struct {
	store repo.TimelineStore
}

func NewTimelineService(store repo.TimelineStore) *TimelineService {
	return &TimelineService{store: store}
}

func (s *TimelineService) List(ctx context.Context) ([]timeline.Entry, error) {
	return s.store.List(ctx)
}

func (s *TimelineService) GetByID(ctx context.Context, id int) (timeline.Entry, bool, error) {
	return s.store.GetByID(ctx, id)
}

func (s *TimelineService) Create(ctx context.Context, in timeline.Entry) (timeline.Entry, error) {
	return s.store.Create(ctx, in)
}

func (s *TimelineService) Update(ctx context.Context, in timeline.Entry) (timeline.Entry, error) {
	return s.store.Update(ctx, in)
}

func (s *TimelineService) Delete(ctx context.Context, id int) (int64, error) {
	return s.store.Delete(ctx, id)
}

type UserService struct {
	store repo.UserStore
}

func NewUserService(store repo.UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetByID(ctx context.Context, id int) (user.User, bool, error) {
	return s.store.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return s.store.GetByEmail(ctx, email)
}

// Register stores a new user. The store hashes in.Password.
func (s *UserService) Register(ctx context.Context, in user.User) (user.User, error) {
	return s.store.Create(ctx, in)
}

// Update overwrites the profile fields. An empty in.Role keeps the stored role.
func (s *UserService) Update(ctx context.Context, in user.User) (user.User, error) {
	if in.Role == "" {
		current, found, err := s.store.GetByID(ctx, in.ID)
		if err != nil {
			return user.User{}, err
		}

		if !found {
			return user.User{}, repo.NotFound("users.update")
		}

		in.Role = current.Role
	}

	return s.store.Update(ctx, in)
}

func (s *UserService) Delete(ctx context.Context, id int) (int64, error) {
	return s.store.Delete(ctx, id)
}

// Authenticate looks the user up by email and checks the password against
// the stored hash. An unknown email and a wrong password fail the same way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	u, found, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}

	if !found {
		return user.User{}, ErrInvalidCredentials
	}

	if err := security.CheckPassword(u.PasswordHash, password); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}
