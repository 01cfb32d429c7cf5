package sqlite_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usforever/api/internal/domain/note"
	"github.com/usforever/api/internal/domain/photo"
	"github.com/usforever/api/internal/domain/timeline"
	"github.com/usforever/api/internal/domain/user"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/repo"
	"github.com/usforever/api/internal/repo/sqlite"
	"github.com/usforever/api/internal/security"
)

func openStores(t *testing.T) (*sqlx.DB, repo.Stores) {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db, sqlite.NewStores(db, nil)
}

func strPtr(s string) *string { return &s }

func TestNotes_CreateGetListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	first, err := stores.Notes.Create(ctx, note.Note{Title: "first", Content: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	require.NotNil(t, first.CreatedAt)

	second, err := stores.Notes.Create(ctx, note.Note{Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "", second.Content)

	got, found, err := stores.Notes.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first, got)

	list, err := stores.Notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	updated, err := stores.Notes.Update(ctx, note.Note{ID: first.ID, Title: "first v2", Content: "b"})
	require.NoError(t, err)
	assert.Equal(t, "first v2", updated.Title)
	assert.Equal(t, "b", updated.Content)
	require.NotNil(t, updated.CreatedAt)
	assert.True(t, first.CreatedAt.Equal(*updated.CreatedAt), "created_at is never rewritten")

	removed, err := stores.Notes.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = stores.Notes.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	_, found, err = stores.Notes.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStores_EmptyListsAreNotNil(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	notes, err := stores.Notes.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	photos, err := stores.Photos.ListByCategory(ctx, "nature")
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)

	entries, err := stores.Timeline.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, entries)

	users, err := stores.Users.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
}

func TestUpdate_MissingIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	_, err := stores.Notes.Update(ctx, note.Note{ID: 42, Title: "ghost"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = stores.Photos.Update(ctx, photo.Photo{ID: 42, Category: "x", ImgURL: "y"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = stores.Timeline.Update(ctx, timeline.Entry{ID: 42})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = stores.Users.Update(ctx, user.User{ID: 42, Name: "n", DisplayName: "d", Email: "e@x.io", Role: user.RoleUser})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPhotos_CreateAndFilterByCategory(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	created, err := stores.Photos.Create(ctx, photo.Photo{Category: "Nature", ImgURL: "http://x/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, photo.Photo{ID: 1, Category: "Nature", ImgURL: "http://x/1.jpg"}, created)

	_, err = stores.Photos.Create(ctx, photo.Photo{Category: "city", ImgURL: "http://x/2.jpg"})
	require.NoError(t, err)
	_, err = stores.Photos.Create(ctx, photo.Photo{Category: "nature", ImgURL: "http://x/3.jpg"})
	require.NoError(t, err)

	nature, err := stores.Photos.ListByCategory(ctx, "NATURE")
	require.NoError(t, err)
	require.Len(t, nature, 2)

	ids := []int{nature[0].ID, nature[1].ID}
	assert.ElementsMatch(t, []int{1, 3}, ids)

	partial, err := stores.Photos.ListByCategory(ctx, "nat")
	require.NoError(t, err)
	assert.Empty(t, partial, "category match is exact, not a prefix")

	all, err := stores.Photos.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTimeline_ListsByAscendingID(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	for _, title := range []string{"met", "engaged", "married"} {
		_, err := stores.Timeline.Create(ctx, timeline.Entry{Date: "2019", Title: title})
		require.NoError(t, err)
	}

	entries, err := stores.Timeline.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, i+1, e.ID)
	}
	assert.Equal(t, "married", entries[2].Title)

	updated, err := stores.Timeline.Update(ctx, timeline.Entry{ID: 2, Date: "June 2020", Title: "engaged!", Icon: "ring"})
	require.NoError(t, err)
	assert.Equal(t, timeline.Entry{ID: 2, Date: "June 2020", Title: "engaged!", Icon: "ring"}, updated)
}

func TestUsers_CreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	created, err := stores.Users.Create(ctx, user.User{
		Name:        "alex",
		DisplayName: "Alex",
		Email:       "alex@example.com",
		Role:        user.RoleAdmin,
		Password:    strPtr("correct horse"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Nil(t, created.Password)
	assert.NotEqual(t, "correct horse", created.PasswordHash)
	require.NoError(t, security.CheckPassword(created.PasswordHash, "correct horse"))

	byEmail, found, err := stores.Users.GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, byEmail)

	_, found, err = stores.Users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	raw, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), created.PasswordHash)
}

func TestUsers_UpdateKeepsPasswordHash(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	created, err := stores.Users.Create(ctx, user.User{
		Name: "sam", DisplayName: "Sam", Email: "sam@example.com", Role: user.RoleUser, Password: strPtr("password1"),
	})
	require.NoError(t, err)

	updated, err := stores.Users.Update(ctx, user.User{
		ID: created.ID, Name: "sam", DisplayName: "Samantha", Email: "sam@example.com", Role: user.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Samantha", updated.DisplayName)
	assert.Equal(t, user.RoleAdmin, updated.Role)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestUsers_MissingPasswordIsValidation(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	_, err := stores.Users.Create(ctx, user.User{Name: "n", DisplayName: "d", Email: "n@example.com", Role: user.RoleUser})
	assert.ErrorIs(t, err, repo.ErrValidation)

	_, err = stores.Users.Create(ctx, user.User{
		Name: "n", DisplayName: "d", Email: "n@example.com", Role: user.RoleUser, Password: strPtr(strings.Repeat("x", 73)),
	})
	assert.ErrorIs(t, err, repo.ErrValidation)

	users, err := stores.Users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "nothing is written when the password is rejected")
}

func TestUsers_DuplicateEmailIsIntegrity(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	in := user.User{Name: "a", DisplayName: "A", Email: "dup@example.com", Role: user.RoleUser, Password: strPtr("password1")}

	_, err := stores.Users.Create(ctx, in)
	require.NoError(t, err)

	_, err = stores.Users.Create(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.ErrIntegrity)

	var repoErr *repo.Error
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "users.create", repoErr.Op)
}

func TestStores_ClosedDatabaseIsUnavailable(t *testing.T) {
	ctx := context.Background()
	db, stores := openStores(t)

	require.NoError(t, db.Close())

	_, err := stores.Notes.List(ctx)
	assert.ErrorIs(t, err, repo.ErrUnavailable)

	_, _, err = stores.Photos.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrUnavailable)

	_, err = stores.Timeline.Create(ctx, timeline.Entry{Title: "x"})
	assert.ErrorIs(t, err, repo.ErrUnavailable)

	_, err = stores.Users.Delete(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrUnavailable)
}

func TestNotes_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	const n = 16

	var wg sync.WaitGroup
	ids := make(chan int, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			created, err := stores.Notes.Create(ctx, note.Note{Title: "concurrent"})
			if err != nil {
				errs <- err
				return
			}
			ids <- created.ID
		}()
	}

	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestStores_RecordMetricsPerOperation(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	prom := observability.NewProm(prometheus.NewRegistry())
	stores := sqlite.NewStores(db, prom)

	_, err = stores.Notes.Update(ctx, note.Note{ID: 7, Title: "missing"})
	require.ErrorIs(t, err, repo.ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(prom.DbErrorsTotal.WithLabelValues("notes.update", "not_found")))
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)

	_, err = sqlite.NewStores(db, nil).Notes.Create(ctx, note.Note{Title: "kept"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	notes, err := sqlite.NewStores(db, nil).Notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "kept", notes[0].Title)
}

func TestPhotos_FamilyExample(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	created, err := stores.Photos.Create(ctx, photo.Photo{Category: "family", ImgURL: "http://x/1.jpg"})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	family, err := stores.Photos.ListByCategory(ctx, "FAMILY")
	require.NoError(t, err)
	require.Len(t, family, 1)
	assert.Equal(t, created, family[0])

	removed, err := stores.Photos.Delete(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, found, err := stores.Photos.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNotes_NullCreatedAtIsAbsent(t *testing.T) {
	ctx := context.Background()
	db, stores := openStores(t)

	_, err := db.ExecContext(ctx, `INSERT INTO notes (title, content, created_at) VALUES ('x', 'y', NULL)`)
	require.NoError(t, err)

	got, found, err := stores.Notes.GetByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, got.CreatedAt)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "createdAt")

	notes, err := stores.Notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Nil(t, notes[0].CreatedAt)
}

func TestUsers_EmptyEmailIsPlainMiss(t *testing.T) {
	ctx := context.Background()
	_, stores := openStores(t)

	_, err := stores.Users.Create(ctx, user.User{
		Name: "a", DisplayName: "A", Email: "a@example.com", Role: user.RoleUser, Password: strPtr("password1"),
	})
	require.NoError(t, err)

	got, found, err := stores.Users.GetByEmail(ctx, "")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, user.User{}, got)
}
