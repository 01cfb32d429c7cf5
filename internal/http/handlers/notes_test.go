package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/domain/note"
	"github.com/usforever/api/internal/http/handlers"
	"github.com/usforever/api/internal/repo"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

type fakeNotesService struct {
	listFn   func(ctx context.Context) ([]note.Note, error)
	getFn    func(ctx context.Context, id int) (note.Note, bool, error)
	createFn func(ctx context.Context, in note.Note) (note.Note, error)
	updateFn func(ctx context.Context, in note.Note) (note.Note, error)
	deleteFn func(ctx context.Context, id int) (int64, error)
}

func (f *fakeNotesService) List(ctx context.Context) ([]note.Note, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []note.Note{}, nil
}

func (f *fakeNotesService) GetByID(ctx context.Context, id int) (note.Note, bool, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return note.Note{}, false, nil
}

func (f *fakeNotesService) Create(ctx context.Context, in note.Note) (note.Note, error) {
	if f.createFn != nil {
		return f.createFn(ctx, in)
	}
	return in, nil
}

func (f *fakeNotesService) Update(ctx context.Context, in note.Note) (note.Note, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, in)
	}
	return in, nil
}

func (f *fakeNotesService) Delete(ctx context.Context, id int) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 0, nil
}

// small helper which mounts one handler per test
func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

type errorEnvelope struct {
	Error handlers.APIError `json:"error"`
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var env errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode error body: %v body=%s", err, w.Body.String())
	}

	return env.Error.Code
}

func TestCreateNoteHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeNotesService)
		wantStatusCode int
		wantCode       string
	}{
		{
			name: "success",
			body: `{"title":"first date","content":"pizza"}`,
			repoSetUp: func(f *fakeNotesService) {
				f.createFn = func(ctx context.Context, in note.Note) (note.Note, error) {
					in.ID = 1
					in.CreatedAt = &now
					return in, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "validation_error",
			body: `{"title": ""}`,
			repoSetUp: func(f *fakeNotesService) {
				// invalid payloads never reach the store
				f.createFn = func(ctx context.Context, in note.Note) (note.Note, error) {
					return note.Note{}, errors.New("unexpected store call")
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_request",
		},
		{
			name: "integrity_error",
			body: `{"title":"dup"}`,
			repoSetUp: func(f *fakeNotesService) {
				f.createFn = func(ctx context.Context, in note.Note) (note.Note, error) {
					return note.Note{}, repo.Integrity("notes.create", errors.New("constraint failed"))
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_request",
		},
		{
			name: "store_unavailable",
			body: `{"title":"x"}`,
			repoSetUp: func(f *fakeNotesService) {
				f.createFn = func(ctx context.Context, in note.Note) (note.Note, error) {
					return note.Note{}, repo.Unavailable("notes.create", errors.New("connection refused"))
				}
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantCode:       "unavailable",
		},
		{
			name: "unclassified_error",
			body: `{"title":"x"}`,
			repoSetUp: func(f *fakeNotesService) {
				f.createFn = func(ctx context.Context, in note.Note) (note.Note, error) {
					return note.Note{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
			wantCode:       "internal_error",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeNotesService{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(fake)
			}

			h := handlers.NewNotesHandler(fake)

			r := setupRouter(http.MethodPost, "/api/notes", h.CreateNote)

			req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantCode != "" {
				if got := decodeErrorCode(t, w); got != tt.wantCode {
					t.Fatalf("got code %q, want %q", got, tt.wantCode)
				}
			}
		})
	}
}

func TestGetNoteByIDHandler(t *testing.T) {
	stored := note.Note{ID: 3, Title: "anniversary", Content: "dinner"}

	tests := []struct {
		name           string
		url            string
		wantStatusCode int
	}{
		{name: "found", url: "/api/notes/3", wantStatusCode: http.StatusOK},
		{name: "missing", url: "/api/notes/4", wantStatusCode: http.StatusNotFound},
		{name: "bad_id", url: "/api/notes/abc", wantStatusCode: http.StatusBadRequest},
		{name: "non_positive_id", url: "/api/notes/0", wantStatusCode: http.StatusBadRequest},
	}

	fake := &fakeNotesService{
		getFn: func(ctx context.Context, id int) (note.Note, bool, error) {
			if id == stored.ID {
				return stored, true, nil
			}
			return note.Note{}, false, nil
		},
	}

	h := handlers.NewNotesHandler(fake)
	r := setupRouter(http.MethodGet, "/api/notes/:id", h.GetNoteByID)

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetNoteByIDHandler_ETag(t *testing.T) {
	fake := &fakeNotesService{
		getFn: func(ctx context.Context, id int) (note.Note, bool, error) {
			return note.Note{ID: id, Title: "t"}, true, nil
		},
	}

	h := handlers.NewNotesHandler(fake)
	r := setupRouter(http.MethodGet, "/api/notes/:id", h.GetNoteByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/1", nil))

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected an ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
	req.Header.Set("If-None-Match", etag)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("got status %d, want 304", w.Code)
	}
}

func TestListNotesHandler(t *testing.T) {
	fake := &fakeNotesService{
		listFn: func(ctx context.Context) ([]note.Note, error) {
			return []note.Note{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}, nil
		},
	}

	h := handlers.NewNotesHandler(fake)
	r := setupRouter(http.MethodGet, "/api/notes", h.ListNotes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}

	var body struct {
		Items []note.Note `json:"items"`
		Count int         `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Count != 2 || body.Items[0].ID != 2 {
		t.Fatalf("unexpected list body: %+v", body)
	}
}

func TestUpdateNoteHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           string
		updateErr      error
		wantStatusCode int
	}{
		{name: "success", url: "/api/notes/5", body: `{"title":"new","content":"c"}`, wantStatusCode: http.StatusOK},
		{name: "missing", url: "/api/notes/6", body: `{"title":"new"}`, updateErr: repo.NotFound("notes.update"), wantStatusCode: http.StatusNotFound},
		{name: "invalid_body", url: "/api/notes/5", body: `{"content":"no title"}`, wantStatusCode: http.StatusBadRequest},
		{name: "bad_id", url: "/api/notes/x", body: `{"title":"new"}`, wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var gotID int

			fake := &fakeNotesService{
				updateFn: func(ctx context.Context, in note.Note) (note.Note, error) {
					gotID = in.ID
					if tt.updateErr != nil {
						return note.Note{}, tt.updateErr
					}
					return in, nil
				},
			}

			h := handlers.NewNotesHandler(fake)
			r := setupRouter(http.MethodPut, "/api/notes/:id", h.UpdateNote)

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK && gotID != 5 {
				t.Fatalf("update should target the path id, got %d", gotID)
			}
		})
	}
}

func TestDeleteNoteHandler(t *testing.T) {
	tests := []struct {
		name           string
		removed        int64
		err            error
		wantStatusCode int
	}{
		{name: "deleted", removed: 1, wantStatusCode: http.StatusNoContent},
		{name: "nothing_removed", removed: 0, wantStatusCode: http.StatusNotFound},
		{name: "store_unavailable", err: repo.Unavailable("notes.delete", errors.New("closed")), wantStatusCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeNotesService{
				deleteFn: func(ctx context.Context, id int) (int64, error) {
					return tt.removed, tt.err
				},
			}

			h := handlers.NewNotesHandler(fake)
			r := setupRouter(http.MethodDelete, "/api/notes/:id", h.DeleteNote)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/notes/9", nil))

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatusCode)
			}
		})
	}
}
