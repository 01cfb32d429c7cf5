package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/domain/note"
)

type NotesService interface {
	List(ctx context.Context) ([]note.Note, error)
	GetByID(ctx context.Context, id int) (note.Note, bool, error)
	Create(ctx context.Context, in note.Note) (note.Note, error)
	Update(ctx context.Context, in note.Note) (note.Note, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type NotesHandler struct {
	notes NotesService
}

func NewNotesHandler(notes NotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

func (h *NotesHandler) ListNotes(ctx *gin.Context) {
	notes, err := h.notes.List(ctx.Request.Context())

	if err != nil {
		RespondStoreError(ctx, err, "Notes")
		return
	}

	respondList(ctx, notes)
}

func (h *NotesHandler) GetNoteByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	n, found, err := h.notes.GetByID(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "Note")
		return
	}

	if !found {
		RespondNotFound(ctx, "Note not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, n)
}

func (h *NotesHandler) CreateNote(ctx *gin.Context) {
	var req note.CreateNoteRequest

	if !BindJSON(ctx, &req) {
		return
	}

	created, err := h.notes.Create(ctx.Request.Context(), note.NewFromCreateRequest(req))

	if err != nil {
		RespondStoreError(ctx, err, "Note")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *NotesHandler) UpdateNote(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req note.UpdateNoteRequest

	if !BindJSON(ctx, &req) {
		return
	}

	updated, err := h.notes.Update(ctx.Request.Context(), note.NewFromUpdateRequest(id, req))

	if err != nil {
		RespondStoreError(ctx, err, "Note")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *NotesHandler) DeleteNote(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	removed, err := h.notes.Delete(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "Note")
		return
	}

	if removed == 0 {
		RespondNotFound(ctx, "Note not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
