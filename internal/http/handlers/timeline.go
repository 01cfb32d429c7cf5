package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/domain/timeline"
)

type TimelineService interface {
	List(ctx context.Context) ([]timeline.Entry, error)
	GetByID(ctx context.Context, id int) (timeline.Entry, bool, error)
	Create(ctx context.Context, in timeline.Entry) (timeline.Entry, error)
	Update(ctx context.Context, in timeline.Entry) (timeline.Entry, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type TimelineHandler struct {
	entries TimelineService
}

func NewTimelineHandler(entries TimelineService) *TimelineHandler {
	return &TimelineHandler{entries: entries}
}

func (h *TimelineHandler) ListEntries(ctx *gin.Context) {
	entries, err := h.entries.List(ctx.Request.Context())

	if err != nil {
		RespondStoreError(ctx, err, "Timeline")
		return
	}

	respondList(ctx, entries)
}

func (h *TimelineHandler) GetEntryByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	e, found, err := h.entries.GetByID(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "Timeline entry")
		return
	}

	if !found {
		RespondNotFound(ctx, "Timeline entry not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

func (h *TimelineHandler) CreateEntry(ctx *gin.Context) {
	var req timeline.CreateEntryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	created, err := h.entries.Create(ctx.Request.Context(), timeline.NewFromCreateRequest(req))

	if err != nil {
		RespondStoreError(ctx, err, "Timeline entry")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *TimelineHandler) UpdateEntry(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req timeline.UpdateEntryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	updated, err := h.entries.Update(ctx.Request.Context(), timeline.NewFromUpdateRequest(id, req))

	if err != nil {
		RespondStoreError(ctx, err, "Timeline entry")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *TimelineHandler) DeleteEntry(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	removed, err := h.entries.Delete(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "Timeline entry")
		return
	}

	if removed == 0 {
		RespondNotFound(ctx, "Timeline entry not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
