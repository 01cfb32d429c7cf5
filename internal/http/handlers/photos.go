package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/domain/photo"
)

type PhotosService interface {
	List(ctx context.Context) ([]photo.Photo, error)
	ListByCategory(ctx context.Context, category string) ([]photo.Photo, error)
	GetByID(ctx context.Context, id int) (photo.Photo, bool, error)
	Create(ctx context.Context, in photo.Photo) (photo.Photo, error)
	Update(ctx context.Context, in photo.Photo) (photo.Photo, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type PhotosHandler struct {
	photos PhotosService
}

func NewPhotosHandler(photos PhotosService) *PhotosHandler {
	return &PhotosHandler{photos: photos}
}

// ListPhotos returns photos in random order, so responses carry no ETag.
func (h *PhotosHandler) ListPhotos(ctx *gin.Context) {
	photos, err := h.photos.List(ctx.Request.Context())

	if err != nil {
		RespondStoreError(ctx, err, "Photos")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": photos, "count": len(photos)})
}

func (h *PhotosHandler) ListPhotosByCategory(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Param("category"))

	if category == "" {
		RespondBadRequest(ctx, "Category is required", nil)
		return
	}

	photos, err := h.photos.ListByCategory(ctx.Request.Context(), category)

	if err != nil {
		RespondStoreError(ctx, err, "Photos")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": photos, "count": len(photos)})
}

func (h *PhotosHandler) GetPhotoByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	p, found, err := h.photos.GetByID(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "Photo")
		return
	}

	if !found {
		RespondNotFound(ctx, "Photo not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}

func (h *PhotosHandler) CreatePhoto(ctx *gin.Context) {
	var req photo.CreatePhotoRequest

	if !BindJSON(ctx, &req) {
		return
	}

	created, err := h.photos.Create(ctx.Request.Context(), photo.NewFromCreateRequest(req))

	if err != nil {
		RespondStoreError(ctx, err, "Photo")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *PhotosHandler) UpdatePhoto(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req photo.UpdatePhotoRequest

	if !BindJSON(ctx, &req) {
		return
	}

	updated, err := h.photos.Update(ctx.Request.Context(), photo.NewFromUpdateRequest(id, req))

	if err != nil {
		RespondStoreError(ctx, err, "Photo")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *PhotosHandler) DeletePhoto(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	removed, err := h.photos.Delete(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "Photo")
		return
	}

	if removed == 0 {
		RespondNotFound(ctx, "Photo not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
