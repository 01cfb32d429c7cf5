package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/http/middlewares"
	"github.com/usforever/api/internal/repo"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if s := ctx.GetString(middlewares.CtxRequestID); s != "" {
		return s
	}

	// fallback header
	return ctx.GetHeader(middlewares.RequestIDHeader)
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondUnavailable(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusServiceUnavailable, "unavailable", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondStoreError translates a store failure into the error envelope.
// what names the entity in messages, e.g. "Note".
func RespondStoreError(ctx *gin.Context, err error, what string) {
	_ = ctx.Error(err)

	switch repo.KindOf(err) {
	case repo.ErrNotFound:
		RespondNotFound(ctx, what+" not found")
	case repo.ErrIntegrity:
		RespondBadRequest(ctx, what+" conflicts with existing data", nil)
	case repo.ErrValidation:
		RespondBadRequest(ctx, validationMessageOf(err), nil)
	case repo.ErrUnavailable:
		slog.ErrorContext(ctx.Request.Context(), "store unavailable", "err", err)
		RespondUnavailable(ctx, "Storage is temporarily unavailable")
	default:
		slog.ErrorContext(ctx.Request.Context(), "store failure", "err", err)
		RespondInternal(ctx, "Could not process "+what)
	}
}

func validationMessageOf(err error) string {
	var repoErr *repo.Error
	if errors.As(err, &repoErr) && repoErr.Err != nil {
		return repoErr.Err.Error()
	}

	return "Invalid request"
}

// pathID parses the :id path parameter and answers 400 when it is not a
// positive integer.
func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid id", gin.H{"id": ctx.Param("id")})
		return 0, false
	}

	return id, true
}

func respondList[T any](ctx *gin.Context, items []T) {
	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
