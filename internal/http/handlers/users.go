package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/usforever/api/internal/domain/user"
	"github.com/usforever/api/internal/service"
)

type UsersService interface {
	GetByID(ctx context.Context, id int) (user.User, bool, error)
	Register(ctx context.Context, in user.User) (user.User, error)
	Update(ctx context.Context, in user.User) (user.User, error)
	Delete(ctx context.Context, id int) (int64, error)
	Authenticate(ctx context.Context, email, password string) (user.User, error)
}

type UsersHandler struct {
	users UsersService
}

func NewUsersHandler(users UsersService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	created, err := h.users.Register(ctx.Request.Context(), user.NewFromRegisterRequest(req))

	if err != nil {
		RespondStoreError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.users.Authenticate(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(ctx, "Invalid email or password")
			return
		}

		RespondStoreError(ctx, err, "Login")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	u, found, err := h.users.GetByID(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "User")
		return
	}

	if !found {
		RespondNotFound(ctx, "User not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req user.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	updated, err := h.users.Update(ctx.Request.Context(), user.NewFromUpdateRequest(id, req))

	if err != nil {
		RespondStoreError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	removed, err := h.users.Delete(ctx.Request.Context(), id)

	if err != nil {
		RespondStoreError(ctx, err, "User")
		return
	}

	if removed == 0 {
		RespondNotFound(ctx, "User not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
