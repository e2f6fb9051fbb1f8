package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/service"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleListUsers handles GET /api/v1/users requests.
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	users, err := h.service.Users(r.Context(), identity.User)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]model.UserResponse, len(users))
	for i := range users {
		resp[i] = model.NewUserResponse(&users[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdatePermissions handles PUT /api/v1/users/{user_id}/permissions
// requests.
func (h *UserHandler) HandleUpdatePermissions(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	targetID := chi.URLParam(r, "user_id")

	var req model.UpdatePermissionsRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	updated, err := h.service.UpdatePermissions(r.Context(), identity.User, targetID, req.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPermission):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.NewUserResponse(updated))
}
