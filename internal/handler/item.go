package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/service"
)

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	service *service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{service: svc}
}

// HandleListItems handles GET /api/v1/items requests. Public; supports ?page
// and ?per_page.
func (h *ItemHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	items, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	resp := make([]model.ItemResponse, len(items))
	for i := range items {
		resp[i] = model.NewItemResponse(&items[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetItem handles GET /api/v1/items/{item_id} requests. Public.
func (h *ItemHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.NewItemResponse(item))
}

// HandleCreateItem handles POST /api/v1/items requests.
func (h *ItemHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req model.ItemRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), identity.User, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrInvalidPrice):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.NewItemResponse(item))
}

// HandleUpdateItem handles PUT /api/v1/items/{item_id} requests.
func (h *ItemHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req model.ItemRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	item, err := h.service.Update(r.Context(), identity.User, chi.URLParam(r, "item_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.NewItemResponse(item))
}

// HandleDeleteItem handles DELETE /api/v1/items/{item_id} requests.
func (h *ItemHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	err := h.service.Delete(r.Context(), identity.User, chi.URLParam(r, "item_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
