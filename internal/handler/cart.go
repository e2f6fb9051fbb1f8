package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/service"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{service: svc}
}

// HandleListCart handles GET /api/v1/cart requests.
func (h *CartHandler) HandleListCart(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	lines, err := h.service.List(r.Context(), identity.User)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]model.CartLineResponse, len(lines))
	for i, line := range lines {
		resp[i] = model.NewCartLineResponse(line)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleAddToCart handles POST /api/v1/cart requests.
func (h *CartHandler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req model.AddToCartRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}
	if req.ItemID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("item_id is required"))
		return
	}

	row, err := h.service.Add(r.Context(), identity.User, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":       row.ID,
		"item_id":  row.ItemID,
		"quantity": row.Quantity,
	})
}

// HandleRemoveFromCart handles DELETE /api/v1/cart/{cart_item_id} requests.
func (h *CartHandler) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	err := h.service.Remove(r.Context(), identity.User, chi.URLParam(r, "cart_item_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
