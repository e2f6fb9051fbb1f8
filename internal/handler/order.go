package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/service"
)

// OrderHandler handles HTTP requests for checkout and order history.
type OrderHandler struct {
	service *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

// HandleCheckout handles POST /api/v1/orders requests.
func (h *OrderHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req model.CheckoutRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("payment token is required"))
		return
	}

	order, items, err := h.service.Checkout(r.Context(), identity.User, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.NewOrderResponse(order, items))
}

// HandleGetOrder handles GET /api/v1/orders/{order_id} requests.
func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	order, items, err := h.service.Get(r.Context(), identity.User, chi.URLParam(r, "order_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.NewOrderResponse(order, items))
}

// HandleListOrders handles GET /api/v1/orders requests.
func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	orders, itemsByOrder, err := h.service.ListMine(r.Context(), identity.User)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]model.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = model.NewOrderResponse(&orders[i], itemsByOrder[orders[i].ID])
	}

	writeJSON(w, http.StatusOK, resp)
}
