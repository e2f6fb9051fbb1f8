package model

import "time"

// Order represents a completed checkout. Total is in cents and is the amount
// actually charged. ChargeID references the payment processor's charge record.
type Order struct {
	ID        string
	UserID    string
	Total     int64
	ChargeID  string
	CreatedAt time.Time
}

// OrderItem is a point-in-time snapshot of a purchased item. Snapshots keep
// order history stable when the catalog item is later edited or deleted.
type OrderItem struct {
	ID          string
	OrderID     string
	Title       string
	Description string
	Image       string
	Price       int64
	Quantity    int
}

// CheckoutRequest carries the payment card token from the client.
type CheckoutRequest struct {
	Token string `json:"token"`
}

// OrderItemResponse represents an order line for API responses.
type OrderItemResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderResponse represents an order with its line snapshots.
type OrderResponse struct {
	ID        string              `json:"id"`
	Total     int64               `json:"total"`
	ChargeID  string              `json:"charge_id"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

// NewOrderResponse converts an order and its items to response form.
func NewOrderResponse(o *Order, items []OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		Total:     o.Total,
		ChargeID:  o.ChargeID,
		CreatedAt: o.CreatedAt,
		Items:     make([]OrderItemResponse, len(items)),
	}
	for i, it := range items {
		resp.Items[i] = OrderItemResponse{
			ID:       it.ID,
			Title:    it.Title,
			Image:    it.Image,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
	}
	return resp
}
