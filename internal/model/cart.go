package model

import "time"

// CartItem represents one row of a user's cart. At most one row exists per
// (user, item) pair; repeated adds increment Quantity.
type CartItem struct {
	ID        string
	UserID    string
	ItemID    string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine is a cart row joined with its catalog item.
type CartLine struct {
	CartItem CartItem
	Item     Item
}

// AddToCartRequest adds one unit of an item to the caller's cart.
type AddToCartRequest struct {
	ItemID string `json:"item_id"`
}

// CartLineResponse represents a cart row with its item for API responses.
type CartLineResponse struct {
	ID       string       `json:"id"`
	Quantity int          `json:"quantity"`
	Item     ItemResponse `json:"item"`
}

// NewCartLineResponse converts a joined cart line to its response form.
func NewCartLineResponse(line CartLine) CartLineResponse {
	return CartLineResponse{
		ID:       line.CartItem.ID,
		Quantity: line.CartItem.Quantity,
		Item:     NewItemResponse(&line.Item),
	}
}
