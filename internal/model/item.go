package model

import "time"

// Item represents a catalog item. Price is in cents. UserID references the
// user who created the item.
type Item struct {
	ID          string
	Title       string
	Description string
	Image       string
	LargeImage  string
	Price       int64
	Slug        string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemRequest represents an item create or update payload. On update, empty
// string fields and a zero price leave the stored value unchanged.
type ItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LargeImage  string `json:"large_image"`
	Price       int64  `json:"price"`
}

// ItemResponse represents item data for API responses.
type ItemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	LargeImage  string    `json:"large_image"`
	Price       int64     `json:"price"`
	Slug        string    `json:"slug"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItemResponse converts an item record to its response form.
func NewItemResponse(it *Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Image:       it.Image,
		LargeImage:  it.LargeImage,
		Price:       it.Price,
		Slug:        it.Slug,
		UserID:      it.UserID,
		CreatedAt:   it.CreatedAt,
	}
}
