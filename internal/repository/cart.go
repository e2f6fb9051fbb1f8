package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sickfits/storefront-go/internal/model"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository handles cart row persistence operations.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddOne adds one unit of an item to a user's cart as a single atomic upsert.
// The UNIQUE (user_id, item_id) key guarantees at most one row per pair even
// under concurrent adds; an existing row keeps its original id and gains one
// quantity.
func (r *CartRepository) AddOne(ctx context.Context, userID, itemID string) error {
	query := `INSERT INTO cart_items (id, user_id, item_id, quantity)
		VALUES (?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE quantity = quantity + 1`

	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, itemID)
	return err
}

// GetByID retrieves a cart row by its ID.
func (r *CartRepository) GetByID(ctx context.Context, id string) (*model.CartItem, error) {
	query := `SELECT id, user_id, item_id, quantity, created_at, updated_at FROM cart_items WHERE id = ?`

	ci := &model.CartItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ci.ID, &ci.UserID, &ci.ItemID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	return ci, nil
}

// GetByUserAndItem retrieves the single cart row for a (user, item) pair.
func (r *CartRepository) GetByUserAndItem(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	query := `SELECT id, user_id, item_id, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = ? AND item_id = ?`

	ci := &model.CartItem{}
	err := r.db.QueryRowContext(ctx, query, userID, itemID).Scan(
		&ci.ID, &ci.UserID, &ci.ItemID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	return ci, nil
}

// ListByUser retrieves a user's cart rows joined with their catalog items,
// oldest first.
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]model.CartLine, error) {
	query := `SELECT c.id, c.user_id, c.item_id, c.quantity, c.created_at, c.updated_at,
			i.id, i.title, i.description, i.image, i.large_image, i.price, i.slug, i.user_id, i.created_at, i.updated_at
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.user_id = ?
		ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(
			&line.CartItem.ID, &line.CartItem.UserID, &line.CartItem.ItemID,
			&line.CartItem.Quantity, &line.CartItem.CreatedAt, &line.CartItem.UpdatedAt,
			&line.Item.ID, &line.Item.Title, &line.Item.Description, &line.Item.Image,
			&line.Item.LargeImage, &line.Item.Price, &line.Item.Slug, &line.Item.UserID,
			&line.Item.CreatedAt, &line.Item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// Delete removes a cart row. Ownership is checked by the service layer before
// this is called.
func (r *CartRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}
