package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sickfits/storefront-go/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

const itemColumns = `id, title, description, image, large_image, price, slug, user_id, created_at, updated_at`

// ItemRepository handles catalog item persistence operations.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new catalog item, assigning an ID when the struct carries
// none.
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `INSERT INTO items (id, title, description, image, large_image, price, slug, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Description, item.Image, item.LargeImage,
		item.Price, item.Slug, item.UserID,
	)
	return err
}

// GetByID retrieves an item by ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item := &model.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Description, &item.Image, &item.LargeImage,
		&item.Price, &item.Slug, &item.UserID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// List retrieves a page of items, newest first.
func (r *ItemRepository) List(ctx context.Context, limit, offset int) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(
			&it.ID, &it.Title, &it.Description, &it.Image, &it.LargeImage,
			&it.Price, &it.Slug, &it.UserID, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// Update overwrites an item's editable fields.
func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `UPDATE items SET title = ?, description = ?, image = ?, large_image = ?, price = ?, slug = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		item.Title, item.Description, item.Image, item.LargeImage, item.Price, item.Slug, item.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Zero rows can also mean a no-op update of identical values; confirm
		// the item really is gone before reporting it missing.
		if _, err := r.GetByID(ctx, item.ID); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes an item. Cart rows referencing it are removed by the
// database's ON DELETE CASCADE.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
