package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sickfits/storefront-go/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles order persistence operations.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order with its line snapshots and clears the buyer's
// cart, all within one transaction. Either the whole checkout is recorded or
// none of it is.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, total, charge_id) VALUES (?, ?, ?, ?)`,
		order.ID, order.UserID, order.Total, order.ChargeID,
	)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = order.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, title, description, image, price, quantity)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
			items[i].ID, items[i].OrderID, items[i].Title, items[i].Description,
			items[i].Image, items[i].Price, items[i].Quantity,
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, order.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves an order and its line snapshots.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	order := &model.Order{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, total, charge_id, created_at FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.UserID, &order.Total, &order.ChargeID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	items, err := r.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// ListByUser retrieves a user's orders, newest first, each with its line
// snapshots.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, map[string][]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, total, charge_id, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.ChargeID, &o.CreatedAt); err != nil {
			return nil, nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	itemsByOrder := make(map[string][]model.OrderItem, len(orders))
	for _, o := range orders {
		items, err := r.itemsForOrder(ctx, o.ID)
		if err != nil {
			return nil, nil, err
		}
		itemsByOrder[o.ID] = items
	}

	return orders, itemsByOrder, nil
}

func (r *OrderRepository) itemsForOrder(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, title, description, image, price, quantity FROM order_items WHERE order_id = ?`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Title, &it.Description, &it.Image, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
