package service

import (
	"context"
	"time"

	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
)

// The services consume their repositories through these interfaces so tests
// can substitute in-memory fakes.

// UserStore persists user accounts and reset-token state.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByResetToken(ctx context.Context, token string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	CompletePasswordReset(ctx context.Context, userID, passwordHash string) error
	UpdatePermissions(ctx context.Context, userID string, permissions []model.Permission) (*model.User, error)
}

// ItemStore persists catalog items.
type ItemStore interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, limit, offset int) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id string) error
}

// CartStore persists cart rows. AddOne must be atomic with respect to the
// (user, item) uniqueness constraint.
type CartStore interface {
	AddOne(ctx context.Context, userID, itemID string) error
	GetByID(ctx context.Context, id string) (*model.CartItem, error)
	GetByUserAndItem(ctx context.Context, userID, itemID string) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]model.CartLine, error)
	Delete(ctx context.Context, id string) error
}

// OrderStore persists orders. Create also clears the buyer's cart in the same
// transaction.
type OrderStore interface {
	Create(ctx context.Context, order *model.Order, items []model.OrderItem) error
	GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, map[string][]model.OrderItem, error)
}

var (
	_ UserStore  = (*repository.UserRepository)(nil)
	_ ItemStore  = (*repository.ItemRepository)(nil)
	_ CartStore  = (*repository.CartRepository)(nil)
	_ OrderStore = (*repository.OrderRepository)(nil)
)
