package service

import (
	"context"
	"errors"

	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartService implements the shopping cart.
type CartService struct {
	cart  CartStore
	items ItemStore
}

// NewCartService creates a new CartService.
func NewCartService(cart CartStore, items ItemStore) *CartService {
	return &CartService{cart: cart, items: items}
}

// Add puts one unit of an item in the caller's cart. Adding an item already in
// the cart increments the existing row's quantity; the store's upsert keeps
// this atomic under concurrent adds.
func (s *CartService) Add(ctx context.Context, caller *model.User, itemID string) (*model.CartItem, error) {
	if err := authorizeOperation(caller, OpAddToCart); err != nil {
		return nil, err
	}

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if err := s.cart.AddOne(ctx, caller.ID, itemID); err != nil {
		return nil, err
	}

	row, err := s.cart.GetByUserAndItem(ctx, caller.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	return row, nil
}

// Remove deletes a cart row. The row must exist and belong to the caller.
func (s *CartService) Remove(ctx context.Context, caller *model.User, cartItemID string) error {
	if err := authorizeOperation(caller, OpRemoveFromCart); err != nil {
		return err
	}

	row, err := s.cart.GetByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	if row.UserID != caller.ID {
		return ErrPermissionDenied
	}

	if err := s.cart.Delete(ctx, cartItemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	return nil
}

// List returns the caller's cart rows joined with their items.
func (s *CartService) List(ctx context.Context, caller *model.User) ([]model.CartLine, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	return s.cart.ListByUser(ctx, caller.ID)
}
