package service

import (
	"context"
	"errors"

	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/payment"
	"github.com/sickfits/storefront-go/internal/repository"
)

var (
	ErrCartEmpty     = errors.New("your cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

const chargeCurrency = "usd"

// OrderService implements checkout and order history.
type OrderService struct {
	cart      CartStore
	orders    OrderStore
	processor payment.Processor
}

// NewOrderService creates a new OrderService.
func NewOrderService(cart CartStore, orders OrderStore, processor payment.Processor) *OrderService {
	return &OrderService{cart: cart, orders: orders, processor: processor}
}

// Checkout charges the caller's card for the current cart contents and records
// the order. The total is recalculated from stored item prices, never taken
// from the client. Order rows are point-in-time snapshots; the cart is cleared
// in the same transaction that records the order.
func (s *OrderService) Checkout(ctx context.Context, caller *model.User, cardToken string) (*model.Order, []model.OrderItem, error) {
	if err := authorizeOperation(caller, OpCheckout); err != nil {
		return nil, nil, err
	}

	lines, err := s.cart.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, ErrCartEmpty
	}

	var total int64
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		total += line.Item.Price * int64(line.CartItem.Quantity)
		items[i] = model.OrderItem{
			Title:       line.Item.Title,
			Description: line.Item.Description,
			Image:       line.Item.Image,
			Price:       line.Item.Price,
			Quantity:    line.CartItem.Quantity,
		}
	}

	charge, err := s.processor.Charge(ctx, total, chargeCurrency, cardToken)
	if err != nil {
		return nil, nil, err
	}

	order := &model.Order{
		UserID:   caller.ID,
		Total:    charge.Amount,
		ChargeID: charge.ID,
	}

	if err := s.orders.Create(ctx, order, items); err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// Get retrieves an order. The caller must own it or hold ADMIN.
func (s *OrderService) Get(ctx context.Context, caller *model.User, id string) (*model.Order, []model.OrderItem, error) {
	if caller == nil {
		return nil, nil, ErrNotAuthenticated
	}

	order, items, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	if order.UserID != caller.ID {
		if err := Authorize(caller, model.PermissionAdmin); err != nil {
			return nil, nil, err
		}
	}

	return order, items, nil
}

// ListMine retrieves the caller's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, caller *model.User) ([]model.Order, map[string][]model.OrderItem, error) {
	if caller == nil {
		return nil, nil, ErrNotAuthenticated
	}
	return s.orders.ListByUser(ctx, caller.ID)
}
