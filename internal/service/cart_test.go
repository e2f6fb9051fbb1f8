package service

import (
	"context"
	"testing"

	"github.com/sickfits/storefront-go/internal/model"
)

func newCartFixture(t *testing.T) (*CartService, *memCartStore, *model.Item) {
	t.Helper()
	items := newMemItemStore()
	cart := newMemCartStore(items)
	item := seedItem(t, items, "seller")
	return NewCartService(cart, items), cart, item
}

func TestAddToCart_MergesDuplicates(t *testing.T) {
	svc, cart, item := newCartFixture(t)
	buyer := &model.User{ID: "buyer", Permissions: []model.Permission{model.PermissionUser}}

	first, err := svc.Add(context.Background(), buyer, item.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := svc.Add(context.Background(), buyer, item.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("both adds should hit the same row, got %s and %s", first.ID, second.ID)
	}
	if second.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", second.Quantity)
	}

	lines, err := svc.List(context.Background(), buyer)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected exactly one cart row, got %d", len(lines))
	}
	if len(cart.rows) != 1 {
		t.Fatalf("store should hold one row, got %d", len(cart.rows))
	}
}

func TestAddToCart_RequiresAuthAndItem(t *testing.T) {
	svc, _, item := newCartFixture(t)
	buyer := &model.User{ID: "buyer", Permissions: []model.Permission{model.PermissionUser}}

	if _, err := svc.Add(context.Background(), nil, item.ID); err != ErrNotAuthenticated {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := svc.Add(context.Background(), buyer, "missing-item"); err != ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveFromCart_Ownership(t *testing.T) {
	svc, _, item := newCartFixture(t)
	alice := &model.User{ID: "alice", Permissions: []model.Permission{model.PermissionUser}}
	bob := &model.User{ID: "bob", Permissions: []model.Permission{model.PermissionUser}}

	row, err := svc.Add(context.Background(), alice, item.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Bob cannot remove Alice's row.
	if err := svc.Remove(context.Background(), bob, row.ID); err != ErrPermissionDenied {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}

	if err := svc.Remove(context.Background(), alice, row.ID); err != nil {
		t.Errorf("owner removal failed: %v", err)
	}

	// Row is gone now.
	if err := svc.Remove(context.Background(), alice, row.ID); err != ErrCartItemNotFound {
		t.Errorf("expected ErrCartItemNotFound, got %v", err)
	}
}
