package service

import (
	"errors"

	"github.com/sickfits/storefront-go/internal/model"
)

var (
	ErrNotAuthenticated = errors.New("you must be signed in")
	ErrPermissionDenied = errors.New("insufficient permissions")
)

// Operation names a gated mutation. Every mutation's permission requirement is
// declared once in operationPermissions and enforced through
// authorizeOperation, so a missing check shows up as a missing table entry
// rather than a silent bypass.
type Operation string

const (
	OpCreateItem        Operation = "createItem"
	OpUpdateItem        Operation = "updateItem"
	OpDeleteItem        Operation = "deleteItem"
	OpAddToCart         Operation = "addToCart"
	OpRemoveFromCart    Operation = "removeFromCart"
	OpCheckout          Operation = "checkout"
	OpUpdatePermissions Operation = "updatePermissions"
	OpListUsers         Operation = "listUsers"
)

// operationPermissions maps each operation to the permissions that satisfy it,
// any-of. An empty set means authentication alone suffices. Operations with an
// ownership alternative (deleteItem, removeFromCart) check ownership first and
// fall back to this table.
var operationPermissions = map[Operation][]model.Permission{
	OpCreateItem:        {},
	OpUpdateItem:        {},
	OpDeleteItem:        {model.PermissionAdmin, model.PermissionItemDelete},
	OpAddToCart:         {},
	OpRemoveFromCart:    {},
	OpCheckout:          {},
	OpUpdatePermissions: {model.PermissionAdmin, model.PermissionPermissionUpdate},
	OpListUsers:         {model.PermissionAdmin, model.PermissionPermissionUpdate},
}

// Authorize fails with ErrPermissionDenied unless the user exists and holds at
// least one of the required permissions.
func Authorize(user *model.User, required ...model.Permission) error {
	if user == nil || !user.HasAnyPermission(required...) {
		return ErrPermissionDenied
	}
	return nil
}

// authorizeOperation enforces an operation's declared requirement:
// ErrNotAuthenticated for anonymous callers, then the permission table.
func authorizeOperation(user *model.User, op Operation) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	required := operationPermissions[op]
	if len(required) == 0 {
		return nil
	}
	return Authorize(user, required...)
}

// authorizeOwnerOr passes when the caller owns the entity, otherwise falls
// back to the operation's permission requirement. Operations with no declared
// permissions have no fallback: only the owner may act.
func authorizeOwnerOr(user *model.User, ownerID string, op Operation) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	if user.ID == ownerID {
		return nil
	}
	return Authorize(user, operationPermissions[op]...)
}
