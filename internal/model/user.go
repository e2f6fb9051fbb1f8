package model

import "time"

// Permission is a capability tag attached to a user account.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// AllPermissions is the fixed set of assignable permissions.
var AllPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

// ValidPermission reports whether p is one of the known permission tags.
func ValidPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// User represents a user account in the database. PasswordHash holds a bcrypt
// hash; the plaintext password is never persisted. ResetToken and
// ResetTokenExpiry are either both set (one outstanding reset request) or both
// nil.
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	Permissions      []Permission
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasAnyPermission reports whether the user holds at least one of the given
// permissions.
func (u *User) HasAnyPermission(required ...Permission) bool {
	for _, req := range required {
		for _, held := range u.Permissions {
			if held == req {
				return true
			}
		}
	}
	return false
}

// SignupRequest represents an account registration request.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SigninRequest represents a login request.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RequestResetRequest asks for a password-reset email.
type RequestResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes a password reset with the emailed token.
type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdatePermissionsRequest replaces a user's permission set wholesale.
type UpdatePermissionsRequest struct {
	Permissions []Permission `json:"permissions"`
}

// UserResponse represents user data safe for API responses (no hash, no reset
// token).
type UserResponse struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewUserResponse strips sensitive fields from a user record.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt,
	}
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
