package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sickfits/storefront-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, email, name, password_hash, permissions, reset_token, reset_token_expiry, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A fresh ID is assigned when the struct carries
// none. The email uniqueness constraint is enforced by the database.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `INSERT INTO users (id, email, name, password_hash, permissions) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, joinPermissions(user.Permissions),
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByResetToken retrieves the user holding the given outstanding reset
// token. Expiry is checked by the caller.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

// List retrieves all users, oldest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

// SetResetToken records a password-reset token and its expiry on a user,
// replacing any previous outstanding token.
func (r *UserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	query := `UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, token, expiry, userID)
	if err != nil {
		return err
	}
	return r.confirmRow(ctx, result, userID)
}

// CompletePasswordReset stores the new password hash and clears the reset
// token so it cannot be replayed.
func (r *UserRepository) CompletePasswordReset(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, reset_token = NULL, reset_token_expiry = NULL WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	return r.confirmRow(ctx, result, userID)
}

// UpdatePermissions replaces a user's permission set wholesale and returns the
// updated record.
func (r *UserRepository) UpdatePermissions(ctx context.Context, userID string, permissions []model.Permission) (*model.User, error) {
	query := `UPDATE users SET permissions = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, joinPermissions(permissions), userID); err != nil {
		return nil, err
	}

	// Rows affected is useless here: MySQL counts rows changed, not matched,
	// so re-applying an identical permission set reports zero. The read-back
	// settles whether the user exists.
	return r.GetByID(ctx, userID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	var permissions string
	var resetToken sql.NullString
	var resetExpiry sql.NullTime

	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &permissions,
		&resetToken, &resetExpiry, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Permissions = splitPermissions(permissions)
	if resetToken.Valid {
		user.ResetToken = &resetToken.String
	}
	if resetExpiry.Valid {
		user.ResetTokenExpiry = &resetExpiry.Time
	}

	return user, nil
}

// confirmRow distinguishes a missing user from a no-op update. MySQL reports
// rows changed rather than rows matched, so an UPDATE that writes the values a
// row already holds affects zero rows.
func (r *UserRepository) confirmRow(ctx context.Context, result sql.Result, userID string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// joinPermissions encodes a permission set as a comma-separated column value.
func joinPermissions(permissions []model.Permission) string {
	parts := make([]string, len(permissions))
	for i, p := range permissions {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

// splitPermissions decodes the comma-separated permissions column.
func splitPermissions(encoded string) []model.Permission {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	permissions := make([]model.Permission, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			permissions = append(permissions, model.Permission(p))
		}
	}
	return permissions
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
