package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sickfits/storefront-go/internal/crypto"
	"github.com/sickfits/storefront-go/internal/mail"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailTaken         = errors.New("an account with that email already exists")
	ErrUserNotFound       = errors.New("no user found for that email")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
	ErrInvalidPermission  = errors.New("unknown permission")
)

// resetTokenTTL bounds how long a password-reset token stays usable.
const resetTokenTTL = time.Hour

// AuthService implements signup, signin, password reset and permission
// administration.
type AuthService struct {
	users       UserStore
	mailer      mail.Mailer
	secret      string
	frontendURL string
}

// NewAuthService creates a new AuthService. The signing secret is injected
// here and nowhere else.
func NewAuthService(users UserStore, mailer mail.Mailer, secret, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		mailer:      mailer,
		secret:      secret,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Signup creates an account with the default USER permission and returns the
// user with a freshly minted session token.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, string, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if req.Password == "" {
		return nil, "", ErrPasswordRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, "", ErrNameRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Permissions:  []model.Permission{model.PermissionUser},
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := crypto.MintSession(user.ID, s.secret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Signin authenticates by email and password and returns the user with a new
// session token. Unknown email and wrong password report distinct errors.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := crypto.MintSession(user.ID, s.secret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// RequestReset stores a fresh single-use reset token on the account and emails
// a reset link. A mail delivery failure surfaces to the caller but the stored
// token is kept; repeating the request overwrites it.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := crypto.NewResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset?resetToken=%s", s.frontendURL, token)
	return s.mailer.SendPasswordReset(ctx, user.Email, resetURL)
}

// ResetPassword completes the two-phase reset: the token must match an
// account and still be within its one-hour window. On success the token is
// cleared so it cannot be replayed, and a new session is minted.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (*model.User, string, error) {
	if req.Password == "" {
		return nil, "", ErrPasswordRequired
	}
	if req.Password != req.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	user, err := s.users.GetByResetToken(ctx, req.ResetToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrResetTokenInvalid
		}
		return nil, "", err
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return nil, "", ErrResetTokenInvalid
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.CompletePasswordReset(ctx, user.ID, hash); err != nil {
		return nil, "", err
	}
	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	token, err := crypto.MintSession(user.ID, s.secret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// UpdatePermissions replaces the target user's permission set wholesale. The
// caller needs ADMIN or PERMISSIONUPDATE.
func (s *AuthService) UpdatePermissions(ctx context.Context, caller *model.User, targetID string, permissions []model.Permission) (*model.User, error) {
	if err := authorizeOperation(caller, OpUpdatePermissions); err != nil {
		return nil, err
	}

	for _, p := range permissions {
		if !model.ValidPermission(p) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPermission, p)
		}
	}

	updated, err := s.users.UpdatePermissions(ctx, targetID, permissions)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Users lists every account for the permission-management screen. The caller
// needs ADMIN or PERMISSIONUPDATE.
func (s *AuthService) Users(ctx context.Context, caller *model.User) ([]model.User, error) {
	if err := authorizeOperation(caller, OpListUsers); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// normalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
