package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sickfits/storefront-go/internal/crypto"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
)

// SessionCookie is the name of the session cookie carrying the signed token.
const SessionCookie = "token"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the per-request caller identity: either anonymous (User nil) or
// authenticated. It is built once by the Session middleware and never mutated
// afterwards.
type Identity struct {
	User *model.User
}

// Authenticated reports whether the request carries a verified, existing user.
func (id Identity) Authenticated() bool {
	return id.User != nil
}

// UserSource loads a user record for a verified session token.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Session returns middleware that resolves the session cookie to an Identity
// and attaches it to the request context. A missing, tampered, or stale cookie
// degrades to anonymous rather than rejecting the request: public reads must
// keep working with a bad cookie present.
func Session(secret string, users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolveIdentity(r, secret, users)
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveIdentity(r *http.Request, secret string, users UserSource) Identity {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return Identity{}
	}

	userID, err := crypto.VerifySession(cookie.Value, secret)
	if err != nil {
		return Identity{}
	}

	user, err := users.GetByID(r.Context(), userID)
	if err != nil {
		// A valid token for a vanished account is anonymous; anything else is
		// an infrastructure problem worth logging, but still not fatal here.
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.Warn("session user lookup failed", "user_id", userID, "error", err)
		}
		return Identity{}
	}

	return Identity{User: user}
}

// IdentityFromContext extracts the caller identity set by Session. Requests
// that never passed through the middleware read as anonymous.
func IdentityFromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityKey).(Identity)
	return identity
}
