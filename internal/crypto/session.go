package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims represents the signed session assertion carried in the
// session cookie. There is deliberately no expiry claim: the cookie max-age
// is the only lifetime bound, and rotating the signing secret invalidates
// every outstanding session.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// MintSession creates a signed session token for the given user.
func MintSession(userID, secret string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "storefront",
			Audience: jwt.ClaimStrings{"storefront-api"},
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySession parses and validates a session token, returning the embedded
// user ID. Any signature or payload problem collapses to ErrInvalidToken.
func VerifySession(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("storefront"), jwt.WithAudience("storefront-api"))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
