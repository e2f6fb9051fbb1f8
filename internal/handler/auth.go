package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/service"
)

// sessionMaxAge is the session cookie lifetime. The token itself carries no
// expiry; this is the only bound on a session.
const sessionMaxAge = 365 * 24 * time.Hour

// AuthHandler handles HTTP requests for authentication and password reset.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignup handles POST /api/v1/auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	user, token, err := h.service.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired),
			errors.Is(err, service.ErrNameRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, model.NewUserResponse(user))
}

// HandleSignin handles POST /api/v1/auth/signin requests.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	user, token, err := h.service.Signin(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, model.NewUserResponse(user))
}

// HandleSignout handles POST /api/v1/auth/signout requests. Clearing the
// cookie is idempotent; no identity is required.
func (h *AuthHandler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Goodbye!"})
}

// HandleRequestReset handles POST /api/v1/auth/request-reset requests.
func (h *AuthHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req model.RequestResetRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	if err := h.service.RequestReset(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Check your email for a reset link"})
}

// HandleResetPassword handles POST /api/v1/auth/reset-password requests.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	user, token, err := h.service.ResetPassword(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired), errors.Is(err, service.ErrPasswordMismatch):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrResetTokenInvalid):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, model.NewUserResponse(user))
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if !identity.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not signed in"))
		return
	}

	writeJSON(w, http.StatusOK, model.NewUserResponse(identity.User))
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
