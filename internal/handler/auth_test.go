package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
	"github.com/sickfits/storefront-go/internal/service"
)

type stubUserStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byID: map[string]*model.User{}, byEmail: map[string]*model.User{}}
}

func (s *stubUserStore) Create(_ context.Context, user *model.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = "u1"
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) GetByResetToken(_ context.Context, token string) (*model.User, error) {
	for _, u := range s.byID {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserStore) List(_ context.Context) ([]model.User, error) { return nil, nil }

func (s *stubUserStore) SetResetToken(_ context.Context, userID, token string, expiry time.Time) error {
	u, ok := s.byID[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (s *stubUserStore) CompletePasswordReset(_ context.Context, userID, hash string) error {
	u, ok := s.byID[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (s *stubUserStore) UpdatePermissions(_ context.Context, userID string, perms []model.Permission) (*model.User, error) {
	u, ok := s.byID[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Permissions = perms
	return u, nil
}

type noopMailer struct{}

func (noopMailer) SendPasswordReset(context.Context, string, string) error { return nil }

func newTestAuthHandler() *AuthHandler {
	svc := service.NewAuthService(newStubUserStore(), noopMailer{}, "test-secret", "http://localhost:7777")
	return NewAuthHandler(svc)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestHandleSignup_SetsSessionCookie(t *testing.T) {
	h := newTestAuthHandler()

	body := `{"email":"a@b.com","password":"pw","name":"Name"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleSignup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.MaxAge != int((365 * 24 * time.Hour).Seconds()) {
		t.Errorf("expected one-year max-age, got %d", cookie.MaxAge)
	}

	var resp model.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Email != "a@b.com" {
		t.Errorf("unexpected email: %s", resp.Email)
	}
}

func TestHandleSignup_DuplicateEmailConflict(t *testing.T) {
	h := newTestAuthHandler()
	body := `{"email":"a@b.com","password":"pw","name":"Name"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	h.HandleSignup(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleSignin_BadPassword(t *testing.T) {
	h := newTestAuthHandler()

	signupReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"email":"a@b.com","password":"pw","name":"Name"}`))
	h.HandleSignup(httptest.NewRecorder(), signupReq)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
		strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.HandleSignin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Error("no session cookie should be set on failed signin")
	}
}

func TestHandleSignout_ClearsCookie(t *testing.T) {
	h := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)
	rec := httptest.NewRecorder()
	h.HandleSignout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected the cookie to be rewritten")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("expected an expired empty cookie, got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestHandleMe_Anonymous(t *testing.T) {
	h := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	h.HandleMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
