package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sickfits/storefront-go/internal/crypto"
	"github.com/sickfits/storefront-go/internal/model"
	"github.com/sickfits/storefront-go/internal/repository"
)

type fakeUserSource struct {
	users map[string]*model.User
}

func (s *fakeUserSource) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func runSession(t *testing.T, secret string, users UserSource, cookie *http.Cookie) Identity {
	t.Helper()

	var got Identity
	handler := Session(secret, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("middleware must never abort the request, got status %d", rec.Code)
	}
	return got
}

func TestSession_NoCookieIsAnonymous(t *testing.T) {
	users := &fakeUserSource{users: map[string]*model.User{}}

	identity := runSession(t, "secret", users, nil)
	if identity.Authenticated() {
		t.Error("expected anonymous identity without a cookie")
	}
}

func TestSession_ValidCookie(t *testing.T) {
	user := &model.User{ID: "u1", Email: "a@b.com", Permissions: []model.Permission{model.PermissionUser}}
	users := &fakeUserSource{users: map[string]*model.User{"u1": user}}

	token, err := crypto.MintSession("u1", "secret")
	if err != nil {
		t.Fatalf("MintSession: %v", err)
	}

	identity := runSession(t, "secret", users, &http.Cookie{Name: SessionCookie, Value: token})
	if !identity.Authenticated() {
		t.Fatal("expected authenticated identity")
	}
	if identity.User.ID != "u1" {
		t.Errorf("expected user u1, got %s", identity.User.ID)
	}
}

func TestSession_TamperedCookieDegradesToAnonymous(t *testing.T) {
	users := &fakeUserSource{users: map[string]*model.User{}}

	identity := runSession(t, "secret", users, &http.Cookie{Name: SessionCookie, Value: "not-a-real-token"})
	if identity.Authenticated() {
		t.Error("tampered token must degrade to anonymous, not fail the request")
	}
}

func TestSession_WrongSecretIsAnonymous(t *testing.T) {
	user := &model.User{ID: "u1"}
	users := &fakeUserSource{users: map[string]*model.User{"u1": user}}

	token, err := crypto.MintSession("u1", "other-secret")
	if err != nil {
		t.Fatalf("MintSession: %v", err)
	}

	identity := runSession(t, "secret", users, &http.Cookie{Name: SessionCookie, Value: token})
	if identity.Authenticated() {
		t.Error("token signed with a rotated secret must read as anonymous")
	}
}

func TestSession_VanishedUserIsAnonymous(t *testing.T) {
	users := &fakeUserSource{users: map[string]*model.User{}}

	token, err := crypto.MintSession("gone", "secret")
	if err != nil {
		t.Fatalf("MintSession: %v", err)
	}

	identity := runSession(t, "secret", users, &http.Cookie{Name: SessionCookie, Value: token})
	if identity.Authenticated() {
		t.Error("valid token for a deleted account must read as anonymous")
	}
}

func TestIdentityFromContext_Unset(t *testing.T) {
	identity := IdentityFromContext(context.Background())
	if identity.Authenticated() {
		t.Error("missing context value should read as anonymous")
	}
}
