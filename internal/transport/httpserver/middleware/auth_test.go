package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f fakeVerifier) Verify(token string) (string, error) {
	return f.userID, f.err
}

func TestMiddlewarePassesUserID(t *testing.T) {
	auth := NewTokenAuth(fakeVerifier{userID: "user-1"})

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/donations/available", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Fatalf("expected user-1 in context, got %q", gotUserID)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	auth := NewTokenAuth(fakeVerifier{userID: "user-1"})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/donations/available", nil)
	rec := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatalf("next handler must not run without a credential")
	}
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	auth := NewTokenAuth(fakeVerifier{err: errors.New("invalid token")})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/donations/available", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	auth.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	if _, ok := bearerToken("Token abc"); ok {
		t.Fatalf("non-bearer scheme accepted")
	}
	if _, ok := bearerToken(""); ok {
		t.Fatalf("empty header accepted")
	}
	token, ok := bearerToken("bearer abc")
	if !ok || token != "abc" {
		t.Fatalf("case-insensitive bearer not accepted: %q %v", token, ok)
	}
}
