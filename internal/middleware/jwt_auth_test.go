package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Oasis-NEU/s26-group-3/internal/auth"
)

func protectedEcho(t *testing.T) (http.Handler, *auth.TokenCodec) {
	t.Helper()
	codec, err := auth.NewTokenCodec("dev", "HS256", 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(CtxUserID).(string)
		w.Write([]byte(userID))
	})
	return JWTAuth(codec)(inner), codec
}

func TestJWTAuthAcceptsAccessToken(t *testing.T) {
	handler, codec := protectedEcho(t)

	token, err := codec.IssueAccess("u1", "bob@northeastern.edu")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if w.Body.String() != "u1" {
		t.Fatalf("expected subject in context, got %q", w.Body.String())
	}
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	handler, codec := protectedEcho(t)

	token, err := codec.IssueRefresh("u1")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not authenticate API calls: got %d", w.Code)
	}
}

func TestJWTAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	handler, _ := protectedEcho(t)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, w.Code)
		}
	}
}
