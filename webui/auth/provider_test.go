package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	m, err := NewAuthMiddleware("test-password", zap.NewNop())
	if err != nil {
		t.Fatalf("NewAuthMiddleware() error = %v", err)
	}
	return NewProvider(m)
}

func TestProvider_MiddlewareRejectsWithoutSession(t *testing.T) {
	provider := newTestProvider(t)

	handler := provider.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestProvider_MiddlewareAllowsValidSession(t *testing.T) {
	provider := newTestProvider(t)

	session, cookie, err := provider.AuthMiddleware().CreateSession()
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.ID == "" {
		t.Fatal("CreateSession() returned empty session ID")
	}

	handler := provider.MiddlewareFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestProvider_LoginHandlerServesForm(t *testing.T) {
	provider := newTestProvider(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	provider.LoginHandler()(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
