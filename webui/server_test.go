package webui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/metrics"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"
)

// newTestServer builds a WebUIServer around a fake generation service.
func newTestServer(t *testing.T, authProvider AuthProvider) *WebUIServer {
	t.Helper()

	builder := promptgen.NewBuilder(promptgen.DefaultPresets(), "")
	sessions := NewSessionStore(time.Hour, 0)
	store := metrics.NewMetricsStore(metrics.DefaultStoreConfig(), time.Now())
	api := NewGenerateAPI(builder, &fakeService{}, sessions, store, nil, DefaultGenerateAPIConfig())

	server, err := NewServer(DefaultServerConfig(), api, authProvider, nil)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

// fakeAuthProvider rejects everything without the magic header. Stands
// in for auth.AuthMiddleware without importing the auth package.
type fakeAuthProvider struct{}

func (f *fakeAuthProvider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test-Auth") != "ok" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAuthProvider) MiddlewareFunc(next http.HandlerFunc) http.HandlerFunc {
	return f.Middleware(next).ServeHTTP
}

func (f *fakeAuthProvider) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("login page"))
	}
}

func (f *fakeAuthProvider) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func TestWebUIServer_Health(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want status ok", rr.Body.String())
	}
}

func TestWebUIServer_RootServesApp(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	contentType := rr.Header().Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", contentType)
	}

	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "AI Image Generator") {
		t.Error("body should contain app title")
	}
}

func TestWebUIServer_UnknownPathNotFound(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rr := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestWebUIServer_APIRoutesWired(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	rr := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GET /api/options status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Fantasy") {
		t.Error("options response missing style tokens")
	}
}

func TestWebUIServer_AuthProtectsAPIAndApp(t *testing.T) {
	server := newTestServer(t, &fakeAuthProvider{})

	if !server.HasAuth() {
		t.Fatal("HasAuth() = false, want true")
	}

	// API and root require auth.
	for _, path := range []string{"/api/options", "/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.httpServer.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s without auth: status = %d, want 401", path, rr.Code)
		}
	}

	// With credentials the same routes work.
	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	req.Header.Set("X-Test-Auth", "ok")
	rr := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("authed /api/options status = %d, want 200", rr.Code)
	}

	// Health and login stay open.
	for _, path := range []string{"/health", "/login"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.httpServer.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%s without auth: status = %d, want 200", path, rr.Code)
		}
	}
}

func TestWebUIServer_StartAndShutdown(t *testing.T) {
	server := newTestServer(t, nil)
	// Rebind to an ephemeral port so tests don't collide.
	server.httpServer.Addr = "localhost:0"

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(context.Background())
	}()

	// Give the listener a moment to come up.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("server did not stop after Shutdown()")
	}
}

func TestWebUIServer_RequiresGenerateAPI(t *testing.T) {
	if _, err := NewServer(DefaultServerConfig(), nil, nil, nil); err == nil {
		t.Error("NewServer() with nil API should fail")
	}
}

func TestDefaultServerConfig(t *testing.T) {
	config := DefaultServerConfig()

	if config.Port != 3000 {
		t.Errorf("Port = %d, want 3000", config.Port)
	}
	if config.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", config.Host)
	}
	if config.WriteTimeout < time.Minute {
		t.Errorf("WriteTimeout = %v, must leave room for slow generations", config.WriteTimeout)
	}
}
