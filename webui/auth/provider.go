// Package auth provides authentication components for the web UI.
// This file adapts the AuthMiddleware organism to the webui.AuthProvider
// interface so the server can stay decoupled from this package.
package auth

import (
	"net/http"

	"github.com/bhavyasri23-dev/ai-image-generator/webui"
)

// Compile-time check that Provider satisfies the server's interface.
var _ webui.AuthProvider = (*Provider)(nil)

// Provider bundles the AuthMiddleware with its login/logout handlers
// behind the interface the web server consumes.
//
// Usage:
//
//	m, err := auth.NewAuthMiddleware(password, logger)
//	server, err := webui.NewServer(cfg, api, auth.NewProvider(m), logger)
type Provider struct {
	m *AuthMiddleware
}

// NewProvider wraps an AuthMiddleware as a webui.AuthProvider.
func NewProvider(m *AuthMiddleware) *Provider {
	return &Provider{m: m}
}

// Middleware wraps an http.Handler with session authentication.
func (p *Provider) Middleware(next http.Handler) http.Handler {
	return p.m.Middleware(next)
}

// MiddlewareFunc wraps an http.HandlerFunc with session authentication.
func (p *Provider) MiddlewareFunc(next http.HandlerFunc) http.HandlerFunc {
	return p.m.RequireAuth(next)
}

// LoginHandler returns the handler for the /login page.
func (p *Provider) LoginHandler() http.HandlerFunc {
	return LoginHandler(p.m)
}

// LogoutHandler returns the handler for /logout.
func (p *Provider) LogoutHandler() http.HandlerFunc {
	return LogoutHandler(p.m)
}

// AuthMiddleware returns the underlying middleware for direct access.
func (p *Provider) AuthMiddleware() *AuthMiddleware {
	return p.m
}
