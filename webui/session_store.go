// Package webui provides the web-based user interface for the image
// generator. This file contains the session store molecule for managing
// browser sessions.
package webui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
	"github.com/bhavyasri23-dev/ai-image-generator/history"
)

// ErrSessionNotFound is returned when a session ID is not found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned when a session exists but has expired.
var ErrSessionExpired = errors.New("session expired")

// UISession is a browser session together with its session-scoped state.
// Each session owns its own generation history; histories are never
// shared between sessions and vanish when the session expires.
//
// The generating flag enforces one in-flight generation per session:
// a second submission while one is running is rejected rather than
// queued.
type UISession struct {
	core.Session

	// History holds this session's generation results. In-memory only.
	History *history.Store

	mu         sync.Mutex
	generating bool
}

// TryBeginGeneration marks the session as having a generation in
// flight. Returns false if one is already running.
func (s *UISession) TryBeginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

// EndGeneration clears the in-flight flag. Safe to call even if no
// generation was in flight.
func (s *UISession) EndGeneration() {
	s.mu.Lock()
	s.generating = false
	s.mu.Unlock()
}

// Generating reports whether a generation is currently in flight.
func (s *UISession) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// SessionStore manages browser sessions with thread-safe operations.
// It composes the Session and GenerateSessionID atoms from the core
// package and attaches a history.Store to each session it creates.
//
// Molecule composition:
//   - core.Session: Session data structure with expiry tracking
//   - core.GenerateSessionID: Cryptographically secure ID generation
//   - history.Store: Per-session generation history
//
// Thread safety is provided via sync.RWMutex for concurrent access.
type SessionStore struct {
	mu           sync.RWMutex
	sessions     map[string]*UISession
	ttl          time.Duration
	historyLimit int
}

// NewSessionStore creates a new SessionStore with the given session TTL
// and per-session history capacity.
//
// Parameters:
//   - ttl: Duration until sessions expire (use core.DefaultSessionDuration for 24h)
//   - historyLimit: Max history entries per session (<=0 uses history.DefaultLimit)
//
// Returns a ready-to-use SessionStore.
func NewSessionStore(ttl time.Duration, historyLimit int) *SessionStore {
	return &SessionStore{
		sessions:     make(map[string]*UISession),
		ttl:          ttl,
		historyLimit: historyLimit,
	}
}

// Create generates a new session with a cryptographically secure ID and
// a fresh, empty history store.
//
// This method composes:
//   - core.GenerateSessionID() for secure random ID generation
//   - core.NewSessionWithDuration() for session creation with custom TTL
//
// Returns the created session or an error if ID generation fails.
func (s *SessionStore) Create() (*UISession, error) {
	id, err := core.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	session := &UISession{
		Session: core.NewSessionWithDuration(id, s.ttl),
		History: history.NewStore(s.historyLimit),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session, nil
}

// Get retrieves a session by ID, checking for expiration.
// Returns ErrSessionNotFound if the session doesn't exist.
// Returns ErrSessionExpired if the session exists but has expired.
//
// Expired sessions are automatically removed from the store, taking
// their history with them.
func (s *SessionStore) Get(sessionID string) (*UISession, error) {
	s.mu.RLock()
	session, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Delete removes a session from the store.
// This is used for explicit logout functionality.
// No error is returned if the session doesn't exist (idempotent operation).
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Cleanup removes all expired sessions from the store.
// Returns the number of sessions that were removed.
//
// This method should be called periodically to prevent memory growth
// from abandoned sessions. Use StartCleanupTicker for automatic cleanup.
func (s *SessionStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// StartCleanupTicker starts a background goroutine that periodically
// calls Cleanup to remove expired sessions.
//
// The ticker stops when the provided context is cancelled.
// This is typically called during application startup with a context
// that's cancelled on shutdown.
func (s *SessionStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

// Count returns the current number of sessions in the store.
// This is useful for monitoring and debugging.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
