// Package history keeps per-session generation history in memory.
// History is deliberately non-durable: each browser session owns one
// Store, and everything is gone when the session expires or the
// process restarts.
package history

import (
	"sync"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/imagegen"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"

	"github.com/google/uuid"
)

// DefaultLimit is the number of entries a store keeps before evicting
// the oldest.
const DefaultLimit = 50

// Entry is one completed generation: the request that produced it, the
// resulting images and timing metadata.
type Entry struct {
	// ID uniquely identifies the entry within its session.
	ID string

	// CreatedAt is when the generation completed.
	CreatedAt time.Time

	// Request is the validated request the images were made from.
	Request promptgen.GenerationRequest

	// Images holds the generated images in request order.
	Images []imagegen.Image

	// Elapsed is the wall-clock generation time.
	Elapsed time.Duration

	// Provider names the backend that produced the images.
	Provider string
}

// Summary is the JSON-friendly view of an Entry without image bytes.
type Summary struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UserPrompt    string    `json:"user_prompt"`
	Prompt        string    `json:"prompt"`
	Style         string    `json:"style"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Steps         int       `json:"steps"`
	GuidanceScale float64   `json:"guidance_scale"`
	ImageCount    int       `json:"image_count"`
	ElapsedMS     int64     `json:"elapsed_ms"`
	Provider      string    `json:"provider"`
}

// Summarize returns the entry's listing view.
func (e *Entry) Summarize() Summary {
	return Summary{
		ID:            e.ID,
		CreatedAt:     e.CreatedAt,
		UserPrompt:    e.Request.UserPrompt,
		Prompt:        e.Request.Prompt,
		Style:         string(e.Request.Style),
		Width:         e.Request.Width,
		Height:        e.Request.Height,
		Steps:         e.Request.Steps,
		GuidanceScale: e.Request.GuidanceScale,
		ImageCount:    len(e.Images),
		ElapsedMS:     e.Elapsed.Milliseconds(),
		Provider:      e.Provider,
	}
}

// Store holds one session's history, newest first, capped at a fixed
// limit.
//
// Thread safety: all methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []*Entry
	limit   int
}

// NewStore creates a Store that keeps at most limit entries. A
// non-positive limit falls back to DefaultLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{limit: limit}
}

// Add records a completed generation and returns the stored entry.
// The newest entry is always first; when the store is full the oldest
// entry is evicted.
func (s *Store) Add(result *imagegen.GenerationResult) *Entry {
	entry := &Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Request:   result.Request,
		Images:    result.Images,
		Elapsed:   result.Elapsed,
		Provider:  result.Provider,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]*Entry{entry}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return entry
}

// List returns summaries of all entries, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, len(s.entries))
	for i, e := range s.entries {
		summaries[i] = e.Summarize()
	}
	return summaries
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Image returns image index of the entry with the given ID.
func (s *Store) Image(id string, index int) (*imagegen.Image, bool) {
	entry, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	if index < 0 || index >= len(entry.Images) {
		return nil, false
	}
	return &entry.Images[index], true
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Limit returns the store's capacity.
func (s *Store) Limit() int {
	return s.limit
}
