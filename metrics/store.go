// Package metrics provides the MetricsStore organism for in-memory
// metrics storage. The store keeps a circular buffer of recent request
// records plus running aggregates; nothing is persisted.
package metrics

import (
	"sync"
	"time"
)

// MetricsStore is the in-memory MetricsCollector implementation.
//
// Usage:
//
//	store := NewMetricsStore(DefaultStoreConfig(), time.Now())
//	store.RecordGeneration(record)
//	metrics := store.GetGenerationMetrics()
type MetricsStore struct {
	mu sync.RWMutex

	// Request history (circular buffer of recent records)
	history []GenerationRecord
	cap     int
	head    int // write index
	size    int // current number of records

	// Aggregates
	totalRequests int64
	totalSuccess  int64
	totalErrors   int64
	totalImages   int64
	totalDuration time.Duration
	byStyle       map[string]*styleStats

	// System metadata
	startTime time.Time
	version   string
}

// styleStats holds per-style aggregation data
type styleStats struct {
	count         int64
	successCount  int64
	totalDuration time.Duration
}

// StoreConfig configures the MetricsStore behavior.
type StoreConfig struct {
	// HistoryCapacity is the max number of records to retain
	HistoryCapacity int
	// Version is the application version string
	Version string
}

// DefaultStoreConfig returns a default configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		HistoryCapacity: 100,
		Version:         "0.0.0",
	}
}

// NewMetricsStore creates a MetricsStore with the given configuration.
// startTime is used to calculate uptime.
func NewMetricsStore(config StoreConfig, startTime time.Time) *MetricsStore {
	capacity := config.HistoryCapacity
	if capacity < 1 {
		capacity = 100
	}

	return &MetricsStore{
		history:   make([]GenerationRecord, capacity),
		cap:       capacity,
		byStyle:   make(map[string]*styleStats),
		startTime: startTime,
		version:   config.Version,
	}
}

// RecordGeneration logs a completed generation request.
func (s *MetricsStore) RecordGeneration(record GenerationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Add to circular buffer
	s.history[s.head] = record
	s.head = (s.head + 1) % s.cap
	if s.size < s.cap {
		s.size++
	}

	// Update aggregates
	s.totalRequests++
	s.totalDuration += record.Duration
	s.totalImages += int64(record.ImageCount)
	if record.Status == GenerationStatusSuccess {
		s.totalSuccess++
	} else if record.Status == GenerationStatusError {
		s.totalErrors++
	}

	stats, ok := s.byStyle[record.Style]
	if !ok {
		stats = &styleStats{}
		s.byStyle[record.Style] = stats
	}
	stats.count++
	if record.Status == GenerationStatusSuccess {
		stats.successCount++
	}
	stats.totalDuration += record.Duration
}

// GetGenerationMetrics returns aggregated request statistics.
func (s *MetricsStore) GetGenerationMetrics() GenerationMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := GenerationMetrics{
		TotalRequests: s.totalRequests,
		TotalSuccess:  s.totalSuccess,
		TotalErrors:   s.totalErrors,
		TotalImages:   s.totalImages,
		ByStyle:       make(map[string]*StyleMetrics),
	}

	if s.totalRequests > 0 {
		metrics.AvgDuration = s.totalDuration / time.Duration(s.totalRequests)
	}

	for style, stats := range s.byStyle {
		var successRate float64
		var avgDuration time.Duration
		if stats.count > 0 {
			successRate = float64(stats.successCount) / float64(stats.count) * 100
			avgDuration = stats.totalDuration / time.Duration(stats.count)
		}

		metrics.ByStyle[style] = &StyleMetrics{
			Count:       stats.count,
			SuccessRate: successRate,
			AvgDuration: avgDuration,
		}
	}

	return metrics
}

// GetRecentGenerations returns the N most recent records, newest first.
// If limit exceeds available records, all available are returned.
func (s *MetricsStore) GetRecentGenerations(limit int) []GenerationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.size == 0 {
		return []GenerationRecord{}
	}
	if limit > s.size {
		limit = s.size
	}

	// Walk backwards from the write head so the newest record is first
	result := make([]GenerationRecord, limit)
	for i := 0; i < limit; i++ {
		idx := (s.head - 1 - i + s.cap) % s.cap
		result[i] = s.history[idx]
	}
	return result
}

// GetSystemStatus returns the overall application health status.
func (s *MetricsStore) GetSystemStatus() SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SystemStatus{
		Health:    SystemHealthRunning,
		Version:   s.version,
		Uptime:    time.Since(s.startTime),
		LastCheck: time.Now(),
	}
}

// Verify MetricsStore implements MetricsCollector interface
var _ MetricsCollector = (*MetricsStore)(nil)
