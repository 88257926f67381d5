// Package metrics provides pure data types for generation statistics.
// This file contains atom-level type definitions with no behavior.
package metrics

import "time"

// GenerationRecord represents a single generation request outcome.
// This is a pure data structure for tracking individual requests.
type GenerationRecord struct {
	// ID is the unique identifier for this request
	ID string `json:"id"`

	// Style is the style preset the request used
	Style string `json:"style"`

	// Provider names the backend that handled the request
	Provider string `json:"provider"`

	// Status indicates the outcome: "success" or "error"
	Status string `json:"status"`

	// StartTime is when the request began
	StartTime time.Time `json:"start_time"`

	// EndTime is when the request completed
	EndTime time.Time `json:"end_time,omitempty"`

	// Duration is the total request time
	Duration time.Duration `json:"duration"`

	// ImageCount is the number of images produced (0 on error)
	ImageCount int `json:"image_count"`

	// ErrorKind classifies the failure if Status is "error"
	ErrorKind string `json:"error_kind,omitempty"`

	// ErrorMsg contains error details if Status is "error"
	ErrorMsg string `json:"error_msg,omitempty"`
}

// SystemStatus represents the overall application health and status.
// This is a pure data structure with no behavior.
type SystemStatus struct {
	// Health indicates the system state: "running", "error", "stopped"
	Health string `json:"health"`

	// Version is the application version string
	Version string `json:"version"`

	// Uptime is the duration since the application started
	Uptime time.Duration `json:"uptime"`

	// LastCheck is the timestamp of the last health check
	LastCheck time.Time `json:"last_check"`
}

// GenerationMetrics represents aggregated generation statistics.
// This is a pure data structure with no behavior.
type GenerationMetrics struct {
	// TotalRequests is the total number of generation requests
	TotalRequests int64 `json:"total_requests"`

	// TotalSuccess is the count of successfully completed requests
	TotalSuccess int64 `json:"total_success"`

	// TotalErrors is the count of failed requests
	TotalErrors int64 `json:"total_errors"`

	// TotalImages is the count of images produced across all requests
	TotalImages int64 `json:"total_images"`

	// AvgDuration is the average request time across all requests
	AvgDuration time.Duration `json:"avg_duration"`

	// ByStyle contains per-style statistics
	ByStyle map[string]*StyleMetrics `json:"by_style"`
}

// StyleMetrics represents statistics for a specific style preset.
// This is a pure data structure with no behavior.
type StyleMetrics struct {
	// Count is the total number of requests using this style
	Count int64 `json:"count"`

	// SuccessRate is the percentage of successful requests (0-100)
	SuccessRate float64 `json:"success_rate"`

	// AvgDuration is the average request time for this style
	AvgDuration time.Duration `json:"avg_duration"`
}

// Status constants for GenerationRecord
const (
	GenerationStatusSuccess = "success"
	GenerationStatusError   = "error"
)

// Health constants for SystemStatus
const (
	SystemHealthRunning = "running"
	SystemHealthError   = "error"
	SystemHealthStopped = "stopped"
)
