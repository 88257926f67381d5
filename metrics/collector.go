// Package metrics provides the MetricsCollector interface for
// aggregating generation statistics.
package metrics

// MetricsCollector defines the interface for recording and querying
// generation metrics.
//
// Implementation notes:
//   - Methods must be safe for concurrent use
//   - Zero values should be returned for unavailable metrics
type MetricsCollector interface {
	// RecordGeneration logs a completed generation request.
	RecordGeneration(record GenerationRecord)

	// GetGenerationMetrics returns aggregated request statistics.
	GetGenerationMetrics() GenerationMetrics

	// GetRecentGenerations returns the N most recent request records,
	// newest first.
	GetRecentGenerations(limit int) []GenerationRecord

	// GetSystemStatus returns the overall application health status.
	GetSystemStatus() SystemStatus
}
