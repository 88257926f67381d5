// Package logging provides structured logging for the image generator.
// This file defines generation metrics as a zapcore.ObjectMarshaler so
// completed requests can be logged as one nested object.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GenerationMetrics captures the shape and outcome of one image
// generation request for structured logging.
//
// Example:
//
//	metrics := logging.GenerationMetrics{
//		Provider:      "huggingface",
//		Model:         "stabilityai/stable-diffusion-xl-base-1.0",
//		Style:         "Fantasy",
//		Width:         768,
//		Height:        768,
//		Steps:         30,
//		GuidanceScale: 8.5,
//		ImageCount:    2,
//		Duration:      12 * time.Second,
//	}
//	logger.Info("generation complete", logging.GenerationFields(metrics))
type GenerationMetrics struct {
	// Provider names the backend that handled the request
	Provider string `json:"provider"`

	// Model is the model identifier sent to the endpoint
	Model string `json:"model"`

	// Style is the applied style preset
	Style string `json:"style"`

	// Width and Height are the requested image dimensions
	Width  int `json:"width"`
	Height int `json:"height"`

	// Steps is the number of inference steps
	Steps int `json:"steps"`

	// GuidanceScale is the prompt adherence setting
	GuidanceScale float64 `json:"guidance_scale"`

	// ImageCount is the number of images produced
	ImageCount int `json:"image_count"`

	// Duration is the wall-clock time for the whole request
	Duration time.Duration `json:"duration"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler so the metrics
// appear as a nested JSON object in log output. Duration is encoded in
// milliseconds for readability.
func (m GenerationMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("provider", m.Provider)
	enc.AddString("model", m.Model)
	enc.AddString("style", m.Style)
	enc.AddInt("width", m.Width)
	enc.AddInt("height", m.Height)
	enc.AddInt("steps", m.Steps)
	enc.AddFloat64("guidance_scale", m.GuidanceScale)
	enc.AddInt("image_count", m.ImageCount)
	enc.AddInt64("duration_ms", m.Duration.Milliseconds())
	return nil
}

// GenerationFields wraps GenerationMetrics in a ready-to-use zap.Field.
func GenerationFields(metrics GenerationMetrics) zap.Field {
	return zap.Object("generation", metrics)
}

// TimingFields creates a slice of zap fields for request timing.
//
// Example:
//
//	start := time.Now()
//	// ... generate ...
//	logger.Info("timing", logging.TimingFields(start, time.Now())...)
func TimingFields(startTime, endTime time.Time) []zap.Field {
	return []zap.Field{
		zap.Time("start_time", startTime),
		zap.Time("end_time", endTime),
		zap.Duration("duration", endTime.Sub(startTime)),
	}
}
