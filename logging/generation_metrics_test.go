package logging

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func testMetrics() GenerationMetrics {
	return GenerationMetrics{
		Provider:      "huggingface",
		Model:         "stabilityai/stable-diffusion-xl-base-1.0",
		Style:         "Fantasy",
		Width:         768,
		Height:        768,
		Steps:         30,
		GuidanceScale: 8.5,
		ImageCount:    2,
		Duration:      12 * time.Second,
	}
}

func TestGenerationMetrics_MarshalLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	if err := testMetrics().MarshalLogObject(enc); err != nil {
		t.Fatalf("MarshalLogObject failed: %v", err)
	}

	// The map encoder stores int-typed fields as native ints; only
	// duration_ms goes through AddInt64.
	checks := map[string]interface{}{
		"provider":       "huggingface",
		"model":          "stabilityai/stable-diffusion-xl-base-1.0",
		"style":          "Fantasy",
		"width":          768,
		"height":         768,
		"steps":          30,
		"guidance_scale": 8.5,
		"image_count":    2,
	}
	for key, want := range checks {
		if got := enc.Fields[key]; got != want {
			t.Errorf("field %q = %v, want %v", key, got, want)
		}
	}

	// Duration is encoded in milliseconds for readability
	if got := enc.Fields["duration_ms"]; got != int64(12000) {
		t.Errorf("duration_ms = %v, want 12000", got)
	}
}

func TestGenerationFields_NestsMetricsUnderGenerationKey(t *testing.T) {
	field := GenerationFields(testMetrics())

	if field.Key != "generation" {
		t.Errorf("field key = %q, want %q", field.Key, "generation")
	}
	if field.Type != zapcore.ObjectMarshalerType {
		t.Errorf("field type = %v, want ObjectMarshalerType", field.Type)
	}

	enc := zapcore.NewMapObjectEncoder()
	field.AddTo(enc)

	nested, ok := enc.Fields["generation"].(map[string]interface{})
	if !ok {
		t.Fatalf("generation field did not encode as a nested object: %T", enc.Fields["generation"])
	}
	if nested["provider"] != "huggingface" {
		t.Errorf("nested provider = %v, want huggingface", nested["provider"])
	}
	if nested["image_count"] != 2 {
		t.Errorf("nested image_count = %v, want 2", nested["image_count"])
	}
}

func TestTimingFields(t *testing.T) {
	start := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	fields := TimingFields(start, end)
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	gotStart, ok := enc.Fields["start_time"].(time.Time)
	if !ok || !gotStart.Equal(start) {
		t.Errorf("start_time = %v, want %v", enc.Fields["start_time"], start)
	}
	gotEnd, ok := enc.Fields["end_time"].(time.Time)
	if !ok || !gotEnd.Equal(end) {
		t.Errorf("end_time = %v, want %v", enc.Fields["end_time"], end)
	}
	if got := enc.Fields["duration"]; got != 1500*time.Millisecond {
		t.Errorf("duration = %v, want 1.5s", got)
	}
}
