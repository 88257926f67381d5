// Package imagegen calls hosted text-to-image inference endpoints and
// turns validated generation requests into image bytes.
//
// errors.go defines the APIError taxonomy shared by all providers.
// Every provider failure is classified into a kind so the UI can show
// an actionable message instead of a raw HTTP status.
package imagegen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a provider failure.
type ErrorKind string

const (
	// KindTimeout means the request exceeded its deadline or the
	// context was cancelled while waiting for the endpoint.
	KindTimeout ErrorKind = "timeout"

	// KindAuthFailure means the endpoint rejected the credential
	// (HTTP 401 or 403). Not retryable; the token must be fixed.
	KindAuthFailure ErrorKind = "auth_failure"

	// KindRateLimited means the endpoint returned HTTP 429.
	KindRateLimited ErrorKind = "rate_limited"

	// KindModelLoading means the endpoint returned 503 with an
	// estimated_time payload: the model is cold and warming up.
	KindModelLoading ErrorKind = "model_loading"

	// KindServiceUnavailable covers other 5xx responses.
	KindServiceUnavailable ErrorKind = "service_unavailable"

	// KindBadRequest means the endpoint rejected the request payload
	// (4xx other than auth/rate-limit). Not retryable.
	KindBadRequest ErrorKind = "bad_request"

	// KindUnknown covers everything else, including malformed
	// responses and transport errors that are not timeouts.
	KindUnknown ErrorKind = "unknown"
)

// APIError is a classified failure from an image generation endpoint.
type APIError struct {
	// Kind is the failure classification.
	Kind ErrorKind

	// Status is the HTTP status code, or 0 for transport errors.
	Status int

	// Detail is a human-readable description, safe to show in the UI.
	Detail string

	// EstimatedTime is the endpoint's reported warm-up time in
	// seconds. Only set for KindModelLoading.
	EstimatedTime float64
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("imagegen: %s (HTTP %d): %s", e.Kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("imagegen: %s: %s", e.Kind, e.Detail)
}

// Retryable reports whether retrying the same request may succeed.
// Timeouts, cold models and 5xx responses are transient; auth failures,
// rate limits and bad requests are not.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindModelLoading, KindServiceUnavailable:
		return true
	default:
		return false
	}
}

// UserMessage returns a message suitable for direct display.
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindTimeout:
		return "The image service took too long to respond. Try again, or lower the step count."
	case KindAuthFailure:
		return "The API credential was rejected. Check the configured token."
	case KindRateLimited:
		return "Rate limit reached. Wait a moment before generating again."
	case KindModelLoading:
		if e.EstimatedTime > 0 {
			return fmt.Sprintf("The model is warming up (about %.0f seconds). Try again shortly.", e.EstimatedTime)
		}
		return "The model is warming up. Try again shortly."
	case KindServiceUnavailable:
		return "The image service is temporarily unavailable. Try again shortly."
	case KindBadRequest:
		return "The image service rejected the request: " + e.Detail
	default:
		return "Image generation failed: " + e.Detail
	}
}

// IsAPIError checks whether err is (or wraps) an *APIError.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ClassifyStatus maps an HTTP status code and response detail to an
// APIError. detail should be a short excerpt of the response body.
func ClassifyStatus(status int, detail string) *APIError {
	kind := KindUnknown
	switch {
	case status == 401 || status == 403:
		kind = KindAuthFailure
	case status == 429:
		kind = KindRateLimited
	case status >= 500:
		kind = KindServiceUnavailable
	case status >= 400:
		kind = KindBadRequest
	}
	return &APIError{Kind: kind, Status: status, Detail: detail}
}
