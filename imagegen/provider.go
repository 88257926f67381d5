package imagegen

import (
	"context"

	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"
)

// Image is one generated image as returned by a provider.
type Image struct {
	// Data is the raw encoded image.
	Data []byte

	// ContentType is the MIME type reported by the provider,
	// e.g. "image/png" or "image/jpeg".
	ContentType string

	// Width and Height are the decoded pixel dimensions. Zero when
	// the image header could not be parsed.
	Width  int
	Height int
}

// Provider is the interface for image generation backends. Each call
// produces exactly one image; multi-image requests are handled by the
// Generator issuing sequential calls.
//
// Implementations must be safe for concurrent use and must return
// *APIError for endpoint failures so callers can classify them.
type Provider interface {
	// GenerateImage creates one image from the given request.
	// The request's NumImages field is ignored at this level.
	GenerateImage(ctx context.Context, req promptgen.GenerationRequest) (*Image, error)

	// Name identifies the provider in logs and status output.
	Name() string
}
