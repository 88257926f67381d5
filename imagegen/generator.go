// generator.go orchestrates the generation pipeline: it issues one
// provider call per requested image, applies bounded retries to
// transient failures, and decodes the dimensions of each result.
package imagegen

import (
	"context"
	"fmt"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
	"github.com/bhavyasri23-dev/ai-image-generator/logging"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator wraps a Provider with multi-image fan-out and retry
// behavior. Providers generate one image per call; the Generator calls
// sequentially so a multi-image request cannot burst the endpoint's
// rate limit.
//
// Thread safety: safe for concurrent use.
type Generator struct {
	provider   Provider
	logger     *logging.Logger
	model      string
	maxRetries int
	retryDelay time.Duration
}

// GenerationResult is the outcome of a completed request.
type GenerationResult struct {
	// Images holds the generated images in request order.
	Images []Image

	// Elapsed is the wall-clock time for the whole request,
	// including retries.
	Elapsed time.Duration

	// Provider names the backend that produced the images.
	Provider string

	// Request is the validated request the images were made from.
	Request promptgen.GenerationRequest
}

// NewGenerator creates a Generator around the given provider. Retry
// counts and delays come from the application config.
func NewGenerator(provider Provider, logger *logging.Logger, cfg *core.Config) (*Generator, error) {
	if provider == nil {
		return nil, fmt.Errorf("imagegen: provider cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("imagegen: logger cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("imagegen: config cannot be nil")
	}

	model := cfg.Model
	if cfg.UsesOpenAIProvider() {
		model = cfg.OpenAIImageModel
	}

	return &Generator{
		provider:   provider,
		logger:     logger.Named("generator"),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// NewGeneratorFromConfig creates a Generator with automatic provider
// selection: an OpenAI API endpoint gets the DALL-E provider, anything
// else is treated as a Hugging Face style inference endpoint.
func NewGeneratorFromConfig(cfg *core.Config, logger *logging.Logger) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("imagegen: config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("imagegen: logger cannot be nil")
	}

	var provider Provider
	var err error
	if cfg.UsesOpenAIProvider() {
		logger.Info("using OpenAI provider for image generation",
			zap.String("model", cfg.OpenAIImageModel))
		provider, err = NewOpenAIProvider(cfg, logger)
	} else {
		logger.Info("using Hugging Face inference provider",
			zap.String("model", cfg.Model))
		provider, err = NewHFProvider(cfg, logger)
	}
	if err != nil {
		return nil, err
	}

	return NewGenerator(provider, logger, cfg)
}

// Generate produces req.NumImages images from the request.
//
// Images are generated one provider call at a time. If any call fails
// after retries, the whole request fails; no partial result is
// returned. Transient failures (timeouts, cold model, 5xx) are retried
// up to the configured limit with a fixed delay between attempts;
// auth failures, rate limits and bad requests fail immediately.
func (g *Generator) Generate(ctx context.Context, req promptgen.GenerationRequest) (*GenerationResult, error) {
	correlationID := uuid.NewString()
	log := g.logger.With(zap.String("correlation_id", correlationID))

	log.Info("starting image generation",
		zap.String("prompt_preview", truncateText(req.Prompt, 80)),
		zap.String("style", string(req.Style)),
		zap.Int("width", req.Width),
		zap.Int("height", req.Height),
		zap.Int("steps", req.Steps),
		zap.Float64("guidance_scale", req.GuidanceScale),
		zap.Int("num_images", req.NumImages),
		zap.String("provider", g.provider.Name()))

	start := time.Now()
	images := make([]Image, 0, req.NumImages)

	for i := 0; i < req.NumImages; i++ {
		img, err := g.generateWithRetry(ctx, req, log.With(zap.Int("image_index", i)))
		if err != nil {
			log.Error("image generation failed",
				zap.Int("image_index", i),
				zap.Int("completed", len(images)),
				zap.Error(err))
			return nil, err
		}

		if w, h, dimErr := DecodeDimensions(img.Data); dimErr == nil {
			img.Width = w
			img.Height = h
		} else {
			log.Warn("could not decode image dimensions", zap.Error(dimErr))
		}

		images = append(images, *img)
	}

	elapsed := time.Since(start)
	log.Info("image generation complete",
		logging.GenerationFields(logging.GenerationMetrics{
			Provider:      g.provider.Name(),
			Model:         g.model,
			Style:         string(req.Style),
			Width:         req.Width,
			Height:        req.Height,
			Steps:         req.Steps,
			GuidanceScale: req.GuidanceScale,
			ImageCount:    len(images),
			Duration:      elapsed,
		}))

	return &GenerationResult{
		Images:   images,
		Elapsed:  elapsed,
		Provider: g.provider.Name(),
		Request:  req,
	}, nil
}

// generateWithRetry runs one provider call with bounded retries.
// Only failures marked retryable are attempted again.
func (g *Generator) generateWithRetry(ctx context.Context, req promptgen.GenerationRequest, log *logging.Logger) (*Image, error) {
	var lastErr error

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			log.Info("retrying image generation",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", g.maxRetries))

			select {
			case <-ctx.Done():
				return nil, &APIError{Kind: KindTimeout, Detail: "cancelled while waiting to retry"}
			case <-time.After(g.retryDelay):
			}
		}

		img, err := g.provider.GenerateImage(ctx, req)
		if err == nil {
			return img, nil
		}
		lastErr = err

		apiErr, ok := IsAPIError(err)
		if !ok || !apiErr.Retryable() {
			return nil, err
		}
		log.Warn("transient generation failure",
			zap.String("kind", string(apiErr.Kind)),
			zap.Int("status", apiErr.Status),
			zap.Error(err))
	}

	return nil, lastErr
}

// Provider returns the underlying provider.
func (g *Generator) Provider() Provider {
	return g.provider
}
