// openai_provider.go implements the OpenAI DALL-E provider as an
// alternative backend. Selected automatically when the configured
// endpoint is an OpenAI API URL.
package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
	"github.com/bhavyasri23-dev/ai-image-generator/logging"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider for OpenAI DALL-E image
// generation. Images are requested as base64 so no second download
// round-trip is needed.
//
// Thread safety: safe for concurrent use; the go-openai client handles
// connection pooling.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	logger *logging.Logger
}

// NewOpenAIProvider creates an OpenAI image provider from the
// application config. Returns an error if no OpenAI API key is
// configured or the endpoint is a local host.
func NewOpenAIProvider(cfg *core.Config, logger *logging.Logger) (*OpenAIProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("imagegen: config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("imagegen: logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("imagegen: OPENAI_API_KEY is required for the OpenAI provider")
	}

	endpoint := cfg.ImageAPIBaseURL
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1"
	}
	if IsLocalEndpoint(endpoint) {
		return nil, fmt.Errorf("imagegen: local endpoint (%s) does not support DALL-E generation", endpoint)
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	clientConfig.BaseURL = endpoint
	clientConfig.HTTPClient = core.GetHTTPClient(cfg, cfg.APITimeout)

	model := cfg.OpenAIImageModel
	if model == "" {
		model = "dall-e-3"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.Named("openai-provider"),
	}, nil
}

// GenerateImage creates one image via the DALL-E API.
//
// DALL-E supports a fixed set of sizes, so the requested resolution is
// mapped to the nearest supported size rather than passed through.
// Steps and guidance scale have no DALL-E equivalent and are ignored.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, req promptgen.GenerationRequest) (*Image, error) {
	imageReq := openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          p.model,
		Size:           p.mapSize(req.Width, req.Height),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	}
	if p.model == "dall-e-3" {
		imageReq.Style = openai.CreateImageStyleVivid
	}

	response, err := p.client.CreateImage(ctx, imageReq)
	if err != nil {
		return nil, p.classifyError(ctx, err)
	}

	if len(response.Data) == 0 {
		return nil, &APIError{Kind: KindUnknown, Detail: "OpenAI returned no image data"}
	}
	if response.Data[0].B64JSON == "" {
		return nil, &APIError{Kind: KindUnknown, Detail: "OpenAI returned empty image payload"}
	}

	data, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Detail: "decoding base64 image: " + err.Error()}
	}

	return &Image{Data: data, ContentType: "image/png"}, nil
}

// mapSize picks the supported DALL-E size closest in shape to the
// requested resolution.
func (p *OpenAIProvider) mapSize(width, height int) string {
	if p.model == "dall-e-3" {
		switch {
		case width > height:
			return "1792x1024"
		case height > width:
			return "1024x1792"
		default:
			return "1024x1024"
		}
	}
	// dall-e-2 sizes
	switch {
	case width <= 256 && height <= 256:
		return "256x256"
	case width <= 512 && height <= 512:
		return "512x512"
	default:
		return "1024x1024"
	}
}

// classifyError maps go-openai errors onto the shared APIError
// taxonomy.
func (p *OpenAIProvider) classifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Detail: "request deadline exceeded"}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return ClassifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return ClassifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}

	return &APIError{Kind: KindUnknown, Detail: err.Error()}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the configured image model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

var _ Provider = (*OpenAIProvider)(nil)
