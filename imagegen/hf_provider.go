// hf_provider.go implements the Hugging Face Inference API provider.
//
// The Inference API takes a JSON payload of the form
//
//	{"inputs": "<prompt>", "parameters": {...}}
//
// and responds with raw image bytes on success, or a JSON error body
// on failure. A cold model answers 503 with an estimated_time field.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
	"github.com/bhavyasri23-dev/ai-image-generator/logging"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"

	"go.uber.org/zap"
)

// maxErrorBodyBytes bounds how much of an error response body is read
// for classification.
const maxErrorBodyBytes = 4 << 10

// HFProvider implements Provider against the Hugging Face Inference
// API (or any endpoint speaking the same protocol, such as a dedicated
// inference endpoint).
//
// Thread safety: HFProvider is safe for concurrent use; the underlying
// http.Client handles connection pooling.
type HFProvider struct {
	endpoint   string
	credential string
	httpClient *http.Client
	logger     *logging.Logger
}

// inferencePayload is the request body for the Inference API.
type inferencePayload struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

// inferenceError is the JSON error body the Inference API returns on
// failure. EstimatedTime is only present on cold-model 503s.
type inferenceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// NewHFProvider creates a Hugging Face Inference API provider from the
// application config.
func NewHFProvider(cfg *core.Config, logger *logging.Logger) (*HFProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("imagegen: config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("imagegen: logger cannot be nil")
	}
	if cfg.Credential() == "" {
		return nil, fmt.Errorf("imagegen: API credential is required")
	}

	return &HFProvider{
		endpoint:   cfg.EndpointURL(),
		credential: cfg.Credential(),
		httpClient: core.GetHTTPClient(cfg, cfg.APITimeout),
		logger:     logger.Named("hf-provider"),
	}, nil
}

// NewHFProviderWithClient creates a provider with an explicit endpoint,
// credential and HTTP client. Used by tests and custom wiring.
func NewHFProviderWithClient(endpoint, credential string, client *http.Client, logger *logging.Logger) *HFProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HFProvider{
		endpoint:   endpoint,
		credential: credential,
		httpClient: client,
		logger:     logger.Named("hf-provider"),
	}
}

// GenerateImage posts the request to the inference endpoint and returns
// the generated image bytes.
//
// Responses are interpreted as follows:
//   - 200 with an image content type: success
//   - 401/403: KindAuthFailure
//   - 429: KindRateLimited
//   - 503 with estimated_time: KindModelLoading
//   - other 5xx: KindServiceUnavailable
//   - deadline exceeded or cancellation: KindTimeout
func (p *HFProvider) GenerateImage(ctx context.Context, req promptgen.GenerationRequest) (*Image, error) {
	payload := inferencePayload{
		Inputs: req.Prompt,
		Parameters: inferenceParameters{
			NegativePrompt:    req.NegativePrompt,
			Width:             req.Width,
			Height:            req.Height,
			NumInferenceSteps: req.Steps,
			GuidanceScale:     req.GuidanceScale,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("imagegen: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("imagegen: building request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.credential)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "image/png")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &APIError{Kind: KindTimeout, Detail: "request deadline exceeded"}
		}
		if errors.Is(err, context.Canceled) {
			return nil, &APIError{Kind: KindTimeout, Detail: "request cancelled"}
		}
		return nil, &APIError{Kind: KindUnknown, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.classifyError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		// A 200 with a non-image body is a protocol violation;
		// surface an excerpt for debugging.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{
			Kind:   KindUnknown,
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("expected image response, got %q: %s", contentType, truncateText(string(excerpt), 200)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Detail: "reading image body: " + err.Error()}
	}
	if len(data) == 0 {
		return nil, &APIError{Kind: KindUnknown, Status: resp.StatusCode, Detail: "empty image body"}
	}

	p.logger.Debug("image received",
		zap.Int("bytes", len(data)),
		zap.String("content_type", contentType))

	return &Image{Data: data, ContentType: contentType}, nil
}

// classifyError reads the JSON error body and maps the response to an
// APIError. A 503 carrying estimated_time is a cold model, which is
// retryable unlike a plain outage.
func (p *HFProvider) classifyError(resp *http.Response) *APIError {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var body inferenceError
	detail := truncateText(strings.TrimSpace(string(excerpt)), 200)
	if json.Unmarshal(excerpt, &body) == nil && body.Error != "" {
		detail = body.Error
	}

	if resp.StatusCode == http.StatusServiceUnavailable && body.EstimatedTime > 0 {
		return &APIError{
			Kind:          KindModelLoading,
			Status:        resp.StatusCode,
			Detail:        detail,
			EstimatedTime: body.EstimatedTime,
		}
	}

	return ClassifyStatus(resp.StatusCode, detail)
}

// Name implements Provider.
func (p *HFProvider) Name() string {
	return "huggingface"
}

// Endpoint returns the configured inference URL.
func (p *HFProvider) Endpoint() string {
	return p.endpoint
}

var _ Provider = (*HFProvider)(nil)
