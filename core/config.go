package core

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultInferenceBaseURL is the Hugging Face Inference API base URL.
// The model ID is appended to form the full endpoint.
const DefaultInferenceBaseURL = "https://api-inference.huggingface.co/models"

// DefaultModel is the hosted text-to-image model used when HF_MODEL is not set.
const DefaultModel = "stabilityai/stable-diffusion-xl-base-1.0"

// DefaultNegativePrompt is applied when the user leaves the negative prompt empty.
const DefaultNegativePrompt = "blurry, low quality, cropped, distorted, extra limbs"

// Config holds all configuration values.
// It is loaded once at startup and treated as read-only for the
// lifetime of the process; components receive it by injection.
type Config struct {
	// API credentials (the active provider's credential is required)
	HFToken      string // Hugging Face bearer token (hf_...)
	OpenAIAPIKey string // Only needed when the endpoint is an OpenAI endpoint

	// Remote inference endpoint
	ImageAPIBaseURL  string // Base URL; model ID appended for Hugging Face
	Model            string // Hosted model identifier
	OpenAIImageModel string // Model name when using the OpenAI provider

	// Web server
	Host          string
	Port          int
	WebUIPassword string // Optional; enables login when set

	// Request handling
	APITimeout           time.Duration
	MaxRetries           int
	RetryDelay           time.Duration
	AllowSelfSignedCerts bool

	// Session & history
	SessionTTL   time.Duration
	HistoryLimit int

	// Prompt construction
	NegativePrompt   string
	StylePresetsFile string // Optional YAML override for style presets

	// Logging
	LogFile string
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. Only the inference credential is required: HF_TOKEN for the
// default Hugging Face endpoint, or OPENAI_API_KEY when IMAGE_API_URL
// points at an OpenAI endpoint. A missing credential is a fatal startup
// condition, not a per-request error.
func LoadConfig() (*Config, error) {
	baseURL := GetEnvOrDefault("IMAGE_API_URL", DefaultInferenceBaseURL)

	hfToken := os.Getenv("HF_TOKEN")
	if hfToken == "" {
		hfToken = os.Getenv("HUGGINGFACE_TOKEN") // Legacy support
	}
	openAIKey := os.Getenv("OPENAI_API_KEY")

	// The active provider is determined by the endpoint; its credential
	// must be present before the server accepts generation requests.
	if isOpenAIEndpoint(baseURL) {
		if openAIKey == "" {
			return nil, ErrMissingCredential("OPENAI_API_KEY")
		}
	} else if hfToken == "" {
		return nil, ErrMissingCredential("HF_TOKEN")
	}

	cfg := &Config{
		HFToken:      hfToken,
		OpenAIAPIKey: openAIKey,

		ImageAPIBaseURL:  strings.TrimRight(baseURL, "/"),
		Model:            GetEnvOrDefault("HF_MODEL", DefaultModel),
		OpenAIImageModel: GetEnvOrDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),

		Host:          GetEnvOrDefault("HOST", "localhost"),
		Port:          ParseIntEnv("PORT", 8080),
		WebUIPassword: os.Getenv("WEBUI_PASSWORD"),

		// 120s accommodates cold model loading on the hosted service
		APITimeout: ParseDurationEnv("API_TIMEOUT", 120),
		// 2 retries with 2s delay covers transient 5xx without long waits
		MaxRetries: ParseIntEnv("MAX_RETRIES", 2),
		RetryDelay: ParseDurationEnv("RETRY_DELAY", 2),

		AllowSelfSignedCerts: ParseBoolEnv("ALLOW_SELF_SIGNED_CERTS", false),

		SessionTTL:   ParseDurationEnv("SESSION_TTL", int(DefaultSessionDuration.Seconds())),
		HistoryLimit: ParseIntEnv("HISTORY_LIMIT", 50),

		NegativePrompt:   GetEnvOrDefault("DEFAULT_NEGATIVE_PROMPT", DefaultNegativePrompt),
		StylePresetsFile: os.Getenv("STYLE_PRESETS_FILE"),

		LogFile: GetEnvOrDefault("LOG_FILE", "app.log"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, &ConfigError{
			Code:    ErrCodeInvalidValue,
			Message: fmt.Sprintf("PORT must be between 1 and 65535, got %d", cfg.Port),
			Action:  "Set PORT to a valid TCP port number",
		}
	}
	if cfg.HistoryLimit < 1 {
		return nil, &ConfigError{
			Code:    ErrCodeInvalidValue,
			Message: fmt.Sprintf("HISTORY_LIMIT must be at least 1, got %d", cfg.HistoryLimit),
			Action:  "Set HISTORY_LIMIT to a positive number of entries",
		}
	}

	return cfg, nil
}

// EndpointURL returns the full inference endpoint for the configured model.
// For Hugging Face the model ID is appended to the base URL; OpenAI-style
// endpoints are returned as-is because the model travels in the payload.
func (c *Config) EndpointURL() string {
	if c.UsesOpenAIProvider() {
		return c.ImageAPIBaseURL
	}
	return c.ImageAPIBaseURL + "/" + c.Model
}

// UsesOpenAIProvider reports whether the configured endpoint selects the
// OpenAI image provider instead of the default Hugging Face provider.
func (c *Config) UsesOpenAIProvider() bool {
	return isOpenAIEndpoint(c.ImageAPIBaseURL)
}

// Credential returns the bearer credential for the active provider.
func (c *Config) Credential() string {
	if c.UsesOpenAIProvider() {
		return c.OpenAIAPIKey
	}
	return c.HFToken
}

func isOpenAIEndpoint(endpoint string) bool {
	lower := strings.ToLower(endpoint)
	return strings.Contains(lower, "api.openai.com") ||
		strings.Contains(lower, "openai.azure.com")
}

// GetHTTPClient returns an HTTP client configured with TLS settings based
// on AllowSelfSignedCerts. All outbound API calls should use this so the
// TLS configuration is respected consistently.
func GetHTTPClient(cfg *Config, timeout time.Duration) *http.Client {
	client := &http.Client{
		Timeout: timeout,
	}

	if cfg.AllowSelfSignedCerts {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return client
}
