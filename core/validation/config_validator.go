package validation

import (
	"os"
	"strings"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
)

// ValidationResult represents the result of a single configuration check.
type ValidationResult struct {
	Valid   bool
	Message string
	Error   error
}

// ConfigValidator composes the validation atoms to provide configuration
// checking before the server starts accepting generation requests.
type ConfigValidator struct {
	envPath string // Path to .env file (default: ".env")
}

// NewConfigValidator creates a new ConfigValidator with default settings.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		envPath: ".env",
	}
}

// WithEnvPath sets a custom path for the .env file.
func (v *ConfigValidator) WithEnvPath(path string) *ConfigValidator {
	v.envPath = path
	return v
}

// CheckEnvFile validates that the .env file exists.
// A missing .env file is a warning rather than a failure: configuration
// may also come from real environment variables.
func (v *ConfigValidator) CheckEnvFile() ValidationResult {
	if err := CheckFileExists(v.envPath); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "No .env file found; relying on environment variables",
			Error:   core.ErrEnvFileMissing(v.envPath),
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "Environment file found",
	}
}

// CheckCredential validates that the API credential for the configured
// endpoint is present. The credential requirement follows the endpoint:
// HF_TOKEN for the default Hugging Face endpoint, OPENAI_API_KEY when
// IMAGE_API_URL points at OpenAI.
func (v *ConfigValidator) CheckCredential() ValidationResult {
	endpoint := core.GetEnvOrDefault("IMAGE_API_URL", core.DefaultInferenceBaseURL)
	lower := strings.ToLower(endpoint)

	if strings.Contains(lower, "api.openai.com") || strings.Contains(lower, "openai.azure.com") {
		if os.Getenv("OPENAI_API_KEY") == "" {
			return ValidationResult{
				Valid:   false,
				Message: "OPENAI_API_KEY required for the configured OpenAI endpoint",
				Error:   core.ErrMissingCredential("OPENAI_API_KEY"),
			}
		}
		return ValidationResult{
			Valid:   true,
			Message: "OpenAI API key configured",
		}
	}

	token := os.Getenv("HF_TOKEN")
	if token == "" {
		token = os.Getenv("HUGGINGFACE_TOKEN")
	}
	if token == "" {
		return ValidationResult{
			Valid:   false,
			Message: "HF_TOKEN required. Create a token at https://huggingface.co/settings/tokens",
			Error:   core.ErrMissingCredential("HF_TOKEN"),
		}
	}
	if !strings.HasPrefix(token, "hf_") {
		return ValidationResult{
			Valid:   true,
			Message: "API token configured (unexpected format; Hugging Face tokens start with hf_)",
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "API token configured",
	}
}

// CheckEndpointURL validates the IMAGE_API_URL environment variable.
func (v *ConfigValidator) CheckEndpointURL() ValidationResult {
	endpoint := core.GetEnvOrDefault("IMAGE_API_URL", core.DefaultInferenceBaseURL)

	if err := ValidateEndpointURL(endpoint); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Invalid inference endpoint URL: " + endpoint,
			Error:   core.ErrInvalidEndpoint(endpoint, err.Error()),
		}
	}

	return ValidationResult{
		Valid:   true,
		Message: "Endpoint URL valid",
	}
}
