package core

import (
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeEnvFileMissing    = "ENV_FILE_MISSING"
	ErrCodeMissingCredential = "MISSING_CREDENTIAL"
	ErrCodeInvalidEndpoint   = "INVALID_ENDPOINT"
	ErrCodeInvalidValue      = "INVALID_VALUE"
	ErrCodeEndpointUnreached = "ENDPOINT_UNREACHABLE"
)

// ErrEnvFileMissing returns an error for a missing .env file.
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Configuration file not found: %s", path),
		Action:  "Copy .env.example to .env and configure the required values",
	}
}

// ErrMissingCredential returns an error for a missing API credential.
// The credential is required at startup; the application must not accept
// generation requests without it.
func ErrMissingCredential(varName string) *ConfigError {
	var action string
	switch varName {
	case "HF_TOKEN":
		action = "Set HF_TOKEN in your .env file (create a token at https://huggingface.co/settings/tokens)"
	case "OPENAI_API_KEY":
		action = "Set OPENAI_API_KEY in your .env file"
	default:
		action = fmt.Sprintf("Set %s in your .env file", varName)
	}
	return &ConfigError{
		Code:    ErrCodeMissingCredential,
		Message: fmt.Sprintf("Missing required API credential: %s", varName),
		Action:  action,
	}
}

// ErrInvalidEndpoint returns an error for an invalid inference endpoint URL.
func ErrInvalidEndpoint(url string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidEndpoint,
		Message: fmt.Sprintf("Invalid IMAGE_API_URL '%s': %s", url, reason),
		Action:  "Set IMAGE_API_URL to a valid https URL (e.g., https://api-inference.huggingface.co/models)",
	}
}

// ErrEndpointUnreachable returns an error when the inference endpoint cannot be reached.
func ErrEndpointUnreachable(url string, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEndpointUnreached,
		Message: fmt.Sprintf("Cannot connect to inference endpoint at %s: %s", url, reason),
		Action:  "Check your network connection and IMAGE_API_URL. For self-signed certificates, set ALLOW_SELF_SIGNED_CERTS=true",
	}
}

// IsConfigError checks if an error is a ConfigError and returns it if so.
func IsConfigError(err error) (*ConfigError, bool) {
	if configErr, ok := err.(*ConfigError); ok {
		return configErr, true
	}
	return nil, false
}
