// atoms.go contains pure helper functions with no dependencies.
package imagegen

import (
	"strings"
)

// IsOpenAIEndpoint checks if the given endpoint URL is an OpenAI API
// endpoint. Case-insensitive substring match.
//
// Example:
//
//	IsOpenAIEndpoint("https://api.openai.com/v1")  // true
//	IsOpenAIEndpoint("https://api-inference.huggingface.co/models") // false
func IsOpenAIEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	return strings.Contains(strings.ToLower(endpoint), "api.openai.com")
}

// IsHuggingFaceEndpoint checks if the given endpoint URL is a Hugging
// Face hosted endpoint (the shared Inference API or a dedicated
// inference endpoint).
//
// Example:
//
//	IsHuggingFaceEndpoint("https://api-inference.huggingface.co/models/x") // true
//	IsHuggingFaceEndpoint("https://abc123.endpoints.huggingface.cloud")    // true
//	IsHuggingFaceEndpoint("https://api.openai.com/v1")                     // false
func IsHuggingFaceEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	lower := strings.ToLower(endpoint)
	return strings.Contains(lower, "huggingface.co") ||
		strings.Contains(lower, "huggingface.cloud")
}

// IsLocalEndpoint checks if the given endpoint URL points at a local or
// private-network host. Useful for relaxing TLS checks and warning when
// a credential is about to be sent to a non-public host.
//
// Example:
//
//	IsLocalEndpoint("http://localhost:8080")     // true
//	IsLocalEndpoint("http://192.168.1.50:7860")  // true
//	IsLocalEndpoint("https://api.openai.com")    // false
func IsLocalEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	// Match on the host only; a substring match would treat hosts like
	// cdn10.example.com as private.
	host := strings.ToLower(endpoint)
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.HasPrefix(host, "localhost") ||
		strings.HasPrefix(host, "127.0.0.1") ||
		strings.HasPrefix(host, "0.0.0.0") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "10.")
}

// truncateText shortens s to at most max runes, appending "..." when
// truncation occurred. Used for log previews of prompts and bodies.
func truncateText(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
