// Package validation provides startup validation for configuration and
// connectivity, with colored progress output on the console.
package validation

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ValidateEndpointURL validates that a URL has a valid format with an http
// or https scheme. This is a pure function with no side effects.
//
// Returns nil if the URL is valid, or an error describing the failure.
func ValidateEndpointURL(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)

	if endpoint == "" {
		return fmt.Errorf("endpoint URL cannot be empty")
	}

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme, got: %q", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("URL must include a host")
	}

	return nil
}

// CheckFileExists returns an error if the given path does not exist or is
// not a regular file.
func CheckFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}
