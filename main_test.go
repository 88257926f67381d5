package main

import (
	"os"
	"testing"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
	"github.com/bhavyasri23-dev/ai-image-generator/logging"
)

// createTestLoggerMain creates a logger for testing that writes to a temp file.
func createTestLoggerMain(t *testing.T) *logging.Logger {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "main_test_*.log")
	if err != nil {
		t.Fatalf("failed to create temp log file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	logger, err := logging.NewLogger(true, tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

// TestRunStartupValidation_PassesWithCredential verifies that validation
// succeeds when a credential is configured for the default endpoint.
func TestRunStartupValidation_PassesWithCredential(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_test_token_for_validation")
	t.Setenv("IMAGE_API_URL", "")
	t.Setenv("SKIP_CONNECTIVITY_CHECK", "true")

	logger := createTestLoggerMain(t)
	defer logger.Sync()

	// DOING: Run startup validation with a valid credential, no network probe
	// EXPECT: ExitCodeSuccess
	code := runStartupValidation(logger)

	if code != core.ExitCodeSuccess {
		t.Errorf("runStartupValidation() = %d, want %d", code, core.ExitCodeSuccess)
	}
}

// TestRunStartupValidation_FailsWithoutCredential verifies that a missing
// credential is a fatal startup condition.
func TestRunStartupValidation_FailsWithoutCredential(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGINGFACE_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("IMAGE_API_URL", "")
	t.Setenv("SKIP_CONNECTIVITY_CHECK", "true")

	logger := createTestLoggerMain(t)
	defer logger.Sync()

	// DOING: Run startup validation with no credential in the environment
	// EXPECT: ExitCodeError, server must not start
	code := runStartupValidation(logger)

	if code != core.ExitCodeError {
		t.Errorf("runStartupValidation() = %d, want %d", code, core.ExitCodeError)
	}
}

// TestRunStartupValidation_RequiresOpenAIKeyForOpenAIEndpoint verifies that
// pointing the endpoint at OpenAI switches the required credential.
func TestRunStartupValidation_RequiresOpenAIKeyForOpenAIEndpoint(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_test_token_for_validation")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("IMAGE_API_URL", "https://api.openai.com/v1/images/generations")
	t.Setenv("SKIP_CONNECTIVITY_CHECK", "true")

	logger := createTestLoggerMain(t)
	defer logger.Sync()

	// DOING: Configure an OpenAI endpoint without OPENAI_API_KEY
	// EXPECT: ExitCodeError even though HF_TOKEN is present
	code := runStartupValidation(logger)

	if code != core.ExitCodeError {
		t.Errorf("runStartupValidation() = %d, want %d", code, core.ExitCodeError)
	}
}
