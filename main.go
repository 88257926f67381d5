package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
	"github.com/bhavyasri23-dev/ai-image-generator/core/validation"
	"github.com/bhavyasri23-dev/ai-image-generator/imagegen"
	"github.com/bhavyasri23-dev/ai-image-generator/logging"
	"github.com/bhavyasri23-dev/ai-image-generator/metrics"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"
	"github.com/bhavyasri23-dev/ai-image-generator/shutdown"
	"github.com/bhavyasri23-dev/ai-image-generator/webui"
	"github.com/bhavyasri23-dev/ai-image-generator/webui/auth"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Build metadata, injected via -ldflags at release time.
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Service management commands (install/uninstall/start/stop on Windows)
	if HandleServiceCommand(os.Args) {
		return
	}

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	// Determine if running in development mode
	isDevelopment := os.Getenv("DEV_MODE") == "true"

	// Initialize structured logger early
	logFile := core.GetEnvOrDefault("LOG_FILE", "app.log")
	logger, err := logging.NewLogger(isDevelopment, logFile)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Run startup validation before binding the listener
	exitCode := runStartupValidation(logger)
	if exitCode != core.ExitCodeSuccess {
		os.Exit(exitCode)
	}

	// Load configuration (safe to call after validation passes)
	config, err := core.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	providerName := "huggingface"
	if config.UsesOpenAIProvider() {
		providerName = "openai"
	}

	// Log configuration values; credentials are redacted by the logger
	logger.Info("Configuration loaded",
		zap.String("endpoint", config.EndpointURL()),
		zap.String("model", config.Model),
		zap.String("provider", providerName),
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.Duration("api_timeout", config.APITimeout),
		zap.Int("max_retries", config.MaxRetries),
		zap.Duration("retry_delay", config.RetryDelay),
		zap.Duration("session_ttl", config.SessionTTL),
		zap.Int("history_limit", config.HistoryLimit),
		zap.Bool("auth_enabled", config.WebUIPassword != ""),
		zap.Bool("allow_self_signed_certs", config.AllowSelfSignedCerts),
		zap.Bool("dev_mode", isDevelopment),
	)

	// Style presets: built-in set, optionally overridden from YAML
	presets := promptgen.DefaultPresets()
	if config.StylePresetsFile != "" {
		presets, err = promptgen.LoadPresetsFile(config.StylePresetsFile)
		if err != nil {
			logger.Fatal("Failed to load style presets",
				zap.String("file", config.StylePresetsFile),
				zap.Error(err),
			)
		}
		logger.Info("Loaded style presets from file",
			zap.String("file", config.StylePresetsFile),
		)
	}
	builder := promptgen.NewBuilder(presets, config.NegativePrompt)

	// Image generator with provider selected from the endpoint
	generator, err := imagegen.NewGeneratorFromConfig(config, logger)
	if err != nil {
		logger.Fatal("Failed to create image generator", zap.Error(err))
	}

	// UI sessions, each with its own generation history
	sessions := webui.NewSessionStore(config.SessionTTL, config.HistoryLimit)

	// In-memory metrics for /api/metrics
	metricsStore := metrics.NewMetricsStore(metrics.StoreConfig{
		HistoryCapacity: 100,
		Version:         version,
	}, time.Now())

	apiConfig := webui.DefaultGenerateAPIConfig()
	apiConfig.Presets = presets
	apiConfig.ProviderName = providerName
	// The UI fetches history without a limit parameter; the default page
	// size must cover the whole retained history.
	apiConfig.DefaultLimit = config.HistoryLimit
	apiConfig.VersionInfo = webui.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
	generateAPI := webui.NewGenerateAPI(builder, generator, sessions, metricsStore, logger, apiConfig)

	// Password protection is optional; without WEBUI_PASSWORD the UI is open
	var authProvider webui.AuthProvider
	var authMiddleware *auth.AuthMiddleware
	if config.WebUIPassword != "" {
		authConfig := auth.DefaultConfig()
		authConfig.SessionTTL = config.SessionTTL
		authMiddleware, err = auth.NewAuthMiddlewareWithConfig(config.WebUIPassword, logger.Zap(), authConfig)
		if err != nil {
			logger.Fatal("Failed to initialize authentication", zap.Error(err))
		}
		authProvider = auth.NewProvider(authMiddleware)
	}

	serverConfig := webui.DefaultServerConfig()
	serverConfig.Host = config.Host
	serverConfig.Port = config.Port
	server, err := webui.NewServer(serverConfig, generateAPI, authProvider, logger.Zap())
	if err != nil {
		logger.Fatal("Failed to create web server", zap.Error(err))
	}

	// Graceful shutdown coordination
	manager := shutdown.NewManager(logger.Zap())
	manager.Register("http-server", 10, shutdown.StopServer(logger.Zap(), server))

	// Background expiry sweeps stop when the manager context is cancelled
	bgCtx, bgCancel := context.WithCancel(context.Background())
	sessions.StartCleanupTicker(bgCtx, 10*time.Minute)
	if authMiddleware != nil {
		authMiddleware.SessionStore().StartCleanupTicker(bgCtx, 10*time.Minute)
		authMiddleware.RateLimiter().StartCleanupTicker(bgCtx, 10*time.Minute)
	}
	manager.Register("background-sweeps", 20, shutdown.StopBackground(logger.Zap(), "background-sweeps", bgCancel))
	manager.Register("flush-logs", 45, shutdown.FlushLogs(logger.Sync))

	manager.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(context.Background())
	}()

	logger.Info("AI Image Generator started",
		zap.String("addr", server.Addr()),
		zap.String("version", version),
	)

	// Block until a shutdown signal arrives or the server fails
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server exited with error", zap.Error(err))
			_ = manager.Shutdown()
			os.Exit(core.ExitCodeError)
		}
	case <-manager.Context().Done():
	}

	if err := manager.Shutdown(); err != nil {
		logger.Error("Shutdown completed with errors", zap.Error(err))
		os.Exit(core.ExitCodeError)
	}

	logger.Info("Goodbye!")
}

// runStartupValidation checks configuration and endpoint reachability
// before the server starts accepting requests.
//
// Returns the appropriate exit code:
//   - ExitCodeSuccess (0) if all validations pass
//   - ExitCodeError (1) if any validation fails
func runStartupValidation(logger *logging.Logger) int {
	logger.Info("Starting startup validation...")

	allowSelfSigned := os.Getenv("ALLOW_SELF_SIGNED_CERTS") == "true"
	skipConnectivity := os.Getenv("SKIP_CONNECTIVITY_CHECK") == "true"

	suite := validation.NewValidationSuite().
		WithAllowSelfSignedCerts(allowSelfSigned).
		WithSkipConnectivity(skipConnectivity).
		WithShowProgress(true)

	result := suite.Validate()

	if !result.Success {
		logger.Error("Configuration validation failed",
			zap.Int("passed", result.PassedSteps),
			zap.Int("failed", result.FailedSteps),
			zap.Duration("duration", result.Duration),
		)

		// Log individual failures for debugging
		for _, step := range result.Steps {
			if step.Status == validation.StepFailed {
				logger.Error("Validation step failed",
					zap.String("step", step.Name),
					zap.String("message", step.Message),
					zap.Error(step.Error),
				)
			}
		}

		return core.ExitCodeError
	}

	logger.Info("Configuration validation passed",
		zap.Int("checks_passed", result.PassedSteps),
		zap.Duration("duration", result.Duration),
	)

	return core.ExitCodeSuccess
}
