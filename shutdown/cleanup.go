package shutdown

import (
	"context"

	"github.com/bhavyasri23-dev/ai-image-generator/core"

	"go.uber.org/zap"
)

// StoppableServer is the subset of an HTTP server used during graceful shutdown.
// *http.Server and the web UI server both satisfy it.
type StoppableServer interface {
	Shutdown(ctx context.Context) error
}

// StopServer returns a shutdown function that gracefully stops an HTTP server.
// The server stops accepting new connections and waits for in-flight requests
// to drain, bounded by the shutdown context deadline.
//
// Priority recommendation: 10-19 (connection cleanup, before service teardown)
//
// Usage:
//
//	manager.Register("http-server", 10, shutdown.StopServer(logger, server))
func StopServer(logger *zap.Logger, server StoppableServer) core.ShutdownFunc {
	return func(ctx context.Context) error {
		logger.Info("Stopping HTTP server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("HTTP server shutdown failed", zap.Error(err))
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	}
}

// StopBackground returns a shutdown function that cancels background work
// (cleanup tickers, pollers) by invoking the given cancel function. The name
// is used for logging only.
//
// Priority recommendation: 20-29 (service cleanup, after connections drain)
//
// Usage:
//
//	bgCtx, bgCancel := context.WithCancel(context.Background())
//	sessions.StartCleanupTicker(bgCtx, 10*time.Minute)
//	manager.Register("session-cleanup", 20, shutdown.StopBackground(logger, "session-cleanup", bgCancel))
func StopBackground(logger *zap.Logger, name string, cancel context.CancelFunc) core.ShutdownFunc {
	return func(ctx context.Context) error {
		logger.Debug("Stopping background worker", zap.String("worker", name))
		cancel()
		return nil
	}
}

// FlushLogs returns a shutdown function that flushes buffered log entries.
// Sync failures are swallowed: syncing stderr returns EINVAL on some
// platforms, and a failed flush should never abort the shutdown sequence.
//
// Priority recommendation: 40+ (final cleanup, after everything that might log)
//
// Usage:
//
//	manager.Register("flush-logs", 45, shutdown.FlushLogs(appLogger.Sync))
func FlushLogs(sync func() error) core.ShutdownFunc {
	return func(ctx context.Context) error {
		_ = sync()
		return nil
	}
}
