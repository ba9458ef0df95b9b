// Package logging provides structured logging for patchdeck.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the application. Logging is silent unless
// explicitly enabled, because the interactive panel owns the terminal and
// any stray output corrupts the display.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (per-parameter writes and change events)
//   - Info: Normal operations (connections, subscriptions, state changes)
//   - Warn: Non-fatal issues (connection drops, malformed messages)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device connected",
//	    zap.String("remote_addr", "192.168.1.100:8765"),
//	    zap.Int("param_count", 12),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogConnection(remoteAddr, "websocket_connected")
//	logging.LogParameterWrite("filterFreq", 1200)
//	logging.LogParameterChange("filterFreq", 880)
//	logging.LogDroppedEvent("dry/wet", "drag_in_progress")
//
// # Configuration
//
// Set PATCHDECK_LOG_LEVEL to enable output, and PATCHDECK_LOG_FILE to
// redirect it away from the terminal while the panel is running:
//
//	PATCHDECK_LOG_LEVEL=debug PATCHDECK_LOG_FILE=/tmp/patchdeck.log patchdeck
//
// Commands initialize via:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
