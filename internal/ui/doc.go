// Package ui provides terminal output components for the patchdeck CLI.
//
// This package uses Lipgloss to render styled output for the one-shot
// commands (scan, show, set). Unlike the interactive control surface in
// internal/tui, these components follow a "run once and exit" pattern.
//
// Styling is automatically dropped when stdout is not a terminal, so the
// same commands stay scriptable:
//
//	patchdeck show --device 192.168.4.16 | grep gain
//
// # Logging Integration
//
// This package expects logging to be controlled via the PATCHDECK_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated output to be displayed cleanly.
package ui
