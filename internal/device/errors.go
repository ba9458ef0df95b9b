package device

import "errors"

// Sentinel errors for device communication. Callers match with errors.Is.
var (
	// ErrNotConnected is returned when an operation requires a live
	// WebSocket connection and there is none
	ErrNotConnected = errors.New("device: not connected")

	// ErrBadMessage indicates a wire message that could not be decoded or
	// failed minimal validation
	ErrBadMessage = errors.New("device: malformed message")

	// ErrNoDescription is returned when the device closes or misbehaves
	// before sending its description message
	ErrNoDescription = errors.New("device: connection closed before description")
)
