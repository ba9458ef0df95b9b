package discovery

import (
	"fmt"
	"time"
)

// Device represents a discovered patch device on the network
type Device struct {
	// Name is the device's advertised instance name (e.g., "kick-drum")
	Name string

	// Hostname is the mDNS hostname (e.g., "patchbox.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.4.16")
	IP string

	// Port is the WebSocket port (typically 8765)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "patch=kick-drum", "version=1.3.0"
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("Patch device %s (%s) at %s:%d", d.Name, d.Hostname, d.IP, d.Port)
}

// Addr returns the host:port dial address for the device
func (d *Device) Addr() string {
	return fmt.Sprintf("%s:%d", d.IP, d.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
