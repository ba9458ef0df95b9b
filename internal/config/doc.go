// Package config provides user configuration management for patchdeck.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for patch devices (nicknames, last known
// addresses) and application preferences, including the panel's
// presentation rule. The configuration follows OS-specific conventions
// for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/patchdeck/config.yaml or $HOME/.config/patchdeck/config.yaml
//   - macOS: $HOME/.config/patchdeck/config.yaml
//   - Windows: %LOCALAPPDATA%\patchdeck\config.yaml
//
// # Presentation Rule
//
// The presentation rule controls widget ordering in the panel: the lead
// parameter is relocated immediately before the earliest present member
// of the lead group. Devices whose patches don't carry those parameters
// are rendered in their own order.
//
//	preferences:
//	  presentation:
//	    lead_param: "dry/wet"
//	    lead_group: ["attack", "decay", "sustain", "release"]
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Remember where we last saw a device
//	registry.RecordSighting("kick-drum", "192.168.4.16:8765")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
