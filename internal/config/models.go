package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for patch devices and application
// preferences. Nothing here is device state; the device is always the
// source of truth for parameter values.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single patch device.
// This is keyed by the device's self-reported name in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastAddr string    `yaml:"last_addr,omitempty"` // Last known host:port
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool          `yaml:"auto_discover"`          // Enable automatic mDNS discovery on startup
	DiscoverTimeout int           `yaml:"discover_timeout"`       // mDNS discovery timeout in seconds
	Presentation    *Presentation `yaml:"presentation,omitempty"` // Panel presentation rules
}

// Presentation configures how the panel orders widgets. The lead parameter
// is relocated immediately before the earliest present member of the lead
// group; when either side is missing the device's own ordering stands.
type Presentation struct {
	LeadParam string   `yaml:"lead_param,omitempty"`
	LeadGroup []string `yaml:"lead_group,omitempty"`
}

// DefaultLeadParam is the built-in lead parameter: the mix control leads
// the envelope block, the convention most of our patches follow.
const DefaultLeadParam = "dry/wet"

// DefaultLeadGroup is the parameter block the lead parameter precedes
func DefaultLeadGroup() []string {
	return []string{"attack", "decay", "sustain", "release"}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			Presentation: &Presentation{
				LeadParam: DefaultLeadParam,
				LeadGroup: DefaultLeadGroup(),
			},
		},
	}
}

// GetDevice retrieves device metadata by name.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(name string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	if d, ok := r.Devices[name]; ok {
		return d
	}
	d := &Device{}
	r.Devices[name] = d
	return d
}

// RecordSighting updates a device's last known address and sighting time.
func (r *Registry) RecordSighting(name, addr string) {
	d := r.EnsureDevice(name)
	d.LastAddr = addr
	d.LastSeen = time.Now()
}

// PresentationRule returns the effective lead parameter and group,
// falling back to the built-in defaults when unconfigured.
func (r *Registry) PresentationRule() (string, []string) {
	if r.Preferences == nil || r.Preferences.Presentation == nil {
		return DefaultLeadParam, DefaultLeadGroup()
	}
	p := r.Preferences.Presentation
	lead := p.LeadParam
	group := p.LeadGroup
	if lead == "" {
		lead = DefaultLeadParam
	}
	if len(group) == 0 {
		group = DefaultLeadGroup()
	}
	return lead, group
}
