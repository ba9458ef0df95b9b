package device

// Parameter describes one controllable numeric quantity exposed by a patch
// device. The descriptor is read-mostly: everything except Value is fixed
// for the session. Value is the single point of mutation shared between the
// device and the UI.
type Parameter struct {
	// ID is the stable parameter identity, unique within a device session
	ID string `json:"id"`

	// Name is the display label. May be empty, in which case ID is used.
	Name string `json:"name,omitempty"`

	// Min and Max are the value bounds (Min <= Max; they may be equal)
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// Steps is the count of discrete positions. 1 means continuous (no
	// grid); >= 2 means that many evenly spaced positions including both
	// endpoints.
	Steps int `json:"steps"`

	// Labels optionally names each step position. Only consulted when
	// Steps > 2.
	Labels []string `json:"labels,omitempty"`

	// Value is the current value, Min <= Value <= Max. The device upholds
	// this invariant; the client does not re-validate it.
	Value float64 `json:"value"`
}

// DisplayName returns the label to present for the parameter: Name when
// set, otherwise ID.
func (p Parameter) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Change is one device-originated parameter change event.
type Change struct {
	ID    string
	Value float64
}

// Conn is the device connection as consumed by the panel. *Client is the
// production implementation; tests substitute in-memory fakes.
type Conn interface {
	// Parameters returns the device's parameter list in announcement
	// order. Callers must not mutate the returned slice; take a copy
	// before reordering.
	Parameters() []Parameter

	// Set writes a parameter value to the device. Fire-and-forget: no
	// acknowledgement, errors are logged and swallowed.
	Set(id string, value float64)

	// Value returns the last known value for a parameter, tracking both
	// local writes and device-originated change events.
	Value(id string) (float64, bool)

	// Subscribe registers a handler for device-originated change events
	// and returns a cancellation func that detaches it. Events are
	// delivered in arrival order.
	Subscribe(fn func(Change)) (cancel func())
}
