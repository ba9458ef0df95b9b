package panel

import (
	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/logging"
)

// Panel is the synchronization registry: the id -> widget mapping through
// which remote device updates reach widgets, plus the one piece of
// cross-handler state, the adjusting flag. Entries are created once at
// build time and live for the panel's lifetime.
type Panel struct {
	conn    device.Conn
	widgets map[string]*Widget
	order   []string

	// adjusting is true while any continuous control is under active
	// manipulation. It is the sole suppressor of remote overwrites.
	adjusting bool

	events chan device.Change
	cancel func()
}

// Widgets returns the panel's widgets in presentation order.
func (p *Panel) Widgets() []*Widget {
	out := make([]*Widget, len(p.order))
	for i, id := range p.order {
		out[i] = p.widgets[id]
	}
	return out
}

// Get returns the widget for a parameter id, or nil if the parameter is
// outside the rendered set.
func (p *Panel) Get(id string) *Widget {
	return p.widgets[id]
}

// Adjusting reports whether a continuous control gesture is in progress.
func (p *Panel) Adjusting() bool {
	return p.adjusting
}

// Events is the queue of device-originated change events awaiting
// dispatch. The event loop drains it and feeds each entry to Dispatch.
func (p *Panel) Events() <-chan device.Change {
	return p.events
}

// Close detaches the panel from the device's change stream.
func (p *Panel) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Dispatch applies one device-originated change event to widget visual
// state. O(1) lookup; unknown ids are ignored as a benign race against a
// dynamic parameter set. Dispatch never writes back to the device.
func (p *Panel) Dispatch(id string, value float64) {
	w, ok := p.widgets[id]
	if !ok {
		logging.LogDroppedEvent(id, "unknown_parameter")
		return
	}

	switch w.Archetype {
	case Boolean:
		// Intentionally looser than the local toggle's equality test
		// against max: remote-originated values are not guaranteed to
		// land exactly on min or max.
		w.on = value >= 1

	case DiscreteStepped:
		idx := NearestStepIndex(value, w.stepMin, w.stepDelta)
		w.active = ClampIndex(idx, w.param.Steps)

	case Continuous:
		// An in-progress gesture has priority; dropped updates are
		// reconciled by the resync at EndAdjust.
		if p.adjusting {
			logging.LogDroppedEvent(id, "adjust_in_progress")
			return
		}
		w.value = value
	}
}

// Toggle flips a Boolean widget between min and max - never to an
// intermediate value - and writes the result to the device immediately.
func (p *Panel) Toggle(id string) {
	w := p.widgets[id]
	if w == nil || w.Archetype != Boolean {
		return
	}

	var next float64
	if w.on {
		next = w.param.Min
	} else {
		next = w.param.Max
	}
	w.on = next == w.param.Max
	p.conn.Set(id, next)
}

// SelectStep activates one button of a DiscreteStepped widget: the device
// gets that position's exact grid value and the button becomes the single
// active one. Out-of-range indices are clamped.
func (p *Panel) SelectStep(id string, idx int) {
	w := p.widgets[id]
	if w == nil || w.Archetype != DiscreteStepped {
		return
	}

	idx = ClampIndex(idx, w.param.Steps)
	w.active = idx
	p.conn.Set(id, StepValue(w.stepMin, w.stepDelta, idx))
}

// BeginAdjust starts a gesture on a Continuous widget, asserting the
// adjusting flag for its duration.
func (p *Panel) BeginAdjust(id string) {
	w := p.widgets[id]
	if w == nil || w.Archetype != Continuous {
		return
	}
	p.adjusting = true
}

// Adjust moves a grabbed Continuous widget by n grain increments. Each
// intermediate position streams to the device immediately, not just the
// final one.
func (p *Panel) Adjust(id string, n int) {
	w := p.widgets[id]
	if w == nil || w.Archetype != Continuous || !p.adjusting {
		return
	}

	w.value = clampValue(w.value+w.grain*float64(n), w.param.Min, w.param.Max)
	p.conn.Set(id, w.value)
}

// EndAdjust finishes the gesture: the adjusting flag clears and the
// widget's displayed value is force-resynchronized from the device's
// current value, correcting for any remote updates dropped mid-gesture.
func (p *Panel) EndAdjust(id string) {
	p.adjusting = false

	w := p.widgets[id]
	if w == nil || w.Archetype != Continuous {
		return
	}
	if v, ok := p.conn.Value(id); ok {
		w.value = v
	}
}
