package panel

import (
	"go.uber.org/zap"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/logging"
)

// eventQueueSize bounds the change-event queue between the device's read
// goroutine and the panel's event loop. Bursts beyond this briefly block
// the reader; events are never reordered or coalesced.
const eventQueueSize = 64

// Options configures panel construction.
type Options struct {
	// LeadParam names the parameter to relocate ahead of the LeadGroup
	// for presentation. Empty disables reordering.
	LeadParam string

	// LeadGroup names the parameters the LeadParam is moved in front of.
	LeadGroup []string
}

// Build runs once over the device's full parameter list: reorder,
// classify, construct a widget per parameter, register it, then subscribe
// once to the device's change stream. Device ordering is untouched; the
// reordering happens on a copy.
//
// The caller owns the returned panel for the session and must drain
// Events into Dispatch from its event loop.
func Build(conn device.Conn, opts Options) *Panel {
	params := Reorder(conn.Parameters(), opts.LeadParam, opts.LeadGroup)

	p := &Panel{
		conn:    conn,
		widgets: make(map[string]*Widget, len(params)),
		order:   make([]string, 0, len(params)),
		events:  make(chan device.Change, eventQueueSize),
	}

	for _, param := range params {
		w := newWidget(param)
		p.widgets[param.ID] = w
		p.order = append(p.order, param.ID)

		logging.Debug("Widget built",
			zap.String("param_id", param.ID),
			zap.String("archetype", w.Archetype.String()),
		)
	}

	p.cancel = conn.Subscribe(func(c device.Change) {
		p.events <- c
	})

	logging.Info("Panel built", zap.Int("widget_count", len(p.order)))

	return p
}
