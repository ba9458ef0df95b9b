// Package panel implements the parameter control surface: classification
// of device parameters into control archetypes, presentation reordering,
// widget construction, and two-way synchronization between widget state
// and device state.
//
// # Archetypes
//
// Every parameter is classified from its numeric shape alone:
//
//   - Boolean: min == 0, max == 1, steps == 2. Rendered as a toggle.
//   - DiscreteStepped: steps > 2. Rendered as a row of step buttons.
//   - Continuous: everything else. Rendered as a draggable fill bar.
//
// # Synchronization
//
// Build constructs one widget per parameter, registers each in the panel's
// id -> widget map, and subscribes once to the device's change stream.
// Incoming change events are queued on Events; the owner of the event loop
// (the TUI, or a test) drains the queue and feeds each event to Dispatch.
// Dispatch is strictly one-directional - it updates widget visual state and
// never writes back to the device, which is what breaks the feedback loop
// between local edits and their echoed change events.
//
// Local edits (Toggle, SelectStep, Adjust) go the other way: they write to
// the device immediately and update the widget's own visual state.
//
// While a continuous control is grabbed (BeginAdjust .. EndAdjust), the
// panel's adjusting flag suppresses remote overwrites of continuous
// widgets, so an in-progress gesture is never visually yanked away from
// the user. EndAdjust force-resynchronizes the widget from the device's
// last known value, picking up anything that was dropped mid-gesture.
//
// # Threading
//
// The panel is not internally synchronized. All methods must be called
// from a single event loop goroutine; the subscription callback only
// enqueues onto the Events channel and never touches panel state.
package panel
