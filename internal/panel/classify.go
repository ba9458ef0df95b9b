package panel

import "fmt"

// Archetype is the three-way shape classification that drives widget
// choice. It is derived from a parameter's numeric shape and never stored
// on the device.
type Archetype int

const (
	// Boolean is a two-state 0/1 parameter rendered as a toggle
	Boolean Archetype = iota

	// DiscreteStepped is a parameter with more than two grid positions,
	// rendered as a row of step buttons
	DiscreteStepped

	// Continuous is everything else, rendered as a draggable fill bar
	Continuous
)

// String returns a human-readable name for the archetype
func (a Archetype) String() string {
	switch a {
	case Boolean:
		return "boolean"
	case DiscreteStepped:
		return "stepped"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("Archetype(%d)", a)
	}
}

// Classify maps a parameter's numeric shape to its control archetype.
// Pure and total: it depends on (min, max, steps) only, never on the
// current value, labels, or the parameter's name.
func Classify(min, max float64, steps int) Archetype {
	if min == 0 && max == 1 && steps == 2 {
		return Boolean
	}
	if steps > 2 {
		return DiscreteStepped
	}
	return Continuous
}
