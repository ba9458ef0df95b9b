package mockdevice

import "github.com/ProfessorBadTrip/patchdeck/internal/device"

// DemoPatch returns the parameter set the mock device serves by default.
// It covers every widget shape a surface can render: a toggle, a labelled
// step selector, an unlabelled step selector and several sliders, in the
// announcement order a real patch would use.
func DemoPatch() []device.Parameter {
	return []device.Parameter{
		{ID: "bypass", Name: "Bypass", Min: 0, Max: 1, Steps: 2, Value: 0},
		{ID: "attack", Name: "Attack", Min: 0, Max: 500, Steps: 1, Value: 20},
		{ID: "decay", Name: "Decay", Min: 0, Max: 2000, Steps: 1, Value: 250},
		{ID: "sustain", Name: "Sustain", Min: 0, Max: 1, Steps: 1, Value: 0.7},
		{ID: "release", Name: "Release", Min: 0, Max: 4000, Steps: 1, Value: 800},
		{ID: "dry/wet", Name: "Dry/Wet", Min: 0, Max: 1, Steps: 1, Value: 0.5},
		{
			ID: "filter-mode", Name: "Filter Mode",
			Min: 0, Max: 3, Steps: 4,
			Labels: []string{"off", "low", "band", "high"},
			Value:  0,
		},
		{ID: "octave", Name: "Octave", Min: -2, Max: 2, Steps: 5, Value: 0},
		{ID: "gain", Name: "Gain", Min: 0, Max: 2, Steps: 1, Value: 1},
	}
}
