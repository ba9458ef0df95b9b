package panel

import "testing"

// TestClassify verifies the archetype decision over representative shapes
func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		min   float64
		max   float64
		steps int
		want  Archetype
	}{
		{"unit range two steps is boolean", 0, 1, 2, Boolean},
		{"five steps is stepped", 0, 10, 5, DiscreteStepped},
		{"three steps is stepped", 0, 1, 3, DiscreteStepped},
		{"single step is continuous", 0, 10, 1, Continuous},
		{"two steps off unit bounds is continuous", -5, 5, 2, Continuous},
		{"two steps wrong max is continuous", 0, 2, 2, Continuous},
		{"two steps wrong min is continuous", -1, 1, 2, Continuous},
		{"degenerate range is continuous", 3, 3, 1, Continuous},
		{"unit range one step is continuous", 0, 1, 1, Continuous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.min, tt.max, tt.steps)
			if got != tt.want {
				t.Errorf("Classify(%v, %v, %d) = %v, want %v",
					tt.min, tt.max, tt.steps, got, tt.want)
			}
		})
	}
}

// TestClassifyIgnoresValueAndLabels confirms classification is a function
// of the numeric shape alone
func TestClassifyIgnoresValueAndLabels(t *testing.T) {
	// Same shape must classify identically regardless of anything else
	// a descriptor carries; Classify doesn't even see those fields.
	first := Classify(0, 1, 2)
	second := Classify(0, 1, 2)
	if first != second {
		t.Errorf("Classify is not deterministic: %v != %v", first, second)
	}
	if first != Boolean {
		t.Errorf("expected Boolean, got %v", first)
	}
}

// TestArchetypeString verifies the display names
func TestArchetypeString(t *testing.T) {
	tests := []struct {
		archetype Archetype
		want      string
	}{
		{Boolean, "boolean"},
		{DiscreteStepped, "stepped"},
		{Continuous, "continuous"},
		{Archetype(42), "Archetype(42)"},
	}

	for _, tt := range tests {
		if got := tt.archetype.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
