package panel

import (
	"testing"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
)

// TestFormatValue verifies integer and fractional display formatting
func TestFormatValue(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{2, "2"},
		{-3, "-3"},
		{1000, "1000"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{-0.5, "-0.5"},
		{1.999, "2"},  // rounds to 2.00, zeros and point stripped
		{0.004, "0"},  // rounds to 0.00
		{2.10, "2.1"}, // trailing zero stripped
	}

	for _, tt := range tests {
		if got := FormatValue(tt.value); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

// TestStepLabels verifies per-position label resolution
func TestStepLabels(t *testing.T) {
	t.Run("labels used when present and in range", func(t *testing.T) {
		p := device.Parameter{
			ID: "mode", Min: 0, Max: 3, Steps: 4,
			Labels: []string{"off", "low", "high"}, // one short
		}
		got := stepLabels(p, StepDelta(p.Min, p.Max, p.Steps))
		want := []string{"off", "low", "high", "3"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("labels ignored for two-step parameters", func(t *testing.T) {
		p := device.Parameter{
			ID: "range", Min: -5, Max: 5, Steps: 2,
			Labels: []string{"lo", "hi"},
		}
		got := stepLabels(p, StepDelta(p.Min, p.Max, p.Steps))
		want := []string{"-5", "5"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("numeric fallback formats grid values", func(t *testing.T) {
		p := device.Parameter{ID: "freq", Min: 0, Max: 1, Steps: 5}
		got := stepLabels(p, StepDelta(p.Min, p.Max, p.Steps))
		want := []string{"0", "0.25", "0.5", "0.75", "1"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})
}
