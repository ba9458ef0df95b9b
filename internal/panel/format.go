package panel

import (
	"math"
	"strconv"
	"strings"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
)

// FormatValue renders a parameter value for display. Integers render
// without decimals; everything else renders to two decimal places with
// trailing zeros (and a then-trailing decimal point) stripped.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// stepLabels resolves the display label for every grid position of a
// stepped parameter: the descriptor's label when one is available and in
// range, otherwise the formatted grid value.
func stepLabels(p device.Parameter, delta float64) []string {
	labels := make([]string, p.Steps)
	for i := range labels {
		if p.Steps > 2 && i < len(p.Labels) {
			labels[i] = p.Labels[i]
			continue
		}
		labels[i] = FormatValue(StepValue(p.Min, delta, i))
	}
	return labels
}
