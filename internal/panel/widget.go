package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
)

// FillBarWidth is the rendered width of a continuous control's fill bar
const FillBarWidth = 30

// Widget is the panel's record of one built control: the rendered
// primitive plus the archetype-specific bookkeeping needed to interpret
// future device events. Widgets are owned exclusively by their Panel.
type Widget struct {
	// ID is the parameter identity this widget controls
	ID string

	// Label is the display name shown next to the control
	Label string

	// Archetype is decided once at construction and never changes
	Archetype Archetype

	// param is a copy of the descriptor taken at build time
	param device.Parameter

	// Boolean state
	on bool

	// DiscreteStepped state: stepMin and stepDelta are kept to map
	// incoming device values back onto grid positions
	stepMin   float64
	stepDelta float64
	active    int
	labels    []string

	// Continuous state
	value float64
	grain float64
	fill  progress.Model
}

// newWidget classifies the parameter and constructs the matching widget
// with its initial visual state derived from the current value.
func newWidget(p device.Parameter) *Widget {
	w := &Widget{
		ID:        p.ID,
		Label:     p.DisplayName(),
		Archetype: Classify(p.Min, p.Max, p.Steps),
		param:     p,
	}

	switch w.Archetype {
	case Boolean:
		w.on = p.Value == p.Max

	case DiscreteStepped:
		w.stepMin = p.Min
		w.stepDelta = StepDelta(p.Min, p.Max, p.Steps)
		w.active = ClampIndex(NearestStepIndex(p.Value, w.stepMin, w.stepDelta), p.Steps)
		w.labels = stepLabels(p, w.stepDelta)

	case Continuous:
		w.value = p.Value
		if p.Steps > 1 {
			w.grain = StepDelta(p.Min, p.Max, p.Steps)
		} else {
			// No declared grid: fall back to a fine-grained default
			w.grain = (p.Max - p.Min) / 1000
		}
		f := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
		f.Width = FillBarWidth
		w.fill = f
	}

	return w
}

// Param returns the descriptor copy taken at build time.
func (w *Widget) Param() device.Parameter {
	return w.param
}

// On reports the toggle state of a Boolean widget.
func (w *Widget) On() bool {
	return w.on
}

// ActiveStep returns the currently active button index of a
// DiscreteStepped widget. Exactly one button is active at all times.
func (w *Widget) ActiveStep() int {
	return w.active
}

// StepLabels returns the per-position display labels of a DiscreteStepped
// widget.
func (w *Widget) StepLabels() []string {
	return w.labels
}

// DisplayValue returns the value a Continuous widget is currently showing.
// It can lag the device's value while a gesture is in progress.
func (w *Widget) DisplayValue() float64 {
	return w.value
}

// FillFraction returns the continuous control's fill as a 0..1 fraction.
func (w *Widget) FillFraction() float64 {
	return Percent(w.value, w.param.Min, w.param.Max) / 100
}

// Grain returns the adjustment granularity of a Continuous widget.
func (w *Widget) Grain() float64 {
	return w.grain
}

// View renders the widget's control row. focused marks the row the cursor
// is on; grabbed marks a continuous control under active manipulation.
func (w *Widget) View(focused, grabbed bool) string {
	label := LabelStyle.Render(w.Label)
	if focused {
		label = FocusedLabelStyle.Render(w.Label)
	}

	var control string
	switch w.Archetype {
	case Boolean:
		control = w.viewToggle()
	case DiscreteStepped:
		control = w.viewStepRow()
	case Continuous:
		control = w.viewSlider(grabbed)
	}

	cursor := "  "
	if focused {
		cursor = CursorStyle.Render("> ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, label, "  ", control)
}

func (w *Widget) viewToggle() string {
	if w.on {
		return ToggleOnStyle.Render("■ ON ")
	}
	return ToggleOffStyle.Render("□ OFF")
}

func (w *Widget) viewStepRow() string {
	var b strings.Builder
	for i, label := range w.labels {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == w.active {
			b.WriteString(StepActiveStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(StepStyle.Render("[" + label + "]"))
		}
	}
	return b.String()
}

func (w *Widget) viewSlider(grabbed bool) string {
	bar := w.fill.ViewAs(w.FillFraction())
	value := ValueStyle.Render(FormatValue(w.value))
	if grabbed {
		value = GrabbedValueStyle.Render(FormatValue(w.value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", value)
}
