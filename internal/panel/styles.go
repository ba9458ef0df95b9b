package panel

import "github.com/charmbracelet/lipgloss"

// Widget rendering styles. The surrounding TUI chrome has its own style
// set; these cover only the control rows themselves.
var (
	// LabelStyle is for parameter names on unfocused rows
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Width(18)

	// FocusedLabelStyle is for the parameter name on the focused row
	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#43BF6D")).
				Bold(true).
				Width(18)

	// CursorStyle is for the focus marker
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#43BF6D")).
			Bold(true)

	// ToggleOnStyle is for a boolean control in its ON state
	ToggleOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#43BF6D")).
			Bold(true)

	// ToggleOffStyle is for a boolean control in its OFF state
	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	// StepActiveStyle is for the single active step button
	StepActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	// StepStyle is for inactive step buttons
	StepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	// ValueStyle is for the numeric readout beside a fill bar
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// GrabbedValueStyle is the readout while the control is grabbed
	GrabbedValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFA500")).
				Bold(true)
)
