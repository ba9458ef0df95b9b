package ui

import (
	"fmt"
	"strings"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/panel"
)

// RenderDeviceHeader renders the boxed device heading for the show command.
func RenderDeviceHeader(name, addr string, paramCount int) string {
	width := GetTerminalWidth()

	var b strings.Builder
	b.WriteString(HeaderTitleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(HeaderParamKeyStyle.Render("Address:    "))
	b.WriteString(HeaderParamValueStyle.Render(addr))
	b.WriteString("\n")
	b.WriteString(HeaderParamKeyStyle.Render("Parameters: "))
	b.WriteString(HeaderParamValueStyle.Render(fmt.Sprintf("%d", paramCount)))

	return HeaderBorderStyle(width).Render(b.String())
}

// RenderParameterTable renders the parameter list as an aligned table with
// each parameter's control shape, range and current value. When stdout is
// not a terminal the output is plain text for scripting.
func RenderParameterTable(params []device.Parameter) string {
	styled := IsTerminal()

	var b strings.Builder

	header := fmt.Sprintf("  %-16s %-20s %-10s %-16s %-8s %s",
		"ID", "NAME", "SHAPE", "RANGE", "STEPS", "VALUE")
	if styled {
		header = ColumnHeaderStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	for _, p := range params {
		shape := panel.Classify(p.Min, p.Max, p.Steps).String()
		rng := fmt.Sprintf("%s..%s", panel.FormatValue(p.Min), panel.FormatValue(p.Max))
		value := panel.FormatValue(p.Value)

		if styled {
			shape = ArchetypeStyle.Render(fmt.Sprintf("%-10s", shape))
			value = ValueStyle.Render(value)
			b.WriteString(fmt.Sprintf("  %-16s %-20s %s %-16s %-8d %s",
				p.ID, p.DisplayName(), shape, rng, p.Steps, value))
		} else {
			b.WriteString(fmt.Sprintf("  %-16s %-20s %-10s %-16s %-8d %s",
				p.ID, p.DisplayName(), shape, rng, p.Steps, value))
		}

		if len(p.Labels) > 0 {
			labels := "  [" + strings.Join(p.Labels, " | ") + "]"
			if styled {
				labels = MutedStyle.Render(labels)
			}
			b.WriteString(labels)
		}
		b.WriteString("\n")
	}

	return b.String()
}
