// Package tui implements the interactive terminal control surface.
//
// This package provides a full-screen TUI for discovering patch devices and
// driving their parameters live. Built using the Bubble Tea framework, it
// follows the Elm architecture with immutable state updates and a clean
// Model-Update-View pattern.
//
// # Architecture
//
// The TUI is organized into two screens:
//   - Discovery: Scan the network for patch devices or enter an address manually
//   - Panel: The live control surface for one connected device
//
// All screens use a unified container pattern (RenderApplicationContainer)
// for consistent layout with header, content area, and a context-sensitive
// footer.
//
// # Framework Components
//
// The TUI leverages Bubble Tea framework components throughout:
//   - bubbles/spinner: Scan and connect indicators
//   - bubbles/textinput: Manual address entry
//   - bubbles/progress: Scan progress and slider fill bars
//   - bubbles/list: Device lists with filtering
//   - bubbles/help: Context-aware help system
//   - lipgloss: Styling and layout
//
// # Usage Example
//
//	// Create and run the surface
//	app := tui.NewAppModel("")
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Screen Flow
//
//  1. Discovery Screen:
//     - Automatically scans the network for patch devices (mDNS)
//     - Displays found devices as cards with details
//     - Allows manual address entry if a device is not advertised
//     - User selects a device to control
//
//  2. Panel Screen:
//     - Connects to the device and receives its parameter description
//     - Renders one control row per parameter: toggles, step selectors
//       and sliders, chosen by the parameter's declared shape
//     - Local edits write to the device immediately
//     - Device-originated changes update the rows live, in both directions
//
// # Key Bindings
//
// Each screen has context-aware key bindings:
//   - Discovery: ↑/↓ navigate, Enter connect, r rescan, m manual address, q quit
//   - Panel: ↑/↓ move between rows, space toggle, ←/→ step, 1-9 jump to step,
//     Enter grab/release a slider, esc disconnect
//   - Grabbed slider: ←/→ adjust by one grain, pgup/pgdn adjust by ten
//
// While a slider is grabbed, changes arriving from the device for that
// control are held off until release, so the hand on the knob wins.
//
// # Thread Safety
//
// The Bubble Tea framework ensures thread safety through message passing.
// Device change events are queued by the connection's read goroutine and
// drained into the panel from the single Update loop, so all widget state
// mutations happen in one goroutine.
package tui
