package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ProfessorBadTrip/patchdeck/internal/config"
	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/panel"
)

// Messages for the panel screen's async operations
type connectedMsg struct {
	conn  *device.Client
	panel *panel.Panel
}

type connectFailedMsg struct {
	err error
}

type deviceEventMsg struct {
	change device.Change
}

type deviceGoneMsg struct{}

// panelKeyMap defines key bindings for the panel screen
type panelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Grab   key.Binding
	Digits key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k panelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Grab, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k panelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Grab, k.Digits},
		{k.Back, k.Quit},
	}
}

// grabbedKeyMap defines key bindings while a slider is grabbed
type grabbedKeyMap struct {
	Coarse  key.Binding
	Fine    key.Binding
	Release key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k grabbedKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fine, k.Coarse, k.Release}
}

// FullHelp returns keybindings for the expanded help view
func (k grabbedKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fine, k.Coarse, k.Release},
	}
}

// PanelModel represents the live control surface screen for one device.
type PanelModel struct {
	// Addr is the host:port of the device being controlled
	Addr string

	// DeviceLabel is the name shown in the header (patch name or nickname)
	DeviceLabel string

	// Connection state
	Connecting bool
	Conn       *device.Client
	Panel      *panel.Panel
	Err        error
	Gone       bool

	// Cursor state
	focus   int
	grabbed bool

	// Back request flag, polled by the app coordinator
	backRequested bool

	// UI state
	Width       int
	Height      int
	Spinner     spinner.Model
	Help        help.Model
	Keys        panelKeyMap
	GrabbedKeys grabbedKeyMap
}

// NewPanelModel creates a panel screen that will connect to addr.
func NewPanelModel(addr, label string) PanelModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	h := help.New()

	keys := panelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous step"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next step"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Grab: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "grab slider"),
		),
		Digits: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to step"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "d"),
			key.WithHelp("esc", "disconnect"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	grabbedKeys := grabbedKeyMap{
		Fine: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "adjust"),
		),
		Coarse: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "adjust x10"),
		),
		Release: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "release"),
		),
	}

	return PanelModel{
		Addr:        addr,
		DeviceLabel: label,
		Connecting:  true,
		Spinner:     s,
		Help:        h,
		Keys:        keys,
		GrabbedKeys: grabbedKeys,
	}
}

// Init starts the connection attempt.
func (m PanelModel) Init() tea.Cmd {
	return tea.Batch(
		connectDevice(m.Addr),
		m.Spinner.Tick,
	)
}

// connectDevice dials the device, records the sighting in the local
// registry, and builds the widget panel with the configured presentation
// rule.
func connectDevice(addr string) tea.Cmd {
	return func() tea.Msg {
		conn, err := device.Dial(addr)
		if err != nil {
			return connectFailedMsg{err: err}
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			// A broken registry file never blocks a session
			registry = config.NewRegistry()
		} else {
			registry.RecordSighting(conn.Name(), addr)
			_ = registry.Save()
		}

		lead, group := registry.PresentationRule()
		p := panel.Build(conn, panel.Options{
			LeadParam: lead,
			LeadGroup: group,
		})

		return connectedMsg{conn: conn, panel: p}
	}
}

// listenForChanges waits for the next device-originated change event. It is
// re-armed after every message so the event queue drains continuously
// through the single Update loop.
func listenForChanges(p *panel.Panel, conn *device.Client) tea.Cmd {
	return func() tea.Msg {
		select {
		case c := <-p.Events():
			return deviceEventMsg{change: c}
		case <-conn.Done():
			return deviceGoneMsg{}
		}
	}
}

// IsBackRequested reports whether the user asked to leave this screen.
func (m PanelModel) IsBackRequested() bool {
	return m.backRequested
}

// Teardown releases the device connection. Called by the coordinator when
// leaving this screen.
func (m *PanelModel) Teardown() {
	if m.Panel != nil {
		m.Panel.Close()
		m.Panel = nil
	}
	if m.Conn != nil {
		_ = m.Conn.Close()
		m.Conn = nil
	}
}

// Update handles messages and updates the model
func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case connectedMsg:
		m.Connecting = false
		m.Conn = msg.conn
		m.Panel = msg.panel
		if m.DeviceLabel == "" || m.DeviceLabel == "manual" {
			m.DeviceLabel = msg.conn.Name()
		}
		return m, listenForChanges(m.Panel, m.Conn)

	case connectFailedMsg:
		m.Connecting = false
		m.Err = msg.err
		return m, nil

	case deviceEventMsg:
		if m.Panel == nil {
			return m, nil
		}
		m.Panel.Dispatch(msg.change.ID, msg.change.Value)
		return m, listenForChanges(m.Panel, m.Conn)

	case deviceGoneMsg:
		m.Gone = true
		m.grabbed = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		if m.Connecting {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateKeys handles keyboard input on the panel screen
func (m PanelModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Connection failed or dropped: any of the back keys leaves
	if m.Err != nil || m.Gone {
		switch msg.String() {
		case "esc", "d", "q", "enter":
			m.backRequested = true
		}
		return m, nil
	}

	if m.Connecting {
		if msg.String() == "esc" || msg.String() == "q" {
			m.backRequested = true
		}
		return m, nil
	}

	if m.grabbed {
		return m.updateGrabbed(msg)
	}

	widgets := m.Panel.Widgets()
	if len(widgets) == 0 {
		switch msg.String() {
		case "esc", "d", "q":
			m.backRequested = true
		}
		return m, nil
	}

	w := widgets[m.focus]

	switch msg.String() {
	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}

	case "down", "j":
		if m.focus < len(widgets)-1 {
			m.focus++
		}

	case " ":
		if w.Archetype == panel.Boolean {
			m.Panel.Toggle(w.ID)
		}

	case "enter":
		switch w.Archetype {
		case panel.Boolean:
			m.Panel.Toggle(w.ID)
		case panel.Continuous:
			m.Panel.BeginAdjust(w.ID)
			m.grabbed = true
		}

	case "left", "h":
		if w.Archetype == panel.DiscreteStepped {
			m.Panel.SelectStep(w.ID, w.ActiveStep()-1)
		}

	case "right", "l":
		if w.Archetype == panel.DiscreteStepped {
			m.Panel.SelectStep(w.ID, w.ActiveStep()+1)
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if w.Archetype == panel.DiscreteStepped {
			m.Panel.SelectStep(w.ID, int(msg.String()[0]-'1'))
		}

	case "esc", "d":
		m.backRequested = true
	}

	return m, nil
}

// updateGrabbed handles keyboard input while a slider is grabbed
func (m PanelModel) updateGrabbed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	widgets := m.Panel.Widgets()
	w := widgets[m.focus]

	switch msg.String() {
	case "left", "h":
		m.Panel.Adjust(w.ID, -1)

	case "right", "l":
		m.Panel.Adjust(w.ID, 1)

	case "pgup":
		m.Panel.Adjust(w.ID, 10)

	case "pgdown":
		m.Panel.Adjust(w.ID, -10)

	case "enter", "esc", " ":
		m.Panel.EndAdjust(w.ID)
		m.grabbed = false
	}

	return m, nil
}

// View renders the panel screen
func (m PanelModel) View() string {
	var content string
	switch {
	case m.Connecting:
		content = m.renderConnecting()
	case m.Err != nil:
		content = m.renderConnectError()
	case m.Gone:
		content = m.renderDisconnected()
	default:
		content = m.renderWidgets()
	}

	var helpText string
	if m.grabbed {
		helpText = m.Help.View(m.GrabbedKeys)
	} else {
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderConnecting renders the connection-in-progress state
func (m PanelModel) renderConnecting() string {
	width := m.Width
	if width == 0 {
		width = 72
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(fmt.Sprintf("%s CONNECTING", m.Spinner.View())),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Opening control session to %s", m.Addr)),
		"",
	)

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderConnectError renders a failed connection attempt
func (m PanelModel) renderConnectError() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(RenderError(fmt.Sprintf("Failed to connect to %s: %v", m.Addr, m.Err)))
	b.WriteString("\n\n")
	b.WriteString("  Troubleshooting:\n")
	b.WriteString("    • Check the device is powered on and reachable\n")
	b.WriteString("    • Confirm the patch runner is serving WebSocket control\n")
	b.WriteString("    • Press esc to go back and pick another device\n")

	return b.String()
}

// renderDisconnected renders the connection-lost state
func (m PanelModel) renderDisconnected() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(RenderError(fmt.Sprintf("Lost connection to %s", m.Addr)))
	b.WriteString("\n\n")
	b.WriteString("  Press esc to return to discovery.\n")

	return b.String()
}

// renderWidgets renders the control rows with a scroll window around the
// focused row.
func (m PanelModel) renderWidgets() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(DeviceNameStyle.Render(m.DeviceLabel))
	b.WriteString(SubtitleStyle.Render("  " + m.Addr))
	b.WriteString("\n\n")

	widgets := m.Panel.Widgets()
	if len(widgets) == 0 {
		b.WriteString(SubtitleStyle.Render("  This patch exposes no controls."))
		b.WriteString("\n")
		return b.String()
	}

	first, last := m.visibleRange(len(widgets))
	if first > 0 {
		b.WriteString(SubtitleStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := first; i < last; i++ {
		focused := i == m.focus
		grabbed := focused && m.grabbed
		b.WriteString(widgets[i].View(focused, grabbed))
		b.WriteString("\n")
	}

	if last < len(widgets) {
		b.WriteString(SubtitleStyle.Render("  ↓ more"))
		b.WriteString("\n")
	}

	return b.String()
}

// visibleRange computes the window of widget rows that fits the terminal.
func (m PanelModel) visibleRange(total int) (int, int) {
	// Rows consumed by the container, header line and scroll markers
	avail := m.Height - 12
	if avail < 3 {
		avail = 3
	}
	if total <= avail {
		return 0, total
	}

	first := m.focus - avail/2
	if first < 0 {
		first = 0
	}
	last := first + avail
	if last > total {
		last = total
		first = last - avail
	}
	return first, last
}
