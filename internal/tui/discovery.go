package tui

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	devices []*discovery.Device
	err     error
}

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// manualModeKeyMap defines key bindings for manual address entry mode
type manualModeKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (m manualModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (m manualModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Confirm, m.Cancel},
	}
}

// scanningKeyMap defines key bindings for scanning mode
type scanningKeyMap struct {
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (s scanningKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{s.Manual, s.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (s scanningKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{s.Manual, s.Quit},
	}
}

// emptyScreenKeyMap defines key bindings for empty results screen
type emptyScreenKeyMap struct {
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (e emptyScreenKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{e.Rescan, e.Manual, e.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (e emptyScreenKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{e.Rescan, e.Manual, e.Quit},
	}
}

// deviceItem wraps a Device for use with bubbles/list
type deviceItem struct {
	device *discovery.Device
}

// Implement list.Item interface
func (d deviceItem) FilterValue() string {
	// Filter by patch name, IP, or hostname
	return d.device.Name + " " + d.device.IP + " " + d.device.Hostname
}

// Title returns the patch name for list display
func (d deviceItem) Title() string {
	if d.device.Name == "manual" {
		return fmt.Sprintf("Manual: %s", d.device.Addr())
	}
	return d.device.Name
}

// Description returns device details for list display
func (d deviceItem) Description() string {
	runner := "Unknown"
	if v, ok := d.device.Metadata["version"]; ok {
		runner = v
	}
	return fmt.Sprintf("%s • Runner: %s • Ready", d.device.Addr(), runner)
}

// deviceDelegate is a custom list delegate for rendering device cards
type deviceDelegate struct {
	width int
}

func (d deviceDelegate) Height() int { return 8 } // Card height including borders

func (d deviceDelegate) Spacing() int { return 1 } // Spacing between cards

func (d deviceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d deviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	di, ok := item.(deviceItem)
	if !ok {
		return
	}

	dev := di.device
	selected := index == m.Index()

	var deviceName string
	if dev.Name == "manual" {
		deviceName = fmt.Sprintf("Manual: %s", dev.Addr())
	} else {
		deviceName = dev.Name
	}

	runner := "Unknown"
	if v, ok := dev.Metadata["version"]; ok {
		runner = v
	}

	var content strings.Builder

	// Add selection indicator to device name
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + deviceName))
	} else {
		content.WriteString("  " + deviceName)
	}
	content.WriteString("\n\n")

	// Device details
	content.WriteString(fmt.Sprintf("  Host:     %s\n", dev.Hostname))
	content.WriteString(fmt.Sprintf("  Address:  %s\n", dev.Addr()))
	content.WriteString(fmt.Sprintf("  Runner:   %s\n", runner))

	statusStyle := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	content.WriteString(fmt.Sprintf("  Status:   %s", statusStyle.Render("Ready")))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2).
		MarginLeft(2)

	// Calculate card width (leave room for margins and borders)
	cardWidth := d.width - 6
	if cardWidth < MinTerminalWidth-6 {
		cardWidth = MinTerminalWidth - 6
	}
	if cardWidth > MaxContentWidth-6 {
		cardWidth = MaxContentWidth - 6
	}

	cardStyle = cardStyle.Width(cardWidth)

	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// DiscoveryModel represents the device discovery screen state
type DiscoveryModel struct {
	// Discovery state
	Scanning   bool
	DeviceList list.Model
	Selected   bool
	Err        error

	// Manual address entry state
	ManualMode bool
	AddrInput  textinput.Model

	// UI state
	Width         int
	Height        int
	Spinner       spinner.Model
	ProgressBar   progress.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          discoveryKeyMap
	ManualKeys    manualModeKeyMap
	ScanningKeys  scanningKeyMap
	EmptyKeys     emptyScreenKeyMap
}

// NewDiscoveryModel creates a new discovery screen model
func NewDiscoveryModel() DiscoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	// Initialize address input
	addrInput := textinput.New()
	addrInput.Placeholder = "192.168.4.1:8765"
	addrInput.CharLimit = 64
	addrInput.Width = 30

	// Initialize progress bar
	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	// Initialize device list with custom delegate
	delegate := deviceDelegate{width: MinTerminalWidth}
	deviceList := list.New([]list.Item{}, delegate, 0, 0)
	deviceList.Title = "Discovered Patch Devices"
	deviceList.SetShowStatusBar(false)
	deviceList.SetFilteringEnabled(true)
	deviceList.Styles.Title = TitleStyle

	h := help.New()

	keys := discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "connect"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual address"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	manualKeys := manualModeKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	scanningKeys := scanningKeyMap{
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual address"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	emptyKeys := emptyScreenKeyMap{
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual address"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	return DiscoveryModel{
		Scanning:     false,
		DeviceList:   deviceList,
		Selected:     false,
		ManualMode:   false,
		AddrInput:    addrInput,
		Spinner:      s,
		ProgressBar:  progressBar,
		Help:         h,
		Keys:         keys,
		ManualKeys:   manualKeys,
		ScanningKeys: scanningKeys,
		EmptyKeys:    emptyKeys,
	}
}

// Init initializes the discovery model
func (m DiscoveryModel) Init() tea.Cmd {
	// Start scanning immediately - send start message then begin scan
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanDevices,
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Update list size
		m.DeviceList.SetWidth(msg.Width - 4)
		m.DeviceList.SetHeight(msg.Height - 10) // Leave room for header/footer

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		// Convert devices to list items
		items := make([]list.Item, len(msg.devices))
		for i, dev := range msg.devices {
			items[i] = deviceItem{device: dev}
		}
		m.DeviceList.SetItems(items)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Update list if not in manual mode or scanning
	if !m.ManualMode && !m.Scanning {
		m.DeviceList, cmd = m.DeviceList.Update(msg)
	}

	return m, cmd
}

// updateNormalMode handles keyboard input in normal device list mode
func (m DiscoveryModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter", " ":
		// Get selected device from list
		if selectedItem := m.DeviceList.SelectedItem(); selectedItem != nil {
			m.Selected = true
			return m, nil
		}

	case "r":
		// Rescan
		m.DeviceList.SetItems([]list.Item{})
		m.Err = nil
		return m, tea.Batch(
			func() tea.Msg { return scanStartMsg{} },
			scanDevices,
			m.Spinner.Tick,
		)

	case "m":
		// Switch to manual address entry mode
		m.ManualMode = true
		m.AddrInput.SetValue("")
		m.AddrInput.Focus()
	}

	// Let the list handle up/down navigation
	return m, nil
}

// updateManualMode handles keyboard input in manual address entry mode
func (m DiscoveryModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		// Cancel manual entry
		m.ManualMode = false
		m.AddrInput.SetValue("")
		m.AddrInput.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.AddrInput.Value())
		if value != "" {
			dev := manualDevice(value)
			// Add to list
			newItem := deviceItem{device: dev}
			items := append([]list.Item{newItem}, m.DeviceList.Items()...)
			m.DeviceList.SetItems(items)
			m.DeviceList.Select(0) // Select the newly added item
			m.ManualMode = false
			m.AddrInput.SetValue("")
			m.AddrInput.Blur()
			return m, nil
		}
	}

	// Update the text input
	m.AddrInput, cmd = m.AddrInput.Update(msg)
	return m, cmd
}

// manualDevice builds a Device from a user-typed host or host:port.
func manualDevice(value string) *discovery.Device {
	host := value
	port := device.DefaultPort
	if h, p, err := net.SplitHostPort(value); err == nil {
		if n, err := strconv.Atoi(p); err == nil {
			host = h
			port = n
		}
	}
	return &discovery.Device{
		Name:         "manual",
		Hostname:     host,
		IP:           host,
		Port:         port,
		DiscoveredAt: time.Now(),
	}
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	// Use default width if not set
	width := m.Width
	if width == 0 {
		width = 72
	}

	// Build main content area
	var content string
	if m.ManualMode {
		content = m.renderManualEntry()
	} else if m.Scanning {
		content = m.renderScanning(width)
	} else {
		content = m.renderDeviceResults()
	}

	// Determine context-sensitive help text using bubbles/help
	var helpText string
	if m.ManualMode {
		helpText = m.Help.View(m.ManualKeys)
	} else if m.Scanning {
		helpText = m.Help.View(m.ScanningKeys)
	} else if len(m.DeviceList.Items()) > 0 {
		helpText = m.Help.View(m.Keys)
	} else {
		helpText = m.Help.View(m.EmptyKeys)
	}

	// Wrap with application container (full-screen layout with height)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderScanning renders a prominent, centered scanning progress display
func (m DiscoveryModel) renderScanning(width int) string {
	elapsed := time.Since(m.ScanStartTime)
	elapsedSec := int(elapsed.Seconds())

	// Progress against the fixed scan window
	scanSec := int(discovery.DefaultScanTimeout.Seconds())
	progressPercent := min(100, (elapsedSec*100)/scanSec)
	progressFloat := float64(progressPercent) / 100.0

	title := fmt.Sprintf("%s SEARCHING FOR PATCH DEVICES", m.Spinner.View())
	subtitle := "Scanning your network for patch devices..."

	progressBar := m.ProgressBar.ViewAs(progressFloat)
	elapsedText := fmt.Sprintf("Elapsed: %ds", elapsedSec)

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(title),
		"",
		SubtitleStyle.Render(subtitle),
		"",
		progressBar,
		"",
		SubtitleStyle.Render(elapsedText),
		"",
	)

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderDeviceResults renders the device list or "no devices found" message
func (m DiscoveryModel) renderDeviceResults() string {
	var b strings.Builder

	b.WriteString("\n")

	if m.Err != nil {
		// Error state
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n")

		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the patch device is powered on\n")
		b.WriteString("    • Check that the patch runner is serving WebSocket control\n")
		b.WriteString("    • Verify you're on the same network segment\n")
		b.WriteString("    • Use 'm' to enter the address manually\n")

	} else if len(m.DeviceList.Items()) == 0 {
		// No devices found
		b.WriteString("  ")
		warningStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
		b.WriteString(warningStyle.Render("⚠ No patch devices found on your network"))
		b.WriteString("\n\n")

		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the patch device is powered on\n")
		b.WriteString("    • Check that the patch runner is serving WebSocket control\n")
		b.WriteString("    • Verify you're on the same network segment\n")
		b.WriteString("    • Use 'm' to enter the address manually\n")
		b.WriteString("\n")

	} else {
		// Devices found - render the list
		b.WriteString(m.DeviceList.View())
	}

	return b.String()
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// renderManualEntry renders the manual address entry dialog
func (m DiscoveryModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle("Enter device address (host or host:port)"))
	b.WriteString("\n\n")

	b.WriteString("  Address: ")
	b.WriteString(m.AddrInput.View())
	b.WriteString("\n\n")

	return b.String()
}

// GetSelectedDevice returns the selected device (if any)
func (m DiscoveryModel) GetSelectedDevice() *discovery.Device {
	if m.Selected {
		if selectedItem := m.DeviceList.SelectedItem(); selectedItem != nil {
			if item, ok := selectedItem.(deviceItem); ok {
				return item.device
			}
		}
	}
	return nil
}

// scanDevices is a command that performs device discovery
func scanDevices() tea.Msg {
	scanner := discovery.NewScanner()
	devices, err := scanner.ScanForDevices()
	return scanCompleteMsg{
		devices: devices,
		err:     err,
	}
}
