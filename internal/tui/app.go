package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ProfessorBadTrip/patchdeck/internal/config"
	"github.com/ProfessorBadTrip/patchdeck/internal/discovery"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenPanel     Screen = "panel"
)

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	DiscoveryModel DiscoveryModel
	PanelModel     PanelModel

	// Shared application state
	SelectedDevice *discovery.Device

	// DirectAddr, when non-empty, skips discovery and connects straight
	// to this host:port.
	DirectAddr string

	// UI state
	Width  int
	Height int
}

// NewAppModel creates a new application model. If directAddr is non-empty
// the app opens the panel screen immediately; otherwise it starts on
// discovery.
func NewAppModel(directAddr string) AppModel {
	model := AppModel{
		DirectAddr: directAddr,
	}

	if directAddr != "" {
		model.CurrentScreen = ScreenPanel
		model.PanelModel = NewPanelModel(directAddr, deviceNickname(directAddr, ""))
	} else {
		model.CurrentScreen = ScreenDiscovery
		model.DiscoveryModel = NewDiscoveryModel()
	}

	return model
}

// deviceNickname resolves the display label for a device: the configured
// nickname when one exists, otherwise the given fallback.
func deviceNickname(name, fallback string) string {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fallback
	}
	if d := registry.GetDevice(name); d != nil && d.Nickname != "" {
		return d.Nickname
	}
	return fallback
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.Init()
	case ScreenPanel:
		return m.PanelModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.DiscoveryModel.Width = msg.Width
		m.DiscoveryModel.Height = msg.Height
		m.PanelModel.Width = msg.Width
		m.PanelModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			m.PanelModel.Teardown()
			return m, tea.Quit
		}
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDiscovery:
		updated, c := m.DiscoveryModel.Update(msg)
		m.DiscoveryModel = updated.(DiscoveryModel)
		cmd = c

		// Check if user selected a device
		if m.DiscoveryModel.Selected {
			m.SelectedDevice = m.DiscoveryModel.GetSelectedDevice()
			if m.SelectedDevice != nil {
				return m.openPanel(m.SelectedDevice)
			}
		}

	case ScreenPanel:
		updated, c := m.PanelModel.Update(msg)
		m.PanelModel = updated.(PanelModel)
		cmd = c

		// Check if user wants to go back
		if m.PanelModel.IsBackRequested() {
			return m.leavePanel()
		}
	}

	return m, cmd
}

// openPanel transitions to the panel screen for the given device
func (m AppModel) openPanel(dev *discovery.Device) (tea.Model, tea.Cmd) {
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = ScreenPanel

	label := deviceNickname(dev.Name, dev.Name)
	m.PanelModel = NewPanelModel(dev.Addr(), label)
	m.PanelModel.Width = m.Width
	m.PanelModel.Height = m.Height

	return m, m.PanelModel.Init()
}

// leavePanel closes the device session and returns to discovery, or quits
// when the app was launched straight into a panel.
func (m AppModel) leavePanel() (tea.Model, tea.Cmd) {
	m.PanelModel.Teardown()

	if m.DirectAddr != "" {
		return m, tea.Quit
	}

	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = ScreenDiscovery
	m.DiscoveryModel = NewDiscoveryModel()
	m.DiscoveryModel.Width = m.Width
	m.DiscoveryModel.Height = m.Height

	return m, m.DiscoveryModel.Init()
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.View()
	case ScreenPanel:
		return m.PanelModel.View()
	default:
		return "Unknown screen"
	}
}
