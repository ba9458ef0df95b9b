package main

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ProfessorBadTrip/patchdeck/internal/config"
	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/discovery"
	"github.com/ProfessorBadTrip/patchdeck/internal/logging"
	"github.com/ProfessorBadTrip/patchdeck/internal/mockdevice"
	"github.com/ProfessorBadTrip/patchdeck/internal/tui"
	"github.com/ProfessorBadTrip/patchdeck/internal/ui"
)

// Command flags
var (
	deviceAddr   string
	devicePort   int
	scanTimeout  int
	outputFormat string

	mockName        string
	mockHost        string
	mockDriftParam  string
	mockDriftPeriod int
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "device", "", "Device address, host or host:port (skips discovery)")
	rootCmd.PersistentFlags().IntVar(&devicePort, "port", device.DefaultPort, "Device WebSocket port")

	// Add subcommands directly to root
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(surfaceCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(nicknameCmd)
}

// scanCmd discovers devices on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for patch devices on the network",
	Long: `Scan for patch devices using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from patch devices and displays
all discovered devices with their addresses and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  patchdeck scan

  # Quick 3-second scan
  patchdeck scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for patch devices (timeout: %ds)...\n\n", scanTimeout)

	devices, err := discovery.ScanForDevices(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the patch device is powered on")
		fmt.Println("  - Check that the patch runner is serving WebSocket control")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --device flag to specify the address manually")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	for i, dev := range devices {
		fmt.Printf("%d. %s\n", i+1, dev.Name)
		fmt.Printf("   Host:    %s\n", dev.Hostname)
		fmt.Printf("   Address: %s\n", dev.Addr())
		if len(dev.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", dev.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'patchdeck show --device <addr>' to list a device's parameters")
	fmt.Println("Use 'patchdeck' to open the interactive control surface")

	return nil
}

// showCmd lists a device's parameters
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a device's parameters",
	Long: `Connect to a patch device and list every parameter it publishes,
with its control shape (toggle, stepped, continuous), declared range and
current value.`,
	Example: `  # Show parameters with auto-discovery
  patchdeck show

  # Show parameters of a specific device
  patchdeck show --device 192.168.4.16

  # JSON output for scripting
  patchdeck show --device 192.168.4.16 --format json`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	addr, err := getDeviceAddr()
	if err != nil {
		return err
	}

	client, err := device.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	params := client.Parameters()

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(struct {
			Device string             `json:"device"`
			Addr   string             `json:"addr"`
			Params []device.Parameter `json:"params"`
		}{client.Name(), addr, params}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))

	case "table":
		fallthrough
	default:
		fmt.Println(ui.RenderDeviceHeader(client.Name(), addr, len(params)))
		fmt.Println()
		fmt.Print(ui.RenderParameterTable(params))
	}

	return nil
}

// setCmd writes one parameter value
var setCmd = &cobra.Command{
	Use:   "set <param-id> <value>",
	Short: "Set a parameter value",
	Long: `Write a single parameter value to a patch device and wait for the
device's change broadcast confirming the value it settled on. The device
clamps out-of-range values, so the confirmed value can differ from the
requested one.`,
	Example: `  # Set the dry/wet mix to 0.5
  patchdeck set dry/wet 0.5 --device 192.168.4.16

  # Engage the bypass toggle
  patchdeck set bypass 1 --device 192.168.4.16`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	paramID := args[0]
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}

	addr, err := getDeviceAddr()
	if err != nil {
		return err
	}

	client, err := device.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, ok := client.Value(paramID); !ok {
		return fmt.Errorf("device %s has no parameter %q", client.Name(), paramID)
	}

	// Subscribe before writing so the confirmation broadcast is not missed
	confirmed := make(chan float64, 1)
	cancel := client.Subscribe(func(c device.Change) {
		if c.ID == paramID {
			select {
			case confirmed <- c.Value:
			default:
			}
		}
	})
	defer cancel()

	client.Set(paramID, value)

	select {
	case v := <-confirmed:
		fmt.Printf("✓ %s = %v (confirmed by %s)\n", paramID, v, client.Name())
	case <-time.After(2 * time.Second):
		fmt.Printf("✓ %s = %v (sent, no confirmation broadcast)\n", paramID, value)
	}

	return nil
}

// surfaceCmd launches the interactive control surface
var surfaceCmd = &cobra.Command{
	Use:   "surface",
	Short: "Launch the interactive control surface",
	Long: `Launch the full-screen terminal control surface.

The surface provides:
- Network discovery of patch devices
- A live control row for every published parameter
- Two-way synchronization with the device

This is the default command when patchdeck is run without arguments.`,
	Example: `  # Launch with auto-discovery
  patchdeck surface
  # Or simply:
  patchdeck

  # Connect straight to a device
  patchdeck surface --device 192.168.4.16
  patchdeck --device 192.168.4.16:8765`,
	RunE: runSurface,
}

func runSurface(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	var directAddr string
	if deviceAddr != "" {
		directAddr = normalizeAddr(deviceAddr)
	}

	model := tui.NewAppModel(directAddr)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("surface error: %w", err)
	}

	return nil
}

// mockCmd runs an in-process mock patch device
var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a mock patch device",
	Long: `Run a mock patch device that serves the control protocol over
WebSocket: a parameter description on connect, set handling with range
clamping, and change broadcasts to every connected surface.

Useful for trying the surface without hardware, and for integration tests.`,
	Example: `  # Serve the built-in demo patch on the default port
  patchdeck mock

  # Serve on a custom port with a self-modulating parameter
  patchdeck mock --port 9000 --drift dry/wet --drift-period 20`,
	RunE: runMock,
}

func init() {
	mockCmd.Flags().StringVar(&mockHost, "host", "0.0.0.0", "Address to listen on")
	mockCmd.Flags().StringVar(&mockName, "name", "mock-patch", "Device name to announce")
	mockCmd.Flags().StringVar(&mockDriftParam, "drift", "", "Parameter to modulate on a timer")
	mockCmd.Flags().IntVar(&mockDriftPeriod, "drift-period", 30, "Drift sweep period in seconds")
}

func runMock(cmd *cobra.Command, args []string) error {
	server, err := mockdevice.New(&mockdevice.Config{
		Host:        mockHost,
		Port:        devicePort,
		DeviceName:  mockName,
		LogLevel:    "info",
		DriftParam:  mockDriftParam,
		DriftPeriod: time.Duration(mockDriftPeriod) * time.Second,
	}, nil)
	if err != nil {
		return err
	}

	return server.Start()
}

// nicknameCmd sets a display nickname for a device
var nicknameCmd = &cobra.Command{
	Use:   "nickname <device-name> <nickname>",
	Short: "Set a display nickname for a device",
	Long: `Store a user-friendly nickname for a patch device in the local
configuration file. The surface shows the nickname in place of the device's
self-reported name.`,
	Example: `  patchdeck nickname kick-drum "Kick (studio B)"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runNickname,
}

func runNickname(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry.EnsureDevice(args[0]).Nickname = args[1]
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ %s will be shown as %q\n", args[0], args[1])
	return nil
}

// normalizeAddr turns a host or host:port flag value into host:port using
// the --port default when unspecified.
func normalizeAddr(value string) string {
	if _, _, err := net.SplitHostPort(value); err == nil {
		return value
	}
	return fmt.Sprintf("%s:%d", value, devicePort)
}

// getDeviceAddr resolves the target device address from the --device flag
// or, failing that, a short discovery scan.
func getDeviceAddr() (string, error) {
	if deviceAddr != "" {
		return normalizeAddr(deviceAddr), nil
	}

	fmt.Println("No device specified, attempting auto-discovery...")
	devices, err := discovery.ScanForDevices(5 * time.Second)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}

	if len(devices) == 0 {
		return "", fmt.Errorf("no devices found. Use --device flag to specify the address manually")
	}

	if len(devices) > 1 {
		fmt.Printf("Found %d devices:\n", len(devices))
		for i, dev := range devices {
			fmt.Printf("%d. %s (%s)\n", i+1, dev.Name, dev.Addr())
		}
		return "", fmt.Errorf("multiple devices found. Use --device flag to specify which one")
	}

	dev := devices[0]
	fmt.Printf("Found device: %s (%s)\n\n", dev.Name, dev.Addr())
	return dev.Addr(), nil
}
