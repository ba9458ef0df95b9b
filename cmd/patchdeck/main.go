// Patchdeck is a terminal control surface for networked audio patch devices.
//
// It discovers patch devices over mDNS, connects to their WebSocket control
// endpoint, and renders every published parameter as a live control: toggles,
// step selectors and sliders, synchronized in both directions.
//
// Usage:
//
//	patchdeck [command] [flags]
//
// Running without arguments launches the interactive control surface.
// See 'patchdeck --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ProfessorBadTrip/patchdeck/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patchdeck",
	Short: "Terminal control surface for patch devices",
	Long: `A terminal control surface for networked audio patch devices.

Discovers patch devices on the local network, connects to their WebSocket
control endpoint, and renders every published parameter as a live, two-way
synchronized control.

If no command is specified, the interactive surface will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the surface when no subcommand provided
		return runSurface(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("patchdeck %s (commit: %s)\n", version.Version, version.Commit)
	},
}
