// Package discovery provides mDNS-based discovery of patch devices on the
// local network.
//
// Patch devices advertise their WebSocket control endpoint using the
// "_patchws._tcp" service type. The service instance name is the patch name
// the device is running, and TXT records carry additional metadata such as
// the runner version.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for "_patchws._tcp" service advertisements
//  3. Collects device information (patch name, hostname, IP, port, metadata)
//  4. Returns a list of discovered devices after the timeout period
//
// # Usage Example
//
//	// Discover devices with 10-second timeout
//	devices, err := discovery.ScanForDevices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Print discovered devices
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s\n", device.Name, device.Addr())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
