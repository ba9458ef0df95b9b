// Package mockdevice implements an in-process stand-in for a patch device.
//
// The mock serves the same WebSocket protocol a real device does: it sends a
// description message when a surface connects, accepts set_param commands
// (clamping values to the parameter's declared range), and broadcasts every
// resulting param_change to all connected surfaces. Multiple surfaces can
// connect at once and will see each other's writes, which makes the mock a
// convenient way to exercise two-way synchronization without hardware.
//
// An optional drift mode sweeps one parameter across its range on a timer,
// so a connected surface has remote traffic to react to.
//
// Run it from the CLI with:
//
//	patchdeck mock --port 8765
package mockdevice
