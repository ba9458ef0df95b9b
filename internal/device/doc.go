// Package device implements the client side of the patch device protocol.
//
// A patch device is an audio-processing box (an RNBO-runner-style embedded
// host) that exposes its parameter set over a WebSocket connection. The
// device is the single source of truth for parameter values: the UI writes
// values to command the device and observes device-originated change events
// to stay synchronized.
//
// # Protocol
//
// All messages are JSON text frames. On connect the device sends one
// description message carrying the ordered parameter list:
//
//	{"type": "description", "device": "kick-drum", "params": [
//	    {"id": "gain", "name": "Gain", "min": 0, "max": 2, "steps": 1, "value": 1},
//	    ...
//	]}
//
// Thereafter the device streams change events whenever a parameter moves,
// whether from this client, another client, or the patch itself:
//
//	{"type": "param_change", "id": "gain", "value": 0.5}
//
// The client commands the device with set messages. Writes are
// fire-and-forget; there is no acknowledgement. The device answers with an
// ordinary param_change broadcast:
//
//	{"type": "set_param", "id": "gain", "value": 0.5}
//
// # Usage
//
//	client, err := device.Dial("192.168.4.16:8765")
//	if err != nil { ... }
//	defer client.Close()
//
//	cancel := client.Subscribe(func(c device.Change) {
//	    // delivered in arrival order, one goroutine
//	})
//	defer cancel()
//
//	client.Set("gain", 0.5)
//
// # Concurrency
//
// Subscribe callbacks run on the client's single read goroutine, so events
// are delivered strictly in arrival order and callbacks never overlap.
// Set and Value are safe to call from any goroutine.
package device
