package device

import (
	"encoding/json"
	"fmt"
)

// Wire message types
const (
	// MsgDescription is sent by the device once after connect and carries
	// the ordered parameter list
	MsgDescription = "description"

	// MsgParamChange is broadcast by the device on every parameter change
	MsgParamChange = "param_change"

	// MsgSetParam is sent by the client to command a parameter write
	MsgSetParam = "set_param"
)

// Message is the wire envelope shared by all protocol messages. Fields not
// relevant to a given type are left zero and omitted on the wire.
type Message struct {
	Type string `json:"type"`

	// Description fields
	Device string      `json:"device,omitempty"`
	Params []Parameter `json:"params,omitempty"`

	// Change / set fields
	ID    string  `json:"id,omitempty"`
	Value float64 `json:"value"`
}

// ParseMessage decodes and minimally validates a wire message.
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}

	switch msg.Type {
	case MsgDescription:
		// An empty parameter list is legal (a patch with no controls)
	case MsgParamChange, MsgSetParam:
		if msg.ID == "" {
			return nil, fmt.Errorf("%w: %s without id", ErrBadMessage, msg.Type)
		}
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrBadMessage)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}

	return &msg, nil
}

// EncodeSet builds the wire form of a set_param command.
func EncodeSet(id string, value float64) ([]byte, error) {
	return json.Marshal(Message{Type: MsgSetParam, ID: id, Value: value})
}

// EncodeChange builds the wire form of a param_change broadcast. Used by
// the mock device and by tests.
func EncodeChange(id string, value float64) ([]byte, error) {
	return json.Marshal(Message{Type: MsgParamChange, ID: id, Value: value})
}

// EncodeDescription builds the wire form of a description message.
func EncodeDescription(name string, params []Parameter) ([]byte, error) {
	return json.Marshal(Message{Type: MsgDescription, Device: name, Params: params})
}
