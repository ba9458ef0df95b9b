package device

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  bool
		wantType string
	}{
		{
			name:     "valid description",
			data:     `{"type":"description","device":"kick-drum","params":[{"id":"gain","name":"Gain","min":0,"max":2,"steps":1,"value":1}]}`,
			wantType: MsgDescription,
		},
		{
			name:     "description with no params",
			data:     `{"type":"description","device":"empty"}`,
			wantType: MsgDescription,
		},
		{
			name:     "valid param change",
			data:     `{"type":"param_change","id":"gain","value":0.5}`,
			wantType: MsgParamChange,
		},
		{
			name:     "valid set param",
			data:     `{"type":"set_param","id":"gain","value":1.2}`,
			wantType: MsgSetParam,
		},
		{
			name:    "param change without id",
			data:    `{"type":"param_change","value":0.5}`,
			wantErr: true,
		},
		{
			name:    "set param without id",
			data:    `{"type":"set_param","value":0.5}`,
			wantErr: true,
		},
		{
			name:    "missing type",
			data:    `{"id":"gain","value":0.5}`,
			wantErr: true,
		},
		{
			name:    "unknown type",
			data:    `{"type":"firmware_update","id":"x"}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			data:    `{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage([]byte(tt.data))

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMessage() error = nil, want error")
				}
				if !errors.Is(err, ErrBadMessage) {
					t.Errorf("ParseMessage() error = %v, want ErrBadMessage", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseMessage() error = %v", err)
			}
			if msg.Type != tt.wantType {
				t.Errorf("msg.Type = %q, want %q", msg.Type, tt.wantType)
			}
		})
	}
}

func TestParseMessage_Description(t *testing.T) {
	data := `{
		"type": "description",
		"device": "space-echo",
		"params": [
			{"id": "dry/wet", "name": "Dry/Wet", "min": 0, "max": 1, "steps": 1, "value": 0.5},
			{"id": "mode", "min": 0, "max": 3, "steps": 4, "labels": ["off", "low", "mid", "high"], "value": 1}
		]
	}`

	msg, err := ParseMessage([]byte(data))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}

	if msg.Device != "space-echo" {
		t.Errorf("msg.Device = %q, want %q", msg.Device, "space-echo")
	}
	if len(msg.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(msg.Params))
	}

	p := msg.Params[0]
	if p.ID != "dry/wet" || p.Name != "Dry/Wet" || p.Min != 0 || p.Max != 1 || p.Steps != 1 || p.Value != 0.5 {
		t.Errorf("unexpected first parameter: %+v", p)
	}

	p = msg.Params[1]
	if p.Name != "" {
		t.Errorf("second parameter Name = %q, want empty", p.Name)
	}
	if len(p.Labels) != 4 || p.Labels[2] != "mid" {
		t.Errorf("second parameter Labels = %v, want [off low mid high]", p.Labels)
	}
}

func TestEncodeSet(t *testing.T) {
	data, err := EncodeSet("gain", 1.5)
	if err != nil {
		t.Fatalf("EncodeSet() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if got["type"] != MsgSetParam {
		t.Errorf("type = %v, want %q", got["type"], MsgSetParam)
	}
	if got["id"] != "gain" {
		t.Errorf("id = %v, want %q", got["id"], "gain")
	}
	if got["value"] != 1.5 {
		t.Errorf("value = %v, want 1.5", got["value"])
	}
}

func TestEncodeChange_ZeroValueKept(t *testing.T) {
	data, err := EncodeChange("bypass", 0)
	if err != nil {
		t.Fatalf("EncodeChange() error = %v", err)
	}

	// A change to zero must still carry the value field on the wire.
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := got["value"]; !ok {
		t.Error("encoded change is missing the value field")
	}
}

func TestEncodeDescription_RoundTrip(t *testing.T) {
	params := []Parameter{
		{ID: "gain", Name: "Gain", Min: 0, Max: 2, Steps: 1, Value: 1},
	}

	data, err := EncodeDescription("kick-drum", params)
	if err != nil {
		t.Fatalf("EncodeDescription() error = %v", err)
	}

	msg, err := ParseMessage(data)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if msg.Type != MsgDescription || msg.Device != "kick-drum" || len(msg.Params) != 1 {
		t.Errorf("unexpected round-trip result: %+v", msg)
	}
}
