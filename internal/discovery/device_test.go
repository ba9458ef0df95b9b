package discovery

import (
	"testing"
	"time"
)

func TestDevice_String(t *testing.T) {
	device := &Device{
		Name:         "kick-drum",
		Hostname:     "patchbox.local.",
		IP:           "192.168.4.16",
		Port:         8765,
		DiscoveredAt: time.Now(),
	}

	got := device.String()
	want := "Patch device kick-drum (patchbox.local.) at 192.168.4.16:8765"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDevice_Addr(t *testing.T) {
	tests := []struct {
		name   string
		device *Device
		want   string
	}{
		{
			name:   "standard port",
			device: &Device{IP: "192.168.4.16", Port: 8765},
			want:   "192.168.4.16:8765",
		},
		{
			name:   "custom port",
			device: &Device{IP: "10.0.0.5", Port: 9000},
			want:   "10.0.0.5:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.Addr(); got != tt.want {
				t.Errorf("Addr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDevice_GetMetadata(t *testing.T) {
	device := &Device{
		Name: "kick-drum",
		Metadata: map[string]string{
			"version": "1.3.0",
		},
	}

	if got := device.GetMetadata("version"); got != "1.3.0" {
		t.Errorf("GetMetadata(version) = %q, want %q", got, "1.3.0")
	}

	if got := device.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %q, want empty", got)
	}

	var empty Device
	if got := empty.GetMetadata("anything"); got != "" {
		t.Errorf("GetMetadata on nil metadata map = %q, want empty", got)
	}
}
