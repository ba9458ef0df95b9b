package device

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testDevice is an in-process WebSocket endpoint that speaks the patch
// device protocol: description on connect, then echoes set_param commands
// back as param_change broadcasts.
type testDevice struct {
	t      *testing.T
	server *httptest.Server
	params []Parameter

	// received collects set_param commands in arrival order
	received chan Message
}

func newTestDevice(t *testing.T, params []Parameter) *testDevice {
	t.Helper()

	td := &testDevice{
		t:        t,
		params:   params,
		received: make(chan Message, 16),
	}

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc(DefaultPath, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		desc, err := EncodeDescription("test-patch", td.params)
		if err != nil {
			t.Errorf("encode description: %v", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, desc); err != nil {
			return
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := ParseMessage(data)
			if err != nil || msg.Type != MsgSetParam {
				continue
			}
			td.received <- *msg

			// Echo the write back as a broadcast, like a real device does
			change, _ := EncodeChange(msg.ID, msg.Value)
			if err := conn.WriteMessage(websocket.TextMessage, change); err != nil {
				return
			}
		}
	})

	td.server = httptest.NewServer(mux)
	t.Cleanup(td.server.Close)
	return td
}

func (td *testDevice) addr() string {
	return strings.TrimPrefix(td.server.URL, "http://")
}

func testDeviceParams() []Parameter {
	return []Parameter{
		{ID: "gain", Name: "Gain", Min: 0, Max: 2, Steps: 1, Value: 1},
		{ID: "bypass", Min: 0, Max: 1, Steps: 2, Value: 0},
	}
}

func TestDial_ReceivesDescription(t *testing.T) {
	td := newTestDevice(t, testDeviceParams())

	client, err := Dial(td.addr())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	if client.Name() != "test-patch" {
		t.Errorf("Name() = %q, want %q", client.Name(), "test-patch")
	}

	params := client.Parameters()
	if len(params) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params))
	}
	if params[0].ID != "gain" || params[1].ID != "bypass" {
		t.Errorf("parameter order = [%s %s], want [gain bypass]", params[0].ID, params[1].ID)
	}

	if v, ok := client.Value("gain"); !ok || v != 1 {
		t.Errorf("Value(gain) = %v, %v; want 1, true", v, ok)
	}
}

func TestDial_ConnectionRefused(t *testing.T) {
	_, err := Dial("127.0.0.1:1")
	if err == nil {
		t.Fatal("Dial() to closed port succeeded, want error")
	}
}

func TestClient_SetReachesDevice(t *testing.T) {
	td := newTestDevice(t, testDeviceParams())

	client, err := Dial(td.addr())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	client.Set("gain", 1.5)

	select {
	case msg := <-td.received:
		if msg.ID != "gain" || msg.Value != 1.5 {
			t.Errorf("device received %+v, want gain=1.5", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("device never received the set command")
	}

	// Set updates the last-known value immediately, before any echo
	if v, ok := client.Value("gain"); !ok || v != 1.5 {
		t.Errorf("Value(gain) = %v, %v; want 1.5, true", v, ok)
	}
}

func TestClient_SubscribeReceivesChanges(t *testing.T) {
	td := newTestDevice(t, testDeviceParams())

	client, err := Dial(td.addr())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	changes := make(chan Change, 16)
	cancel := client.Subscribe(func(c Change) {
		changes <- c
	})
	defer cancel()

	// The test device echoes writes back as broadcasts
	client.Set("bypass", 1)

	select {
	case c := <-changes:
		if c.ID != "bypass" || c.Value != 1 {
			t.Errorf("got change %+v, want bypass=1", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the change event")
	}
}

func TestClient_SubscribeCancel(t *testing.T) {
	td := newTestDevice(t, testDeviceParams())

	client, err := Dial(td.addr())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	changes := make(chan Change, 16)
	cancel := client.Subscribe(func(c Change) {
		changes <- c
	})
	cancel()

	client.Set("gain", 0.2)

	// Wait for the echo to have been processed by the read loop
	select {
	case msg := <-td.received:
		_ = msg
	case <-time.After(2 * time.Second):
		t.Fatal("device never received the set command")
	}
	time.Sleep(100 * time.Millisecond)

	select {
	case c := <-changes:
		t.Errorf("cancelled subscriber received change %+v", c)
	default:
	}
}

func TestClient_DoneOnServerClose(t *testing.T) {
	td := newTestDevice(t, testDeviceParams())

	client, err := Dial(td.addr())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	td.server.CloseClientConnections()

	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done() not closed after server dropped the connection")
	}
}
