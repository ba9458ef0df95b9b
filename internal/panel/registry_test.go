package panel

import (
	"math"
	"testing"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
)

// fakeConn is an in-memory device.Conn for exercising the panel without a
// WebSocket. Writes are recorded; emit simulates a device-originated
// change event.
type fakeConn struct {
	params []device.Parameter
	writes []device.Change
	values map[string]float64
	subs   []func(device.Change)
}

func newFakeConn(params ...device.Parameter) *fakeConn {
	f := &fakeConn{params: params, values: make(map[string]float64)}
	for _, p := range params {
		f.values[p.ID] = p.Value
	}
	return f
}

func (f *fakeConn) Parameters() []device.Parameter { return f.params }

func (f *fakeConn) Set(id string, value float64) {
	f.writes = append(f.writes, device.Change{ID: id, Value: value})
	f.values[id] = value
}

func (f *fakeConn) Value(id string) (float64, bool) {
	v, ok := f.values[id]
	return v, ok
}

func (f *fakeConn) Subscribe(fn func(device.Change)) func() {
	f.subs = append(f.subs, fn)
	return func() { f.subs = nil }
}

// emit delivers a change event the way the device would: update the
// authoritative value, then notify subscribers.
func (f *fakeConn) emit(id string, value float64) {
	f.values[id] = value
	for _, fn := range f.subs {
		fn(device.Change{ID: id, Value: value})
	}
}

// testParams is a representative parameter set covering all archetypes
func testParams() []device.Parameter {
	return []device.Parameter{
		{ID: "bypass", Min: 0, Max: 1, Steps: 2, Value: 0},
		{ID: "mode", Min: 0, Max: 3, Steps: 4, Value: 1, Labels: []string{"off", "low", "mid", "high"}},
		{ID: "gain", Min: 0, Max: 2, Steps: 1, Value: 1},
	}
}

// buildTestPanel builds a panel over a fake connection and returns both.
// Tests pump emitted events from the queue into Dispatch via drain,
// standing in for the TUI event loop.
func buildTestPanel(t *testing.T, params []device.Parameter) (*Panel, *fakeConn) {
	t.Helper()
	conn := newFakeConn(params...)
	p := Build(conn, Options{})
	t.Cleanup(p.Close)
	return p, conn
}

func (p *Panel) drain() {
	for {
		select {
		case c := <-p.Events():
			p.Dispatch(c.ID, c.Value)
		default:
			return
		}
	}
}

// TestToggleRoundTrip verifies a boolean control only ever writes min or max
func TestToggleRoundTrip(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())

	for i := 0; i < 5; i++ {
		p.Toggle("bypass")
	}

	if len(conn.writes) != 5 {
		t.Fatalf("expected 5 writes, got %d", len(conn.writes))
	}
	for i, w := range conn.writes {
		if w.Value != 0 && w.Value != 1 {
			t.Errorf("write %d: value %v is not min or max", i, w.Value)
		}
	}

	// Started off, odd number of toggles, should end on
	want := []float64{1, 0, 1, 0, 1}
	for i, w := range conn.writes {
		if w.Value != want[i] {
			t.Errorf("write %d: got %v, want %v", i, w.Value, want[i])
		}
	}
	if !p.Get("bypass").On() {
		t.Error("widget should be ON after odd toggle count")
	}
}

// TestDiscreteSingleSelection verifies exactly one active button after
// local activation and after remote events
func TestDiscreteSingleSelection(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())
	w := p.Get("mode")

	if w.ActiveStep() != 1 {
		t.Fatalf("initial active = %d, want 1", w.ActiveStep())
	}

	t.Run("local activation", func(t *testing.T) {
		p.SelectStep("mode", 3)
		if w.ActiveStep() != 3 {
			t.Errorf("active = %d, want 3", w.ActiveStep())
		}
		last := conn.writes[len(conn.writes)-1]
		if last.ID != "mode" || last.Value != 3 {
			t.Errorf("wrote %+v, want {mode 3}", last)
		}
	})

	t.Run("local activation clamps index", func(t *testing.T) {
		p.SelectStep("mode", 99)
		if w.ActiveStep() != 3 {
			t.Errorf("active = %d, want 3", w.ActiveStep())
		}
	})

	t.Run("remote event snaps to nearest grid position", func(t *testing.T) {
		conn.emit("mode", 1.9)
		p.drain()
		if w.ActiveStep() != 2 {
			t.Errorf("active = %d, want 2", w.ActiveStep())
		}
	})

	t.Run("out-of-range remote value clamps", func(t *testing.T) {
		conn.emit("mode", 250)
		p.drain()
		if w.ActiveStep() != 3 {
			t.Errorf("active = %d, want 3", w.ActiveStep())
		}
		conn.emit("mode", -10)
		p.drain()
		if w.ActiveStep() != 0 {
			t.Errorf("active = %d, want 0", w.ActiveStep())
		}
	})
}

// TestBooleanRemoteThreshold verifies the remote path recomputes ON/OFF
// from value >= 1, looser than the local equality test
func TestBooleanRemoteThreshold(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"exactly max", 1, true},
		{"above max", 1.5, true},
		{"zero", 0, false},
		{"intermediate is off", 0.7, false},
		{"negative", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, conn := buildTestPanel(t, testParams())
			conn.emit("bypass", tt.value)
			p.drain()
			if got := p.Get("bypass").On(); got != tt.want {
				t.Errorf("On() after remote %v = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// TestAntiFeedback verifies the core invariant: remote events never
// overwrite a continuous control mid-gesture, and the control
// resynchronizes from the device once the gesture ends
func TestAntiFeedback(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())
	w := p.Get("gain")

	p.BeginAdjust("gain")
	if !p.Adjusting() {
		t.Fatal("adjusting flag should be set")
	}

	p.Adjust("gain", 100) // 100 * (2/1000) = 0.2 above start
	wantLocal := w.DisplayValue()
	if math.Abs(wantLocal-1.2) > 1e-9 {
		t.Fatalf("display = %v, want about 1.2", wantLocal)
	}

	// Remote update during the gesture must be dropped visually
	conn.emit("gain", 0.3)
	p.drain()
	if w.DisplayValue() != wantLocal {
		t.Errorf("remote event overwrote in-progress gesture: display = %v", w.DisplayValue())
	}

	// At gesture end, display resynchronizes to the device's current value
	p.EndAdjust("gain")
	if p.Adjusting() {
		t.Error("adjusting flag should be clear")
	}
	if got, _ := conn.Value("gain"); w.DisplayValue() != got {
		t.Errorf("display = %v, want device value %v", w.DisplayValue(), got)
	}
}

// TestAdjustStreamsIntermediateValues verifies every adjustment writes to
// the device, not just the final position
func TestAdjustStreamsIntermediateValues(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())

	p.BeginAdjust("gain")
	before := len(conn.writes)
	p.Adjust("gain", 1)
	p.Adjust("gain", 1)
	p.Adjust("gain", -1)
	p.EndAdjust("gain")

	if got := len(conn.writes) - before; got != 3 {
		t.Errorf("expected 3 streamed writes, got %d", got)
	}
}

// TestAdjustClampsToRange verifies a gesture cannot push past the bounds
func TestAdjustClampsToRange(t *testing.T) {
	p, _ := buildTestPanel(t, testParams())
	w := p.Get("gain")

	p.BeginAdjust("gain")
	p.Adjust("gain", 100000)
	if w.DisplayValue() != 2 {
		t.Errorf("display = %v, want max 2", w.DisplayValue())
	}
	p.Adjust("gain", -200000)
	if w.DisplayValue() != 0 {
		t.Errorf("display = %v, want min 0", w.DisplayValue())
	}
	p.EndAdjust("gain")
}

// TestAdjustRequiresGesture verifies adjustments outside a gesture are
// ignored
func TestAdjustRequiresGesture(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())

	p.Adjust("gain", 5)
	if len(conn.writes) != 0 {
		t.Errorf("expected no writes, got %d", len(conn.writes))
	}
}

// TestRemoteUpdatesContinuousWhenIdle verifies remote events land when no
// gesture is in progress
func TestRemoteUpdatesContinuousWhenIdle(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())

	conn.emit("gain", 0.25)
	p.drain()
	if got := p.Get("gain").DisplayValue(); got != 0.25 {
		t.Errorf("display = %v, want 0.25", got)
	}
}

// TestDispatchUnknownID verifies events for unrendered parameters are
// ignored without disturbing existing widgets
func TestDispatchUnknownID(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())
	gainBefore := p.Get("gain").DisplayValue()
	modeBefore := p.Get("mode").ActiveStep()

	p.Dispatch("nonexistent", 42)

	if got := p.Get("gain").DisplayValue(); got != gainBefore {
		t.Errorf("gain display changed: %v", got)
	}
	if got := p.Get("mode").ActiveStep(); got != modeBefore {
		t.Errorf("mode active changed: %d", got)
	}
	if len(conn.writes) != 0 {
		t.Errorf("dispatch emitted %d writes", len(conn.writes))
	}
}

// TestDispatchNeverWritesBack verifies dispatch is strictly one-directional
func TestDispatchNeverWritesBack(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())

	conn.emit("bypass", 1)
	conn.emit("mode", 2)
	conn.emit("gain", 0.5)
	p.drain()

	if len(conn.writes) != 0 {
		t.Errorf("dispatch echoed %d writes back to the device", len(conn.writes))
	}
}

// TestLocalOpsOnWrongArchetype verifies archetype-mismatched operations
// are no-ops
func TestLocalOpsOnWrongArchetype(t *testing.T) {
	p, conn := buildTestPanel(t, testParams())

	p.Toggle("gain")
	p.SelectStep("bypass", 1)
	p.BeginAdjust("mode")
	p.Adjust("mode", 1)

	if len(conn.writes) != 0 {
		t.Errorf("expected no writes, got %d", len(conn.writes))
	}
	if p.Adjusting() {
		t.Error("adjusting flag set by non-continuous widget")
	}
}
