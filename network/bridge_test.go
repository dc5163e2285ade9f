package network

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/selection"
	"github.com/lixenwraith/skirmish/status"
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

type sent struct {
	event   string
	payload any
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(event string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{event, payload})
	return nil
}

func (f *fakeSender) count(event string) int {
	n := 0
	for _, s := range f.sent {
		if s.event == event {
			n++
		}
	}
	return n
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestBridge(opts BridgeOptions) (*Bridge, *engine.Session, *fakeSender) {
	s := engine.NewSession(engine.SessionDefaults{})
	f := &fakeSender{}
	return NewBridge(s, f, opts), s, f
}

func frame(event, data string) Inbound {
	return Inbound{Event: event, Data: []byte(data)}
}

func TestDispatchAppliesServerMessages(t *testing.T) {
	b, s, _ := newTestBridge(BridgeOptions{})

	b.Dispatch(frame(EventPlayerID, `{"player_id": 4}`), t0)
	if id, ok := s.PlayerID(); !ok || id != 4 {
		t.Errorf("player id = %d, %v", id, ok)
	}

	b.Dispatch(frame(EventGameState, `{"players":[{"id":4,"position":[1,2],"color":[0,0,0]}],"troops":[],"map_size":[100,100]}`), t0)
	first := b.Snapshot()
	if first == nil || len(first.Players) != 1 {
		t.Fatalf("snapshot = %+v", first)
	}

	b.Dispatch(frame(EventGameState, `{"players":[],"troops":[],"map_size":[50,50]}`), t0)
	if b.Snapshot() == first || b.Snapshot().MapSize != vmath.V2(50, 50) {
		t.Error("snapshot not replaced wholesale")
	}

	b.Dispatch(frame(EventPlayerID, `{"player_id": "9"}`), t0)
	if id, _ := s.PlayerID(); id != 9 {
		t.Errorf("identity not overwritten, id = %d", id)
	}
}

func TestDispatchDropsMalformedPayload(t *testing.T) {
	b, _, _ := newTestBridge(BridgeOptions{})
	b.Dispatch(frame(EventGameState, `{"players":[],"troops":[],"map_size":[10,10]}`), t0)
	held := b.Snapshot()

	err := b.Dispatch(frame(EventGameState, `{"players": "x"}`), t0)
	if !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("err = %v", err)
	}
	if b.Snapshot() != held {
		t.Error("malformed snapshot replaced the held one")
	}
	if err := b.Dispatch(frame("chat", `{}`), t0); err != nil {
		t.Errorf("unknown event returned %v", err)
	}
}

func TestPingProbeAndLatency(t *testing.T) {
	metrics := status.NewRegistry()
	b, s, f := newTestBridge(BridgeOptions{PingInterval: 2 * time.Second, Metrics: metrics})

	b.Tick(t0)
	if len(f.sent) != 0 {
		t.Fatal("ping sent before connect")
	}

	b.Dispatch(Inbound{Event: EventConnect}, t0)
	if !s.Connected {
		t.Fatal("not connected")
	}

	b.Tick(t0.Add(1999 * time.Millisecond))
	if f.count(EventPing) != 0 {
		t.Fatal("ping sent before the interval elapsed")
	}
	b.Tick(t0.Add(2 * time.Second))
	if f.count(EventPing) != 1 {
		t.Fatalf("pings = %d, want 1", f.count(EventPing))
	}

	b.Dispatch(Inbound{Event: EventPong}, t0.Add(2*time.Second+40*time.Millisecond))
	if !s.LatencyKnown || s.Latency != 40*time.Millisecond {
		t.Errorf("latency = %v known=%v", s.Latency, s.LatencyKnown)
	}
	if got := metrics.Floats.Get(status.KeyLatencyMs).Get(); got != 40 {
		t.Errorf("latency metric = %v", got)
	}

	// Duplicate reply has nothing outstanding
	b.Dispatch(Inbound{Event: EventPong}, t0.Add(3*time.Second))
	if s.Latency != 40*time.Millisecond {
		t.Errorf("duplicate pong changed latency to %v", s.Latency)
	}

	// A lost reply leaves the stale value displayed
	b.Tick(t0.Add(4 * time.Second))
	b.Tick(t0.Add(6 * time.Second))
	if f.count(EventPing) != 3 {
		t.Errorf("pings = %d, want 3", f.count(EventPing))
	}
	if s.Latency != 40*time.Millisecond {
		t.Errorf("latency = %v, want stale 40ms", s.Latency)
	}

	// Reply matches the most recent probe
	b.Dispatch(Inbound{Event: EventPong}, t0.Add(6*time.Second+15*time.Millisecond))
	if s.Latency != 15*time.Millisecond {
		t.Errorf("latency = %v, want 15ms", s.Latency)
	}
}

func TestDisconnectKeepsSnapshotAndSelection(t *testing.T) {
	b, s, f := newTestBridge(BridgeOptions{})
	b.Dispatch(Inbound{Event: EventConnect}, t0)
	b.Dispatch(frame(EventGameState, `{"players":[],"troops":[],"map_size":[10,10]}`), t0)
	s.Selection = selection.NewSet(1, 2)

	b.Dispatch(Inbound{Event: EventDisconnect}, t0)

	if s.Connected {
		t.Error("still connected")
	}
	if b.Snapshot() == nil || s.Selection.Len() != 2 {
		t.Error("disconnect cleared cached state")
	}
	b.Tick(t0.Add(time.Hour))
	if f.count(EventPing) != 0 {
		t.Error("ping sent while disconnected")
	}
}

func TestReconnectReset(t *testing.T) {
	tests := []struct {
		reset     bool
		wantState bool
	}{
		{false, true},
		{true, false},
	}
	for _, tt := range tests {
		b, s, _ := newTestBridge(BridgeOptions{ResetOnReconnect: tt.reset})
		b.Dispatch(Inbound{Event: EventConnect}, t0)
		b.Dispatch(frame(EventPlayerID, `{"player_id": 1}`), t0)
		b.Dispatch(frame(EventGameState, `{"players":[],"troops":[],"map_size":[10,10]}`), t0)
		b.Dispatch(Inbound{Event: EventDisconnect}, t0)
		b.Dispatch(Inbound{Event: EventConnect}, t0)

		_, hasID := s.PlayerID()
		if hasID != tt.wantState || (b.Snapshot() != nil) != tt.wantState {
			t.Errorf("reset=%v: id kept=%v snapshot kept=%v", tt.reset, hasID, b.Snapshot() != nil)
		}
		if !s.Connected {
			t.Errorf("reset=%v: not connected after reconnect", tt.reset)
		}
	}
}

func TestDevDataAugmentedWithLatency(t *testing.T) {
	b, s, _ := newTestBridge(BridgeOptions{})
	s.SetLatency(25 * time.Millisecond)

	b.Dispatch(frame(EventDevData, `{"fps": 30, "player_count": 2, "troop_count": 40, "troops_by_player": {"1": 25, "2": 15}}`), t0)
	d := b.DevData()
	if d == nil {
		t.Fatal("dev data not held")
	}
	if d.NetworkLatency != 25 || d.TroopCount != 40 || d.TroopsByPlayer["1"] != 25 {
		t.Errorf("dev data = %+v", d)
	}
}

func TestSendIntent(t *testing.T) {
	b, _, f := newTestBridge(BridgeOptions{})

	if err := b.SendIntent(world.SpawnIntent{Count: 15}); err != nil {
		t.Fatal(err)
	}
	if err := b.SendIntent(world.MoveIntent{TroopIDs: []world.ID{1}}); err != nil {
		t.Fatal(err)
	}
	if f.count(EventSpawnTroops) != 1 || f.count(EventMoveTroops) != 1 {
		t.Errorf("sent = %+v", f.sent)
	}

	f.err = ErrNotConnected
	if err := b.SendIntent(world.MoveIntent{}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}
}

func TestPumpDrainsInOrder(t *testing.T) {
	b, s, _ := newTestBridge(BridgeOptions{})
	ib := NewInbox(8)
	ib.Push(Inbound{Event: EventConnect})
	ib.Push(frame(EventPlayerID, `{"player_id": 2}`))

	items := b.Pump(ib, t0)
	if len(items) != 2 || !s.Connected {
		t.Errorf("pumped %d items, connected=%v", len(items), s.Connected)
	}
	if id, _ := s.PlayerID(); id != 2 {
		t.Errorf("id = %d", id)
	}
}
