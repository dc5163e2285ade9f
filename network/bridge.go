package network

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/status"
	"github.com/lixenwraith/skirmish/world"
)

// Sender is the outbound half of the transport
type Sender interface {
	Send(event string, payload any) error
}

// BridgeOptions tunes the bridge; zero values take defaults
type BridgeOptions struct {
	PingInterval     time.Duration
	ResetOnReconnect bool
	Metrics          *status.Registry
	Log              logrus.FieldLogger
}

// Bridge reconciles inbound server messages with the session and forwards intents
// Main-loop exclusive: every method runs on the host loop goroutine
type Bridge struct {
	session *engine.Session
	sender  Sender
	log     logrus.FieldLogger

	pingInterval     time.Duration
	resetOnReconnect bool

	snapshot *world.Snapshot
	devData  *world.DevData

	// Latency probe
	nextPing         time.Time
	lastProbe        time.Time
	probeOutstanding bool
	everConnected    bool

	snapshots *atomic.Int64
	latencyMs *status.AtomicFloat
}

// NewBridge creates a bridge writing into session and sending through sender
func NewBridge(session *engine.Session, sender Sender, opts BridgeOptions) *Bridge {
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultConfig().PingInterval
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	return &Bridge{
		session:          session,
		sender:           sender,
		log:              opts.Log,
		pingInterval:     opts.PingInterval,
		resetOnReconnect: opts.ResetOnReconnect,
		snapshots:        opts.Metrics.Ints.Get(status.KeySnapshots),
		latencyMs:        opts.Metrics.Floats.Get(status.KeyLatencyMs),
	}
}

// Snapshot returns the latest snapshot, nil before the first game_state
func (b *Bridge) Snapshot() *world.Snapshot {
	return b.snapshot
}

// DevData returns the latest diagnostics payload, nil before the first dev_data
func (b *Bridge) DevData() *world.DevData {
	return b.devData
}

// ApplyIdentity sets the local player id; later assignments overwrite
func (b *Bridge) ApplyIdentity(id world.ID) {
	b.session.SetPlayerID(id)
	b.log.WithField("player_id", id).Info("identity assigned")
}

// ApplySnapshot replaces the held snapshot wholesale
func (b *Bridge) ApplySnapshot(s *world.Snapshot) {
	b.snapshot = s
	b.snapshots.Add(1)
}

// ApplyDevData stores diagnostics augmented with the locally measured latency
func (b *Bridge) ApplyDevData(d world.DevData) {
	if b.session.LatencyKnown {
		d.NetworkLatency = float64(b.session.Latency) / float64(time.Millisecond)
	}
	b.devData = &d
}

// SendIntent forwards an intent without acknowledgement or retry
// Failures are logged and returned; nothing is queued for later
func (b *Bridge) SendIntent(intent world.Intent) error {
	event, err := EventFor(intent)
	if err != nil {
		return err
	}
	if err := b.sender.Send(event, intent); err != nil {
		b.log.WithError(err).WithField("event", event).Debug("intent dropped")
		return fmt.Errorf("send %s: %w", event, err)
	}
	return nil
}

// HandleConnect marks the session connected and schedules the first probe one interval out
func (b *Bridge) HandleConnect(now time.Time) {
	if b.everConnected && b.resetOnReconnect {
		b.session.Reset()
		b.snapshot = nil
		b.devData = nil
	}
	b.everConnected = true
	b.session.Connected = true
	b.nextPing = now.Add(b.pingInterval)
	b.probeOutstanding = false
}

// HandleDisconnect marks the session disconnected
// The cached snapshot and selection are kept; rendering continues with stale data
func (b *Bridge) HandleDisconnect() {
	b.session.Connected = false
	b.probeOutstanding = false
}

// Tick sends a latency probe every ping interval while connected
func (b *Bridge) Tick(now time.Time) {
	if !b.session.Connected || now.Before(b.nextPing) {
		return
	}
	b.nextPing = now.Add(b.pingInterval)
	if err := b.sender.Send(EventPing, nil); err != nil {
		b.log.WithError(err).Debug("ping not sent")
		return
	}
	b.lastProbe = now
	b.probeOutstanding = true
}

// HandlePong records latency against the last probe
// A reply with no outstanding probe is ignored; without replies the old value is kept
func (b *Bridge) HandlePong(now time.Time) {
	if !b.probeOutstanding {
		return
	}
	b.probeOutstanding = false
	rtt := now.Sub(b.lastProbe)
	if rtt < 0 {
		rtt = 0
	}
	b.session.SetLatency(rtt)
	b.latencyMs.Set(float64(rtt) / float64(time.Millisecond))
}

// Dispatch routes one inbound item
// Undecodable payloads are logged and dropped; unknown events are ignored
func (b *Bridge) Dispatch(in Inbound, now time.Time) error {
	env := Envelope{Event: in.Event, Data: in.Data}

	switch in.Event {
	case EventConnect:
		b.HandleConnect(now)
	case EventDisconnect:
		b.HandleDisconnect()
	case EventPong:
		b.HandlePong(now)

	case EventPlayerID:
		ident, err := DecodePayload[world.Identity](env)
		if err != nil {
			return b.dropped(err)
		}
		b.ApplyIdentity(ident.PlayerID)

	case EventGameState:
		snap, err := DecodePayload[world.Snapshot](env)
		if err != nil {
			return b.dropped(err)
		}
		b.ApplySnapshot(&snap)

	case EventDevData:
		d, err := DecodePayload[world.DevData](env)
		if err != nil {
			return b.dropped(err)
		}
		b.ApplyDevData(d)

	default:
		b.log.WithField("event", in.Event).Debug("ignoring unknown event")
	}
	return nil
}

// Pump drains the inbox and dispatches every item in arrival order
// Returns the drained items so the caller can react to lifecycle events
func (b *Bridge) Pump(inbox *Inbox, now time.Time) []Inbound {
	items := inbox.Drain()
	for _, in := range items {
		b.Dispatch(in, now)
	}
	return items
}

func (b *Bridge) dropped(err error) error {
	b.log.WithError(err).Warn("dropping inbound message")
	return err
}
