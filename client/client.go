package client

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skirmish/audio"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/input"
	"github.com/lixenwraith/skirmish/network"
	"github.com/lixenwraith/skirmish/render"
	"github.com/lixenwraith/skirmish/render/renderers"
	"github.com/lixenwraith/skirmish/status"
)

// Deps wires a client; Sender and Session are required
type Deps struct {
	Session *engine.Session
	Sender  network.Sender
	Inbox   *network.Inbox // nil when running without a transport
	Player  *audio.Player  // nil when audio is disabled

	Metrics *status.Registry
	Log     logrus.FieldLogger

	KeyTable         *input.KeyTable
	SpawnCount       int
	PingInterval     time.Duration
	ResetOnReconnect bool
}

// Client ties input, network bridge, audio cues and rendering into one main loop
// Every method runs on the host loop goroutine
type Client struct {
	session *engine.Session
	machine *input.Machine
	bridge  *network.Bridge
	inbox   *network.Inbox
	orch    *render.Orchestrator
	player  *audio.Player
	log     logrus.FieldLogger

	resetOnReconnect bool
	quit             bool

	metrics      *status.Registry
	inboxDropped *atomic.Int64
	nextStats    time.Time
}

// statsInterval paces the debug-level metrics dump
const statsInterval = 10 * time.Second

// New builds a client with the default layer stack
func New(d Deps) *Client {
	if d.Metrics == nil {
		d.Metrics = status.NewRegistry()
	}
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Log = l
	}

	bridge := network.NewBridge(d.Session, d.Sender, network.BridgeOptions{
		PingInterval:     d.PingInterval,
		ResetOnReconnect: d.ResetOnReconnect,
		Metrics:          d.Metrics,
		Log:              d.Log.WithField("component", "bridge"),
	})

	machine := input.NewMachine(d.Session, bridge)
	if d.KeyTable != nil {
		machine.SetKeyTable(d.KeyTable)
	}
	machine.SetSpawnCount(d.SpawnCount)

	orch := render.NewOrchestrator(d.Metrics)
	renderers.RegisterDefaults(orch)

	return &Client{
		session:          d.Session,
		machine:          machine,
		bridge:           bridge,
		inbox:            d.Inbox,
		orch:             orch,
		player:           d.Player,
		log:              d.Log,
		resetOnReconnect: d.ResetOnReconnect,
		metrics:          d.Metrics,
		inboxDropped:     d.Metrics.Ints.Get(status.KeyInboxDropped),
	}
}

// Session returns the shared session
func (c *Client) Session() *engine.Session {
	return c.session
}

// Bridge returns the network bridge
func (c *Client) Bridge() *network.Bridge {
	return c.bridge
}

// Machine returns the input state machine
func (c *Client) Machine() *input.Machine {
	return c.machine
}

// Quit reports whether a quit was requested
func (c *Client) Quit() bool {
	return c.quit
}

// HandleEvent runs one input event through the machine and acts on its intent
// Returns true once the client should shut down
func (c *Client) HandleEvent(ev input.Event) bool {
	intent := c.machine.Process(ev)
	if intent == nil {
		return c.quit
	}

	switch intent.Type {
	case input.IntentQuit:
		c.log.Info("quit requested")
		c.quit = true
	case input.IntentSpawn:
		c.send(intent, audio.CueSpawn)
	case input.IntentMove:
		c.send(intent, audio.CueMove)
	case input.IntentToggleMute:
		if c.player != nil {
			c.log.WithField("muted", c.player.ToggleMute()).Debug("mute toggled")
		}
	}
	return c.quit
}

func (c *Client) send(intent *input.Intent, cue audio.Cue) {
	if err := c.bridge.SendIntent(intent.Message()); err != nil {
		return
	}
	c.play(cue)
}

func (c *Client) play(cue audio.Cue) {
	if c.player != nil {
		c.player.Play(cue)
	}
}

// Pump drains inbound traffic and runs the ping timer
func (c *Client) Pump(now time.Time) {
	if c.inbox != nil {
		for _, in := range c.bridge.Pump(c.inbox, now) {
			switch in.Event {
			case network.EventConnect:
				c.log.Info("connected")
				if c.resetOnReconnect {
					c.machine.Reset()
				}
				c.play(audio.CueConnect)
			case network.EventDisconnect:
				c.log.Warn("disconnected")
				c.play(audio.CueDisconnect)
			}
		}
		c.inboxDropped.Store(int64(c.inbox.Dropped()))
	}
	c.bridge.Tick(now)

	if now.After(c.nextStats) {
		if !c.nextStats.IsZero() {
			c.log.WithFields(logrus.Fields(c.metrics.Fields())).Debug("stats")
		}
		c.nextStats = now.Add(statsInterval)
	}
}

// Frame renders the current state onto s
func (c *Client) Frame(s render.Surface, now time.Time) {
	ctx := &render.Context{
		Now:      now,
		Session:  c.session,
		Snapshot: c.bridge.Snapshot(),
		DevData:  c.bridge.DevData(),
	}
	if start, end, ok := c.machine.SelectionBox(); ok {
		ctx.Box = render.BoxState{Start: start, End: end, Active: true}
	}
	c.orch.RenderFrame(ctx, s)
}
