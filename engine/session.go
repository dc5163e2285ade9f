package engine

import (
	"time"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/selection"
	"github.com/lixenwraith/skirmish/world"
)

// GestureState is the input state machine's current gesture
type GestureState uint8

const (
	GestureIdle GestureState = iota
	GestureDraggingCamera
	GestureBoxSelecting
	GestureRightDragMoving
)

func (g GestureState) String() string {
	switch g {
	case GestureIdle:
		return "idle"
	case GestureDraggingCamera:
		return "dragging-camera"
	case GestureBoxSelecting:
		return "box-selecting"
	case GestureRightDragMoving:
		return "right-drag-moving"
	}
	return "unknown"
}

// Session holds per-connection client state shared by input, network bridge and renderer
// Main-loop exclusive: every handler runs on the host's loop goroutine, no locking
type Session struct {
	// ===== View State =====
	// Created once per session; mutated only by input gestures

	Camera    *camera.Camera
	Selection *selection.Set

	// ===== Identity =====
	// Assigned by the server; nil until the first player_id message

	playerID *world.ID

	// ===== Modes =====
	// Toggled through exactly one handler each

	SpawningMode    bool
	UnitType        world.UnitType
	ShowDiagnostics bool
	Gesture         GestureState

	// ===== Connection =====
	// Written by the network bridge

	Connected    bool
	Latency      time.Duration
	LatencyKnown bool

	defaults SessionDefaults
}

// SessionDefaults seeds a fresh session and every Reset
type SessionDefaults struct {
	UnitType        world.UnitType
	ShowDiagnostics bool
}

// NewSession creates a session with a camera at the origin and an empty selection
func NewSession(defaults SessionDefaults) *Session {
	if defaults.UnitType == "" {
		defaults.UnitType = world.UnitSoldier
	}
	s := &Session{defaults: defaults}
	s.Reset()
	return s
}

// Reset returns the session to its initial state, used on reconnect when configured
func (s *Session) Reset() {
	s.Camera = camera.New()
	s.Selection = selection.NewSet()
	s.playerID = nil
	s.SpawningMode = false
	s.UnitType = s.defaults.UnitType
	s.ShowDiagnostics = s.defaults.ShowDiagnostics
	s.Gesture = GestureIdle
	s.Connected = false
	s.Latency = 0
	s.LatencyKnown = false
}

// PlayerID returns the local player id and whether it has been assigned
func (s *Session) PlayerID() (world.ID, bool) {
	if s.playerID == nil {
		return 0, false
	}
	return *s.playerID, true
}

// SetPlayerID assigns the local identity; later assignments overwrite
func (s *Session) SetPlayerID(id world.ID) {
	s.playerID = &id
}

// ToggleSpawningMode flips the spawn-click flag; independent of the gesture state
func (s *Session) ToggleSpawningMode() bool {
	s.SpawningMode = !s.SpawningMode
	return s.SpawningMode
}

// ToggleDiagnostics flips the diagnostics panel
func (s *Session) ToggleDiagnostics() bool {
	s.ShowDiagnostics = !s.ShowDiagnostics
	return s.ShowDiagnostics
}

// SetLatency records a measured round trip
func (s *Session) SetLatency(d time.Duration) {
	s.Latency = d
	s.LatencyKnown = true
}
