package input

import (
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/selection"
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

// MoveThreshold is the world distance, on either axis, the drag target must travel before
// another move intent is emitted during a right drag
const MoveThreshold = 5.0

// SnapshotSource exposes the latest authoritative snapshot, nil before the first one
type SnapshotSource interface {
	Snapshot() *world.Snapshot
}

// Machine is the pointer/keyboard gesture state machine
// Parses host events into camera, selection and mode changes on the session, and returns
// an Intent for effects that leave the session
type Machine struct {
	session  *engine.Session
	source   SnapshotSource
	keyTable *KeyTable

	spawnCount int
	g          gesture

	cursor       vmath.Vec2
	viewW, viewH float64
}

// NewMachine creates a machine bound to a session and snapshot source
func NewMachine(session *engine.Session, source SnapshotSource) *Machine {
	return &Machine{
		session:    session,
		source:     source,
		keyTable:   DefaultKeyTable(),
		spawnCount: world.DefaultSpawnCount,
	}
}

// SetKeyTable replaces the active bindings
func (m *Machine) SetKeyTable(kt *KeyTable) {
	if kt != nil {
		m.keyTable = kt
	}
}

// SetSpawnCount overrides the troop count sent with spawn clicks
func (m *Machine) SetSpawnCount(n int) {
	if n > 0 {
		m.spawnCount = n
	}
}

// SetViewport records the surface size used for camera centering
func (m *Machine) SetViewport(w, h float64) {
	m.viewW, m.viewH = w, h
}

// State returns the active gesture
func (m *Machine) State() engine.GestureState {
	return m.session.Gesture
}

// Cursor returns the last known pointer position in screen pixels
func (m *Machine) Cursor() vmath.Vec2 {
	return m.cursor
}

// SelectionBox returns the screen corners of the box being dragged
func (m *Machine) SelectionBox() (start, end vmath.Vec2, ok bool) {
	if m.session.Gesture != engine.GestureBoxSelecting {
		return vmath.Vec2{}, vmath.Vec2{}, false
	}
	return m.g.boxStart, m.g.boxEnd, true
}

// Reset abandons any gesture in progress without applying it
func (m *Machine) Reset() {
	m.session.Gesture = engine.GestureIdle
	m.g.reset()
}

// Process parses a host event and returns an Intent
// Returns nil when the event only changed session-local state or was ignored
func (m *Machine) Process(ev Event) *Intent {
	switch ev.Type {
	case EventPointerDown:
		m.cursor = vmath.V2(ev.X, ev.Y)
		return m.pointerDown(ev)
	case EventPointerMove:
		m.cursor = vmath.V2(ev.X, ev.Y)
		return m.pointerMove(ev)
	case EventPointerUp:
		m.cursor = vmath.V2(ev.X, ev.Y)
		m.pointerUp(ev)
	case EventWheel:
		if ev.DeltaY != 0 {
			m.session.Camera.ZoomBy(ev.DeltaY)
		}
	case EventKey:
		return m.processKey(ev)
	case EventResize:
		m.SetViewport(ev.Width, ev.Height)
		return &Intent{Type: IntentResize}
	case EventClosed:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

// pointerDown starts a gesture; a new gesture only begins from Idle
func (m *Machine) pointerDown(ev Event) *Intent {
	if m.session.Gesture != engine.GestureIdle {
		return nil
	}
	pos := vmath.V2(ev.X, ev.Y)

	switch ev.Button {
	case ButtonLeft:
		switch {
		case ev.Alt:
			m.session.Gesture = engine.GestureDraggingCamera
			m.g.anchor = pos
		case m.session.SpawningMode:
			return m.spawnAt(pos)
		default:
			m.session.Gesture = engine.GestureBoxSelecting
			m.g.boxStart = pos
			m.g.boxEnd = pos
		}

	case ButtonRight:
		m.session.Gesture = engine.GestureRightDragMoving
		m.g.hasLastTarget = false
		return m.moveTo(pos, true)
	}
	return nil
}

func (m *Machine) pointerMove(ev Event) *Intent {
	pos := vmath.V2(ev.X, ev.Y)

	switch m.session.Gesture {
	case engine.GestureDraggingCamera:
		d := pos.Sub(m.g.anchor)
		m.session.Camera.Pan(d.X, d.Y)
		m.g.anchor = pos
	case engine.GestureBoxSelecting:
		m.g.boxEnd = pos
	case engine.GestureRightDragMoving:
		return m.moveTo(pos, false)
	}
	return nil
}

func (m *Machine) pointerUp(ev Event) {
	switch ev.Button {
	case ButtonLeft:
		switch m.session.Gesture {
		case engine.GestureBoxSelecting:
			m.g.boxEnd = vmath.V2(ev.X, ev.Y)
			m.finishBox()
			m.session.Gesture = engine.GestureIdle
		case engine.GestureDraggingCamera:
			m.session.Gesture = engine.GestureIdle
		}
	case ButtonRight:
		if m.session.Gesture == engine.GestureRightDragMoving {
			m.session.Gesture = engine.GestureIdle
			m.g.hasLastTarget = false
		}
	}
}

// finishBox replaces the selection with local troops inside the box
// Without an identity or a snapshot the previous selection is kept
func (m *Machine) finishBox() {
	pid, ok := m.session.PlayerID()
	snap := m.source.Snapshot()
	if !ok || snap == nil {
		return
	}
	cam := m.session.Camera
	rect := selection.NewRect(
		cam.ScreenToWorld(m.g.boxStart.X, m.g.boxStart.Y),
		cam.ScreenToWorld(m.g.boxEnd.X, m.g.boxEnd.Y),
	)
	m.session.Selection = selection.Compute(rect, snap, pid)
}

// moveTo emits a move intent for the current selection toward the pointer
// Follow-up drags are throttled until the target moves past MoveThreshold on either axis
func (m *Machine) moveTo(pos vmath.Vec2, initial bool) *Intent {
	if m.session.Selection.Empty() {
		return nil
	}
	target := m.session.Camera.ScreenToWorld(pos.X, pos.Y)
	if !initial && m.g.hasLastTarget && !vmath.ExceedsOnEitherAxis(target, m.g.lastTarget, MoveThreshold) {
		return nil
	}
	m.g.lastTarget = target
	m.g.hasLastTarget = true

	return &Intent{
		Type: IntentMove,
		Move: &world.MoveIntent{
			TroopIDs:       m.session.Selection.IDs(),
			TargetPosition: target,
		},
	}
}

// spawnAt builds a spawn request from the local base toward the pointer
func (m *Machine) spawnAt(pos vmath.Vec2) *Intent {
	pid, ok := m.session.PlayerID()
	if !ok {
		return nil
	}
	player, ok := m.source.Snapshot().Player(pid)
	if !ok {
		return nil
	}
	cursor := m.session.Camera.ScreenToWorld(pos.X, pos.Y)
	return &Intent{
		Type: IntentSpawn,
		Spawn: &world.SpawnIntent{
			Position:  player.Position,
			Direction: cursor.Sub(player.Position),
			Count:     m.spawnCount,
			UnitType:  m.session.UnitType,
		},
	}
}

func (m *Machine) processKey(ev Event) *Intent {
	switch m.keyTable.Lookup(ev.Key) {
	case ActionQuit:
		return &Intent{Type: IntentQuit}
	case ActionToggleSpawning:
		m.session.ToggleSpawningMode()
	case ActionToggleDiagnostics:
		m.session.ToggleDiagnostics()
	case ActionToggleMute:
		return &Intent{Type: IntentToggleMute}
	case ActionUnitSoldier:
		m.session.UnitType = world.UnitSoldier
	case ActionUnitKnight:
		m.session.UnitType = world.UnitKnight
	case ActionUnitArcher:
		m.session.UnitType = world.UnitArcher
	case ActionCenterCamera:
		m.centerOnBase()
	case ActionClearSelection:
		m.session.Selection = selection.NewSet()
	}
	return nil
}

func (m *Machine) centerOnBase() {
	pid, ok := m.session.PlayerID()
	if !ok {
		return
	}
	if player, ok := m.source.Snapshot().Player(pid); ok {
		m.session.Camera.CenterOn(player.Position, m.viewW, m.viewH)
	}
}
