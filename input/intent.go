package input

import "github.com/lixenwraith/skirmish/world"

// IntentType discriminates what the host loop must do after an event
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentQuit
	IntentResize
	IntentSpawn // Spawn carries the request
	IntentMove  // Move carries the request
	IntentToggleMute
)

func (t IntentType) String() string {
	switch t {
	case IntentNone:
		return "none"
	case IntentQuit:
		return "quit"
	case IntentResize:
		return "resize"
	case IntentSpawn:
		return "spawn"
	case IntentMove:
		return "move"
	case IntentToggleMute:
		return "toggle-mute"
	}
	return "unknown"
}

// Intent is the machine's output for one event
// Session-local effects (camera, selection, toggles) are applied during Process; only
// effects that leave the session are returned
type Intent struct {
	Type  IntentType
	Spawn *world.SpawnIntent
	Move  *world.MoveIntent
}

// Message returns the outbound payload carried by the intent, nil for local intents
func (i *Intent) Message() world.Intent {
	if i == nil {
		return nil
	}
	switch i.Type {
	case IntentSpawn:
		if i.Spawn != nil {
			return *i.Spawn
		}
	case IntentMove:
		if i.Move != nil {
			return *i.Move
		}
	}
	return nil
}
