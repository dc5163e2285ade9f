package input

// actionRegistry maps canonical action names to actions
// Used by the keymap loader to resolve TOML action strings
var actionRegistry = map[string]Action{
	// Unbind sentinel
	"none": ActionNone,

	"quit":               ActionQuit,
	"toggle_spawning":    ActionToggleSpawning,
	"toggle_diagnostics": ActionToggleDiagnostics,
	"toggle_mute":        ActionToggleMute,
	"unit_soldier":       ActionUnitSoldier,
	"unit_knight":        ActionUnitKnight,
	"unit_archer":        ActionUnitArcher,
	"center_camera":      ActionCenterCamera,
	"clear_selection":    ActionClearSelection,
}

// ActionByName resolves a canonical action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// Name returns the canonical name of an action
func (a Action) Name() string {
	for name, action := range actionRegistry {
		if action == a {
			return name
		}
	}
	return "none"
}
