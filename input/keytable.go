package input

import "strings"

// Action is a key-bound command
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleSpawning
	ActionToggleDiagnostics
	ActionToggleMute
	ActionUnitSoldier
	ActionUnitKnight
	ActionUnitArcher
	ActionCenterCamera
	ActionClearSelection
)

// KeyTable maps normalized key names to actions
type KeyTable struct {
	bindings map[string]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{bindings: map[string]Action{
		"ctrl+c": ActionQuit,
		"ctrl+q": ActionQuit,
		"s":      ActionToggleSpawning,
		"f3":     ActionToggleDiagnostics,
		"d":      ActionToggleDiagnostics,
		"m":      ActionToggleMute,
		"1":      ActionUnitSoldier,
		"2":      ActionUnitKnight,
		"3":      ActionUnitArcher,
		"c":      ActionCenterCamera,
		"home":   ActionCenterCamera,
		"esc":    ActionClearSelection,
	}}
}

// Lookup returns the action bound to a key, ActionNone if unbound
func (kt *KeyTable) Lookup(key string) Action {
	if kt == nil {
		return ActionNone
	}
	return kt.bindings[NormalizeKey(key)]
}

// Bind sets or replaces a binding; ActionNone unbinds
func (kt *KeyTable) Bind(key string, a Action) {
	if kt.bindings == nil {
		kt.bindings = make(map[string]Action)
	}
	key = NormalizeKey(key)
	if a == ActionNone {
		delete(kt.bindings, key)
		return
	}
	kt.bindings[key] = a
}

// Merge applies a sparse override table on top of kt
// Overrides bound to "none" remove the default binding
func (kt *KeyTable) Merge(overrides *KeyTable) {
	if overrides == nil {
		return
	}
	for key, a := range overrides.bindings {
		kt.Bind(key, a)
	}
}

// Len returns the number of bound keys
func (kt *KeyTable) Len() int {
	if kt == nil {
		return 0
	}
	return len(kt.bindings)
}

var keyAliases = map[string]string{
	"escape": "esc",
	"return": "enter",
	"space":  " ",
	"del":    "delete",
}

// NormalizeKey lowercases a key name and folds common aliases
// Single printable characters keep their case-folded rune; modifiers stay as a "ctrl+" prefix
func NormalizeKey(key string) string {
	if key == " " {
		return key
	}
	k := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}
