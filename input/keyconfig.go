package input

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// keymapFile is the on-disk keymap layout:
//
//	[keys]
//	s = "toggle_spawning"
//	f3 = "toggle_diagnostics"
//	d = "none"
type keymapFile struct {
	Keys map[string]string `toml:"keys"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Returns error on unknown action names or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var f keymapFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("keymap: unknown key %q", undecoded[0].String())
	}
	return KeyTableFromMap(f.Keys)
}

// KeyTableFromMap resolves key → action-name pairs into a sparse override table
// An action of "none" unbinds the key when merged
func KeyTableFromMap(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{bindings: make(map[string]Action, len(bindings))}
	for key, name := range bindings {
		if NormalizeKey(key) == "" {
			return nil, fmt.Errorf("keymap: empty key name bound to %q", name)
		}
		action, ok := ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("keymap: key %q: unknown action %q", key, name)
		}
		// Stored directly so "none" survives until Merge
		kt.bindings[NormalizeKey(key)] = action
	}
	return kt, nil
}
