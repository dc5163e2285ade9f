package ebitensurface

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/skirmish/input"
)

// Input polls ebiten's per-tick input state into input events
type Input struct {
	pointer input.PointerTracker
	keys    []ebiten.Key
}

// Poll must run once per Update
func (in *Input) Poll() []input.Event {
	x, y := ebiten.CursorPosition()

	var held input.Buttons
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		held |= input.HeldLeft
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		held |= input.HeldRight
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		held |= input.HeldMiddle
	}
	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	out := in.pointer.Update(float64(x), float64(y), held, alt)

	// Wheel up is positive in ebiten; the machine expects browser sign
	if _, wy := ebiten.Wheel(); wy != 0 {
		out = append(out, input.Event{Type: input.EventWheel, X: float64(x), Y: float64(y), DeltaY: -wy})
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if name := KeyName(k, ctrl, alt); name != "" {
			out = append(out, input.Event{Type: input.EventKey, Key: name})
		}
	}
	return out
}

// KeyName builds the normalized binding name; bare modifier keys yield ""
func KeyName(k ebiten.Key, ctrl, alt bool) string {
	name := k.String()
	for _, mod := range []string{"Alt", "Control", "Shift", "Meta"} {
		if strings.HasPrefix(name, mod) {
			return ""
		}
	}
	name = strings.TrimPrefix(name, "Digit")
	if ctrl {
		name = "ctrl+" + name
	}
	if alt {
		name = "alt+" + name
	}
	return input.NormalizeKey(name)
}
