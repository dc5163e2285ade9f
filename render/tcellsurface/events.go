package tcellsurface

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/input"
)

// Translator converts tcell events into input events in surface pixels
// tcell reports held buttons, not transitions; the pointer tracker derives them
type Translator struct {
	cellW, cellH float64
	pointer      input.PointerTracker
}

// NewTranslator creates a translator for the given cell footprint
func NewTranslator(cellW, cellH float64) *Translator {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Translator{cellW: cellW, cellH: cellH}
}

// Translate returns zero or more input events; a nil event means the screen was finalized
func (t *Translator) Translate(ev tcell.Event) []input.Event {
	switch ev := ev.(type) {
	case nil:
		return []input.Event{{Type: input.EventClosed}}
	case *tcell.EventMouse:
		x, y := ev.Position()
		return t.mouse(x, y, ev.Buttons(), ev.Modifiers())
	case *tcell.EventKey:
		name := KeyName(ev.Key(), ev.Rune(), ev.Modifiers())
		if name == "" {
			return nil
		}
		return []input.Event{{Type: input.EventKey, Key: name}}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return []input.Event{{
			Type:   input.EventResize,
			Width:  float64(cols) * t.cellW,
			Height: float64(rows) * t.cellH,
		}}
	}
	return nil
}

// mouse maps a cell report to its center pixel
func (t *Translator) mouse(col, row int, buttons tcell.ButtonMask, mods tcell.ModMask) []input.Event {
	px := (float64(col) + 0.5) * t.cellW
	py := (float64(row) + 0.5) * t.cellH
	// Terminals commonly intercept Alt-click; Ctrl-click pans as well
	alt := mods&(tcell.ModAlt|tcell.ModCtrl) != 0

	var held input.Buttons
	if buttons&tcell.Button1 != 0 {
		held |= input.HeldLeft
	}
	if buttons&tcell.Button2 != 0 {
		held |= input.HeldRight
	}
	if buttons&tcell.Button3 != 0 {
		held |= input.HeldMiddle
	}
	out := t.pointer.Update(px, py, held, alt)

	switch {
	case buttons&tcell.WheelUp != 0:
		out = append(out, input.Event{Type: input.EventWheel, X: px, Y: py, DeltaY: -1})
	case buttons&tcell.WheelDown != 0:
		out = append(out, input.Event{Type: input.EventWheel, X: px, Y: py, DeltaY: 1})
	}
	return out
}

// KeyName builds the normalized binding name of a key event, "" if unnamed
func KeyName(key tcell.Key, r rune, mods tcell.ModMask) string {
	if key == tcell.KeyRune {
		name := string(r)
		if mods&tcell.ModCtrl != 0 {
			name = "ctrl+" + name
		}
		if mods&tcell.ModAlt != 0 {
			name = "alt+" + name
		}
		return input.NormalizeKey(name)
	}
	name, ok := tcell.KeyNames[key]
	if !ok {
		return ""
	}
	return input.NormalizeKey(strings.ReplaceAll(name, "-", "+"))
}
