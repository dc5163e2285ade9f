package tcellsurface

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/input"
)

func types(evs []input.Event) []input.EventType {
	out := make([]input.EventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestMouseTransitions(t *testing.T) {
	tr := NewTranslator(0, 0)

	// First report at rest: a move to the cell center
	evs := tr.mouse(2, 3, tcell.ButtonNone, tcell.ModNone)
	if len(evs) != 1 || evs[0].Type != input.EventPointerMove || evs[0].X != 20 || evs[0].Y != 56 {
		t.Fatalf("initial = %+v", evs)
	}

	evs = tr.mouse(2, 3, tcell.Button1, tcell.ModNone)
	if len(evs) != 1 || evs[0].Type != input.EventPointerDown || evs[0].Button != input.ButtonLeft {
		t.Fatalf("press = %+v", evs)
	}

	// Drag: move only, button still held
	evs = tr.mouse(5, 3, tcell.Button1, tcell.ModNone)
	if len(evs) != 1 || evs[0].Type != input.EventPointerMove {
		t.Fatalf("drag = %+v", evs)
	}

	// Release on another cell: move then up
	evs = tr.mouse(6, 3, tcell.ButtonNone, tcell.ModNone)
	got := types(evs)
	if len(got) != 2 || got[0] != input.EventPointerMove || got[1] != input.EventPointerUp {
		t.Fatalf("release = %v", got)
	}
	if evs[1].Button != input.ButtonLeft {
		t.Errorf("released button = %v", evs[1].Button)
	}
}

func TestMouseRightAndAlt(t *testing.T) {
	tr := NewTranslator(0, 0)
	tr.mouse(0, 0, tcell.ButtonNone, tcell.ModNone)

	evs := tr.mouse(0, 0, tcell.Button2, tcell.ModNone)
	if len(evs) != 1 || evs[0].Button != input.ButtonRight {
		t.Errorf("right press = %+v", evs)
	}
	tr.mouse(0, 0, tcell.ButtonNone, tcell.ModNone)

	evs = tr.mouse(0, 0, tcell.Button1, tcell.ModAlt)
	if len(evs) != 1 || !evs[0].Alt {
		t.Errorf("alt press = %+v", evs)
	}
}

func TestMouseWheel(t *testing.T) {
	tr := NewTranslator(0, 0)
	tr.mouse(1, 1, tcell.ButtonNone, tcell.ModNone)

	evs := tr.mouse(1, 1, tcell.WheelUp, tcell.ModNone)
	if len(evs) != 1 || evs[0].Type != input.EventWheel || evs[0].DeltaY >= 0 {
		t.Errorf("wheel up = %+v", evs)
	}
	evs = tr.mouse(1, 1, tcell.WheelDown, tcell.ModNone)
	if len(evs) != 1 || evs[0].DeltaY <= 0 {
		t.Errorf("wheel down = %+v", evs)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		mods tcell.ModMask
		want string
	}{
		{tcell.KeyRune, 's', tcell.ModNone, "s"},
		{tcell.KeyRune, 'S', tcell.ModNone, "s"},
		{tcell.KeyRune, '1', tcell.ModNone, "1"},
		{tcell.KeyRune, 'x', tcell.ModAlt, "alt+x"},
		{tcell.KeyCtrlC, 0, tcell.ModCtrl, "ctrl+c"},
		{tcell.KeyEscape, 0, tcell.ModNone, "esc"},
		{tcell.KeyF3, 0, tcell.ModNone, "f3"},
		{tcell.KeyHome, 0, tcell.ModNone, "home"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.key, tt.r, tt.mods); got != tt.want {
			t.Errorf("KeyName(%v, %q) = %q, want %q", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestTranslateResizeAndClose(t *testing.T) {
	tr := NewTranslator(0, 0)

	evs := tr.Translate(tcell.NewEventResize(100, 30))
	if len(evs) != 1 || evs[0].Width != 800 || evs[0].Height != 480 {
		t.Errorf("resize = %+v", evs)
	}

	evs = tr.Translate(nil)
	if len(evs) != 1 || evs[0].Type != input.EventClosed {
		t.Errorf("nil event = %+v", evs)
	}
}
