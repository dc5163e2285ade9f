package tcellsurface

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/render"
)

func newSurface(cols, rows int) *Surface {
	return New(cols, rows, 0, 0, ColorModeTrueColor)
}

func TestSizeInPixels(t *testing.T) {
	s := newSurface(80, 24)
	if w, h := s.Size(); w != 640 || h != 384 {
		t.Errorf("Size() = %v x %v, want 640 x 384", w, h)
	}
	s.Resize(10, 5)
	if w, h := s.Size(); w != 80 || h != 80 {
		t.Errorf("after resize Size() = %v x %v", w, h)
	}
}

func TestFillRectCoversCellCenters(t *testing.T) {
	red := render.RGB(255, 0, 0)
	s := newSurface(10, 5)
	s.Clear(render.ColorBackground)

	// Cells 1..2 horizontally (centers 12, 20), row 0..1 (centers 8, 24)
	s.FillRect(8, 0, 16, 32, red)

	for _, tt := range []struct {
		x, y int
		want render.Color
	}{
		{1, 0, red}, {2, 1, red},
		{0, 0, render.ColorBackground}, {3, 0, render.ColorBackground}, {1, 2, render.ColorBackground},
	} {
		if got := s.Buffer().Cell(tt.x, tt.y).Bg; got != tt.want {
			t.Errorf("cell (%d,%d) bg = %s, want %s", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestThinRectCollapsesToOneRow(t *testing.T) {
	green := render.RGB(0, 255, 0)
	s := newSurface(10, 5)
	// 2px tall health bar at y=20 sits in row 1
	s.FillRect(16, 20, 15, 2, green)

	if got := s.Buffer().Cell(2, 1).Bg; got != green {
		t.Errorf("bar cell bg = %s", got)
	}
	if got := s.Buffer().Cell(2, 0).Bg; got == green {
		t.Error("bar leaked into row 0")
	}
}

func TestTranslucentFillBlends(t *testing.T) {
	s := newSurface(4, 2)
	s.Clear(render.RGB(0, 0, 0))
	s.FillRect(0, 0, 32, 32, render.RGBA(0, 255, 0, 0.2))

	got := s.Buffer().Cell(0, 0).Bg
	if got.G < 45 || got.G > 60 || got.R != 0 || got.A != 255 {
		t.Errorf("blended bg = %s, want ~#003300", got)
	}
}

func TestFillRectUsesTransform(t *testing.T) {
	red := render.RGB(255, 0, 0)
	s := newSurface(10, 5)
	s.SetTransform(camera.Transform{TX: 16, TY: 16, Scale: 2})
	s.FillRect(0, 0, 4, 4, red) // -> pixels 16..24 x 16..24

	if got := s.Buffer().Cell(2, 1).Bg; got != red {
		t.Errorf("transformed cell bg = %s", got)
	}
}

func TestFillPathCircle(t *testing.T) {
	blue := render.RGB(0, 0, 255)
	s := newSurface(20, 10)
	s.FillPath(render.NewPath().Circle(80, 80, 24), blue)

	if got := s.Buffer().Cell(10, 5).Bg; got != blue {
		t.Errorf("center cell bg = %s", got)
	}
	if got := s.Buffer().Cell(0, 0).Bg; got == blue {
		t.Error("corner painted")
	}
}

func TestTinyPathStillVisible(t *testing.T) {
	blue := render.RGB(0, 0, 255)
	s := newSurface(20, 10)
	s.FillPath(render.NewPath().Circle(42, 42, 1), blue)

	if got := s.Buffer().Cell(5, 2).Bg; got != blue {
		t.Errorf("tiny shape not drawn, cell bg = %s", got)
	}
}

func TestStrokeLineGlyphs(t *testing.T) {
	white := render.RGB(255, 255, 255)
	s := newSurface(10, 5)
	s.StrokeLine(4, 8, 76, 8, 1, white)

	for x := 0; x < 10; x++ {
		if r := s.Buffer().Cell(x, 0).Rune; r != '─' {
			t.Fatalf("cell %d rune = %q, want ─", x, r)
		}
	}

	for _, tt := range []struct {
		dx, dy float64
		want   rune
	}{
		{0, 10, '│'}, {10, 10, '╲'}, {10, -10, '╱'}, {0, 0, '·'},
	} {
		if got := lineGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("lineGlyph(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestLongLineClippedToGrid(t *testing.T) {
	white := render.RGB(255, 255, 255)
	s := newSurface(80, 24)
	s.SetTransform(camera.Transform{Scale: 5})
	// Runs to x=10000 px, far past the 640 px grid; y=50 px is row 3
	s.StrokeLine(0, 10, 2000, 10, 1, white)

	for x := 0; x < 80; x++ {
		if r := s.Buffer().Cell(x, 3).Rune; r != '─' {
			t.Errorf("cell (%d,3) rune = %q, want ─", x, r)
		}
	}
}

func TestLineOutsideGridDrawsNothing(t *testing.T) {
	white := render.RGB(255, 255, 255)
	s := newSurface(10, 5)
	s.Clear(render.ColorBackground)
	s.StrokeLine(-500, -100, -20, -100, 1, white)
	s.StrokeLine(1000, 10, 1000, 5000, 1, white)

	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if r := s.Buffer().Cell(x, y).Rune; r != ' ' && r != 0 {
				t.Fatalf("cell (%d,%d) rune = %q, want blank", x, y, r)
			}
		}
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		ax, ay, bx, by float64
		want           [4]float64
		ok             bool
	}{
		{"inside", 10, 10, 50, 20, [4]float64{10, 10, 50, 20}, true},
		{"crosses right edge", 0, 50, 1000, 50, [4]float64{0, 50, 100, 50}, true},
		{"crosses both sides", -100, 0, 200, 0, [4]float64{0, 0, 100, 0}, true},
		{"diagonal through corner", -50, -50, 150, 150, [4]float64{0, 0, 100, 100}, true},
		{"above", 0, -10, 100, -10, [4]float64{}, false},
		{"nan", math.NaN(), 0, 10, 10, [4]float64{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax, ay, bx, by, ok := clipSegment(tt.ax, tt.ay, tt.bx, tt.by, 100, 100)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			for i, got := range [4]float64{ax, ay, bx, by} {
				if math.Abs(got-tt.want[i]) > 1e-9 {
					t.Errorf("clipped = %v, want %v", [4]float64{ax, ay, bx, by}, tt.want)
					break
				}
			}
		})
	}
}

func TestDrawTextRows(t *testing.T) {
	s := newSurface(30, 10)
	s.FillRect(0, 0, 240, 160, render.RGB(10, 10, 10))
	s.DrawText(20, 30, "FPS", render.ColorText)
	s.DrawText(20, 50, "ok", render.ColorText)

	if c := s.Buffer().Cell(2, 1); c.Rune != 'F' || c.Fg != render.ColorText || c.Bg != render.RGB(10, 10, 10) {
		t.Errorf("first line cell = %+v", c)
	}
	if c := s.Buffer().Cell(4, 1); c.Rune != 'S' {
		t.Errorf("rune = %q", c.Rune)
	}
	if c := s.Buffer().Cell(2, 3); c.Rune != 'o' {
		t.Errorf("second line rune = %q, want 'o' in row 3", c.Rune)
	}
}

func TestFlushToSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	s := newSurface(10, 4)
	s.Clear(render.ColorBackground)
	s.DrawText(0, 16, "hi", render.ColorText)
	s.Flush(screen)

	if r, _, _, _ := screen.GetContent(0, 1); r != 'h' {
		t.Errorf("screen (0,1) = %q, want 'h'", r)
	}
	if r, _, _, _ := screen.GetContent(1, 1); r != 'i' {
		t.Errorf("screen (1,1) = %q, want 'i'", r)
	}
}

func TestNearest256(t *testing.T) {
	tests := []struct {
		c    render.Color
		want uint8
	}{
		{render.RGB(0, 0, 0), 16},
		{render.RGB(255, 255, 255), 231},
		{render.RGB(255, 0, 0), 196},
		{render.RGB(0, 255, 0), 46},
		{render.RGB(0x44, 0x44, 0x44), 238},
	}
	for _, tt := range tests {
		if got := Nearest256(tt.c); got != tt.want {
			t.Errorf("Nearest256(%s) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	if m, err := ParseColorMode("256"); err != nil || m != ColorMode256 {
		t.Errorf("256 -> %v, %v", m, err)
	}
	if m, err := ParseColorMode("TrueColor"); err != nil || m != ColorModeTrueColor {
		t.Errorf("truecolor -> %v, %v", m, err)
	}
	if _, err := ParseColorMode("sepia"); err == nil {
		t.Error("expected error")
	}
}
