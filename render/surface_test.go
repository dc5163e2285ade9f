package render

import (
	"math"
	"testing"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

func TestPathContains(t *testing.T) {
	square := NewPath().Polygon(vmath.V2(0, 0), vmath.V2(10, 0), vmath.V2(10, 10), vmath.V2(0, 10))
	circle := NewPath().Circle(0, 0, 5)

	tests := []struct {
		name string
		p    *Path
		pt   vmath.Vec2
		want bool
	}{
		{"square inside", square, vmath.V2(5, 5), true},
		{"square outside", square, vmath.V2(15, 5), false},
		{"circle center", circle, vmath.V2(0, 0), true},
		{"circle near edge", circle, vmath.V2(4.5, 0), true},
		{"circle corner", circle, vmath.V2(4, 4), false},
	}
	for _, tt := range tests {
		if got := tt.p.Contains(tt.pt); got != tt.want {
			t.Errorf("%s: Contains(%v) = %v", tt.name, tt.pt, got)
		}
	}
}

func TestPathEvenOddHole(t *testing.T) {
	p := NewPath().
		Polygon(vmath.V2(0, 0), vmath.V2(10, 0), vmath.V2(10, 10), vmath.V2(0, 10)).
		Polygon(vmath.V2(3, 3), vmath.V2(7, 3), vmath.V2(7, 7), vmath.V2(3, 7))
	if p.Contains(vmath.V2(5, 5)) {
		t.Error("hole filled")
	}
	if !p.Contains(vmath.V2(1, 1)) {
		t.Error("ring not filled")
	}
}

func TestPathArcFlattening(t *testing.T) {
	p := NewPath().Arc(0, 0, 10, 0, math.Pi)
	sp := p.Subpaths()
	if len(sp) != 1 {
		t.Fatalf("subpaths = %d", len(sp))
	}
	pts := sp[0].Points
	if len(pts) != arcSegments/2+1 {
		t.Errorf("points = %d, want %d", len(pts), arcSegments/2+1)
	}
	last := pts[len(pts)-1]
	if math.Abs(last.X+10) > 1e-9 || math.Abs(last.Y) > 1e-9 {
		t.Errorf("arc ends at %v, want (-10, 0)", last)
	}
}

func TestPathTransformedAndBounds(t *testing.T) {
	p := NewPath().Polygon(vmath.V2(1, 2), vmath.V2(3, 4), vmath.V2(2, 0))
	q := p.Transformed(camera.Transform{TX: 10, TY: 20, Scale: 2})

	lo, hi := q.Bounds()
	if lo != vmath.V2(12, 20) || hi != vmath.V2(16, 28) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
	if lo, _ := p.Bounds(); lo != vmath.V2(1, 0) {
		t.Error("Transformed mutated the source path")
	}
}

func TestColorHelpers(t *testing.T) {
	if c := FromWorld(world.RGB{1, 2, 3}); c != (Color{1, 2, 3, 255}) {
		t.Errorf("FromWorld = %v", c)
	}
	if ColorBoxFill.A != 51 || ColorBoxStroke.A != 204 {
		t.Errorf("alphas = %d/%d", ColorBoxFill.A, ColorBoxStroke.A)
	}
	if ColorBackground.String() != "#222222" {
		t.Errorf("String = %s", ColorBackground)
	}
}
