package camera

import "github.com/lixenwraith/skirmish/vmath"

// Transform is a uniform-scale affine: screen = point*Scale + (TX, TY)
type Transform struct {
	TX, TY float64
	Scale  float64
}

// Identity draws in raw screen space
var Identity = Transform{Scale: 1}

// Apply maps a point through the transform
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// ApplyVec maps a vector point through the transform
func (t Transform) ApplyVec(p vmath.Vec2) vmath.Vec2 {
	x, y := t.Apply(p.X, p.Y)
	return vmath.V2(x, y)
}

// Length scales a distance (line width, radius)
func (t Transform) Length(d float64) float64 {
	return d * t.Scale
}
