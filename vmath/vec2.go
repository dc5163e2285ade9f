package vmath

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vec2 is a float64 2D vector used for world and screen positions
// Encodes as a two-element JSON array to match the server tuple format
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * f
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Len returns the euclidean length
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns atan2(y, x)
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates v by angle radians around the origin
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Min returns per-axis minimum
func Min(a, b Vec2) Vec2 {
	return Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

// Max returns per-axis maximum
func Max(a, b Vec2) Vec2 {
	return Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ExceedsOnEitherAxis reports whether a and b differ by more than limit on X or Y
func ExceedsOnEitherAxis(a, b Vec2, limit float64) bool {
	return math.Abs(a.X-b.X) > limit || math.Abs(a.Y-b.Y) > limit
}

// MarshalJSON encodes as [x, y]
func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

// UnmarshalJSON decodes [x, y]; null leaves the vector unchanged
func (v *Vec2) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("vec2: %w", err)
	}
	if len(arr) != 2 {
		return fmt.Errorf("vec2: expected 2 elements, got %d", len(arr))
	}
	v.X, v.Y = arr[0], arr[1]
	return nil
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
