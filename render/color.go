package render

import (
	"fmt"

	"github.com/lixenwraith/skirmish/world"
)

// Color is straight (non-premultiplied) RGBA
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with alpha given as a 0..1 fraction
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// FromWorld converts a server color triple
func FromWorld(c world.RGB) Color {
	return RGB(c[0], c[1], c[2])
}

// Alpha returns the alpha channel as a 0..1 fraction
func (c Color) Alpha() float64 {
	return float64(c.A) / 255
}

// Opaque reports A == 255
func (c Color) Opaque() bool {
	return c.A == 255
}

func (c Color) String() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, c.Alpha())
}

// Palette
var (
	ColorBackground = RGB(0x22, 0x22, 0x22)
	ColorGrid       = RGB(0x44, 0x44, 0x44)
	ColorBorder     = RGB(0x88, 0x88, 0x88)
	ColorHighlight  = RGB(0x00, 0xff, 0x00)
	ColorBoxStroke  = RGBA(0, 255, 0, 0.8)
	ColorBoxFill    = RGBA(0, 255, 0, 0.2)
	ColorHealthLost = RGB(0xff, 0x00, 0x00)
	ColorHealthLeft = RGB(0x00, 0xff, 0x00)
	ColorDirection  = RGB(0xff, 0xff, 0xff)
	ColorPanel      = RGB(0x10, 0x10, 0x10)
	ColorText       = RGB(0xff, 0xff, 0xff)
)
