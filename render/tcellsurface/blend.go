package tcellsurface

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/skirmish/render"
)

// Blend composites src over an opaque dst by src alpha
func Blend(dst, src render.Color) render.Color {
	switch src.A {
	case 255:
		return src
	case 0:
		return dst
	}
	out := toColorful(dst).BlendRgb(toColorful(src), src.Alpha()).Clamped()
	r, g, b := out.RGB255()
	return render.RGB(r, g, b)
}

func toColorful(c render.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
