package tcellsurface

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/render"
)

// ColorMode selects how cell colors reach the terminal
type ColorMode uint8

const (
	ColorModeTrueColor ColorMode = iota // 24-bit RGB
	ColorMode256                        // nearest xterm-256 palette entry
)

// ParseColorMode accepts "auto", "truecolor" and "256"; auto inspects the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}
	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("KONSOLE_VERSION") != "" {
		return ColorModeTrueColor
	}
	if strings.Contains(os.Getenv("TERM"), "truecolor") {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

func cubeIndex(v int) int {
	best, bestDist := 0, abs(v-cubeValues[0])
	for j := 1; j < 6; j++ {
		if d := abs(v - cubeValues[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Nearest256 finds the nearest xterm-256 index, preferring the gray ramp for near-neutral colors
func Nearest256(c render.Color) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)
	cube := 16 + 36*cr + 6*cg + cb

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return uint8(cube)
	}
	switch {
	case gray < 4:
		return 16
	case gray > 243:
		return 231
	}
	grayIdx := min(232+(gray-8)/10, 255)
	level := 8 + (grayIdx-232)*10
	grayDist := abs(r-level) + abs(g-level) + abs(b-level)
	cubeDist := abs(r-cubeValues[cr]) + abs(g-cubeValues[cg]) + abs(b-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return uint8(cube)
}

// tcellColor converts an opaque cell color for the given mode
func tcellColor(c render.Color, mode ColorMode) tcell.Color {
	if mode == ColorMode256 {
		return tcell.PaletteColor(int(Nearest256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
