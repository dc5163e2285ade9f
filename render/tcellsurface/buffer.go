package tcellsurface

import "github.com/lixenwraith/skirmish/render"

// Cell is one terminal cell; colors are always opaque once composited
type Cell struct {
	Rune rune
	Fg   render.Color
	Bg   render.Color
}

// Buffer is a row-major cell grid composited by Surface and flushed to a tcell screen
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Fill(render.ColorBackground)
}

// Fill resets every cell to a blank of color bg using exponential copy
func (b *Buffer) Fill(bg render.Color) {
	if len(b.cells) == 0 {
		return
	}
	bg.A = 255
	b.cells[0] = Cell{Rune: ' ', Fg: bg, Bg: bg}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns the grid dimensions in cells
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns a copy of the cell at x, y; out of bounds yields the zero cell
func (b *Buffer) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// ===== COMPOSITOR API =====

// Paint composites c over the background; an opaque paint erases the glyph
func (b *Buffer) Paint(x, y int, c render.Color) {
	if !b.inBounds(x, y) || c.A == 0 {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Bg = Blend(dst.Bg, c)
	if c.Opaque() {
		dst.Rune = ' '
	}
}

// SetGlyph writes a rune with fg composited over the cell background, keeping the background
func (b *Buffer) SetGlyph(x, y int, r rune, fg render.Color) {
	if !b.inBounds(x, y) || fg.A == 0 {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = Blend(dst.Bg, fg)
}
