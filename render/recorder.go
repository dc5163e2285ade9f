package render

import (
	"fmt"

	"github.com/lixenwraith/skirmish/camera"
)

// Op is one recorded drawing call
type Op struct {
	Kind      string // clear, fill_rect, stroke_rect, line, fill_path, stroke_path, text
	Transform camera.Transform
	Args      []float64
	Path      *Path
	Text      string
	Color     Color
}

func (op Op) String() string {
	if op.Kind == "text" {
		return fmt.Sprintf("text %q %v %s", op.Text, op.Args, op.Color)
	}
	return fmt.Sprintf("%s %v %s", op.Kind, op.Args, op.Color)
}

// Recorder is a Surface that records calls instead of drawing
// Used by tests and by headless diagnostics
type Recorder struct {
	W, H      float64
	Ops       []Op
	transform camera.Transform
}

// NewRecorder creates a recorder of the given size
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, transform: camera.Identity}
}

func (r *Recorder) record(op Op) {
	op.Transform = r.transform
	r.Ops = append(r.Ops, op)
}

// Size implements Surface
func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Clear implements Surface
func (r *Recorder) Clear(c Color) { r.record(Op{Kind: "clear", Color: c}) }

// SetTransform implements Surface
func (r *Recorder) SetTransform(t camera.Transform) { r.transform = t }

// FillRect implements Surface
func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.record(Op{Kind: "fill_rect", Args: []float64{x, y, w, h}, Color: c})
}

// StrokeRect implements Surface
func (r *Recorder) StrokeRect(x, y, w, h, width float64, c Color) {
	r.record(Op{Kind: "stroke_rect", Args: []float64{x, y, w, h, width}, Color: c})
}

// StrokeLine implements Surface
func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c Color) {
	r.record(Op{Kind: "line", Args: []float64{x1, y1, x2, y2, width}, Color: c})
}

// FillPath implements Surface
func (r *Recorder) FillPath(p *Path, c Color) {
	r.record(Op{Kind: "fill_path", Path: p, Color: c})
}

// StrokePath implements Surface
func (r *Recorder) StrokePath(p *Path, width float64, c Color) {
	r.record(Op{Kind: "stroke_path", Args: []float64{width}, Path: p, Color: c})
}

// DrawText implements Surface
func (r *Recorder) DrawText(x, y float64, text string, c Color) {
	r.record(Op{Kind: "text", Args: []float64{x, y}, Text: text, Color: c})
}

// Count returns how many ops of kind were recorded
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every drawn text line in order
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset drops recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.transform = camera.Identity
}
