package render

import (
	"sync/atomic"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/status"
)

type rendererEntry struct {
	renderer Renderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator runs the layer pipeline once per host frame
type Orchestrator struct {
	renderers []rendererEntry
	regCount  int
	fps       FPSCounter

	frames   *atomic.Int64
	fpsGauge *status.AtomicFloat
}

// NewOrchestrator creates an empty pipeline; metrics may be nil
func NewOrchestrator(metrics *status.Registry) *Orchestrator {
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	return &Orchestrator{
		renderers: make([]rendererEntry, 0, 8),
		frames:    metrics.Ints.Get(status.KeyFrames),
		fpsGauge:  metrics.Floats.Get(status.KeyFPS),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(r Renderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// RenderFrame clears the surface and, once a snapshot exists, runs every visible layer
// Each layer starts from the identity transform
func (o *Orchestrator) RenderFrame(ctx *Context, s Surface) {
	ctx.FPS = o.fps.Tick(ctx.Now)
	o.frames.Add(1)
	o.fpsGauge.Set(ctx.FPS)

	s.SetTransform(camera.Identity)
	s.Clear(ColorBackground)
	if ctx.Snapshot == nil {
		return
	}

	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible(ctx) {
			continue
		}
		s.SetTransform(camera.Identity)
		entry.renderer.Render(ctx, s)
	}
	s.SetTransform(camera.Identity)
}
