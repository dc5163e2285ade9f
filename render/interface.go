package render

// Renderer draws one layer of the frame
type Renderer interface {
	Render(ctx *Context, s Surface)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible(ctx *Context) bool
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(ctx *Context, s Surface)

// Render implements Renderer
func (f RendererFunc) Render(ctx *Context, s Surface) {
	f(ctx, s)
}
