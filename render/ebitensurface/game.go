package ebitensurface

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/skirmish/input"
	"github.com/lixenwraith/skirmish/render"
)

// App is the client loop driven by the window host
type App interface {
	// HandleEvent applies one input event; true requests shutdown
	HandleEvent(ev input.Event) bool
	// Pump drains network traffic and runs timers
	Pump(now time.Time)
	// Frame renders one frame
	Frame(s render.Surface, now time.Time)
}

// Game adapts an App to ebiten.Game; Draw is the per-frame callback
type Game struct {
	app     App
	surface *Surface
	input   Input

	width, height int
}

// NewGame wraps app for ebiten.RunGame
func NewGame(app App) *Game {
	return &Game{app: app, surface: New()}
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	for _, ev := range g.input.Poll() {
		if g.app.HandleEvent(ev) {
			return ebiten.Termination
		}
	}
	if ebiten.IsWindowBeingClosed() {
		g.app.HandleEvent(input.Event{Type: input.EventClosed})
		return ebiten.Termination
	}
	g.app.Pump(time.Now())
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	g.app.Frame(g.surface, time.Now())
}

// Layout implements ebiten.Game; the logical size tracks the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.app.HandleEvent(input.Event{
			Type:   input.EventResize,
			Width:  float64(outsideWidth),
			Height: float64(outsideHeight),
		})
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the app quits
func Run(app App, title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	return ebiten.RunGame(NewGame(app))
}
