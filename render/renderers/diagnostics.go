package renderers

import (
	"fmt"
	"math"

	"github.com/lixenwraith/skirmish/render"
	"github.com/lixenwraith/skirmish/world"
)

// Panel geometry in screen pixels
const (
	panelX         = 10.0
	panelY         = 10.0
	panelWidth     = 200.0
	panelMinHeight = 150.0
	textX          = 20.0
	textFirstY     = 30.0
	textStep       = 20.0
)

// DiagnosticsRenderer draws the developer panel
// Server counts come from dev_data when present, otherwise from the snapshot
type DiagnosticsRenderer struct{}

// NewDiagnosticsRenderer creates the diagnostics layer
func NewDiagnosticsRenderer() *DiagnosticsRenderer {
	return &DiagnosticsRenderer{}
}

// IsVisible implements render.VisibilityToggle
func (r *DiagnosticsRenderer) IsVisible(ctx *render.Context) bool {
	return ctx.Session.ShowDiagnostics
}

// Render implements render.Renderer
func (r *DiagnosticsRenderer) Render(ctx *render.Context, s render.Surface) {
	lines := DiagnosticsLines(ctx)

	h := math.Max(panelMinHeight, textFirstY+float64(len(lines)-1)*textStep+panelY)
	s.FillRect(panelX, panelY, panelWidth, h, render.ColorPanel)
	for i, line := range lines {
		s.DrawText(textX, textFirstY+float64(i)*textStep, line, render.ColorText)
	}
}

// DiagnosticsLines formats the panel content
func DiagnosticsLines(ctx *render.Context) []string {
	sess, snap, dev := ctx.Session, ctx.Snapshot, ctx.DevData

	fps := ctx.FPS
	players, troops := len(snap.Players), len(snap.Troops)
	if dev != nil {
		fps = dev.FPS
		players, troops = dev.PlayerCount, dev.TroopCount
	}

	cam := sess.Camera
	lines := []string{
		fmt.Sprintf("FPS: %.1f", fps),
		fmt.Sprintf("Players: %d", players),
		fmt.Sprintf("Troops: %d", troops),
		fmt.Sprintf("Camera: (%.0f, %.0f)", math.Floor(cam.OffsetX), math.Floor(cam.OffsetY)),
		fmt.Sprintf("Zoom: %.1fx", cam.Zoom()),
	}

	if id, ok := sess.PlayerID(); ok {
		own := snap.TroopCountFor(id)
		if dev != nil {
			if n, ok := dev.TroopsByPlayer[id.String()]; ok {
				own = n
			}
		}
		lines = append(lines,
			fmt.Sprintf("Player ID: %s", id),
			fmt.Sprintf("Own troops: %d", own),
			unitBreakdown(snap, id),
		)
	}

	latency := "n/a"
	if sess.LatencyKnown {
		latency = fmt.Sprintf("%d ms", sess.Latency.Milliseconds())
	}
	status := "disconnected"
	if sess.Connected {
		status = "connected"
	}
	spawn := "off"
	if sess.SpawningMode {
		spawn = "on"
	}

	return append(lines,
		fmt.Sprintf("Latency: %s", latency),
		fmt.Sprintf("Status: %s", status),
		fmt.Sprintf("Spawn: %s (%s)", spawn, sess.UnitType),
	)
}

// unitBreakdown counts the local player's troops by unit type from the snapshot
func unitBreakdown(snap *world.Snapshot, id world.ID) string {
	var soldiers, knights, archers int
	for i := range snap.Troops {
		t := &snap.Troops[i]
		if t.PlayerID != id {
			continue
		}
		switch t.UnitType {
		case world.UnitSoldier:
			soldiers++
		case world.UnitKnight:
			knights++
		case world.UnitArcher:
			archers++
		}
	}
	return fmt.Sprintf("Units: S%d K%d A%d", soldiers, knights, archers)
}
