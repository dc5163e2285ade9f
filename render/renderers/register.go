package renderers

import "github.com/lixenwraith/skirmish/render"

// RegisterDefaults installs the standard layer stack
func RegisterDefaults(o *render.Orchestrator) {
	o.Register(NewGridRenderer(), render.PriorityGrid)
	o.Register(NewTroopsRenderer(), render.PriorityTroops)
	o.Register(NewProjectilesRenderer(), render.PriorityProjectiles)
	o.Register(NewSelectionBoxRenderer(), render.PrioritySelectionBox)
	o.Register(NewHighlightRenderer(), render.PriorityHighlight)
	o.Register(NewDiagnosticsRenderer(), render.PriorityUI)
}
