package world

import "github.com/lixenwraith/skirmish/vmath"

// DefaultSpawnCount is the troop count sent with a spawn click
const DefaultSpawnCount = 15

// Intent is a client-originated request sent without acknowledgement
type Intent interface {
	isIntent()
}

// SpawnIntent asks the server to spawn a group at the player's base heading toward Direction
type SpawnIntent struct {
	Position  vmath.Vec2 `json:"position" jsonschema:"description=Spawn origin, the local player's base"`
	Direction vmath.Vec2 `json:"direction" jsonschema:"description=Cursor minus base, not normalized"`
	Count     int        `json:"count" jsonschema:"minimum=1"`
	UnitType  UnitType   `json:"unit_type,omitempty" jsonschema:"enum=soldier,enum=knight,enum=archer"`
}

// MoveIntent redirects owned troops toward a world target
type MoveIntent struct {
	TroopIDs       []ID       `json:"troop_ids"`
	TargetPosition vmath.Vec2 `json:"target_position"`
}

func (SpawnIntent) isIntent() {}
func (MoveIntent) isIntent()  {}

// Identity assigns the local player id
type Identity struct {
	PlayerID ID `json:"player_id" jsonschema:"description=Number or numeric string"`
}

// DevData is the server diagnostics payload
type DevData struct {
	FPS            float64        `json:"fps"`
	PlayerCount    int            `json:"player_count"`
	TroopCount     int            `json:"troop_count"`
	TroopsByPlayer map[string]int `json:"troops_by_player,omitempty"`

	// Filled locally before display, in milliseconds
	NetworkLatency float64 `json:"network_latency,omitempty"`
}
