package world

import (
	"github.com/invopop/jsonschema"
)

// WireMessages groups every payload crossing the client/server boundary
// Used only as the schema root
type WireMessages struct {
	PlayerID    Identity    `json:"player_id" jsonschema:"description=Inbound: local identity"`
	GameState   Snapshot    `json:"game_state" jsonschema:"description=Inbound: authoritative snapshot"`
	DevData     DevData     `json:"dev_data" jsonschema:"description=Inbound: server diagnostics"`
	SpawnTroops SpawnIntent `json:"spawn_troops" jsonschema:"description=Outbound: spawn request"`
	MoveTroops  MoveIntent  `json:"move_troops" jsonschema:"description=Outbound: move request"`
}

// Schema reflects the wire schema
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(new(WireMessages))
	schema.Title = "Skirmish wire messages"
	schema.Description = "Payloads of the player_id, game_state, dev_data, spawn_troops and move_troops events"
	return schema
}
