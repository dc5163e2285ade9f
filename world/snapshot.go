package world

import (
	"github.com/lixenwraith/skirmish/vmath"
)

// Player is a connected player's base
type Player struct {
	ID       ID         `json:"id" jsonschema:"title=Player ID"`
	Position vmath.Vec2 `json:"position" jsonschema:"title=Base position,description=World position as [x, y]"`
	Color    RGB        `json:"color" jsonschema:"title=Player color,description=[r, g, b]"`
}

// Troop is a single unit as reported by the server
type Troop struct {
	ID          ID         `json:"id"`
	PlayerID    ID         `json:"player_id"`
	Position    vmath.Vec2 `json:"position"`
	Direction   vmath.Vec2 `json:"direction" jsonschema:"description=Heading, normally unit length"`
	Speed       float64    `json:"speed"`
	Health      float64    `json:"health" jsonschema:"minimum=0,maximum=100"`
	Attack      float64    `json:"attack"`
	Color       RGB        `json:"color"`
	Shape       Shape      `json:"shape" jsonschema:"enum=circle,enum=square,enum=triangle"`
	UnitType    UnitType   `json:"type"`
	IsAttacking bool       `json:"is_attacking"`
	Weight      float64    `json:"weight"`

	// Class specific, absent for other classes
	AttackSpeed    *float64 `json:"attack_speed,omitempty"`
	AttackRange    *float64 `json:"attack_range,omitempty"`
	AttackCooldown *float64 `json:"attack_cooldown,omitempty"`
	AttackRate     *float64 `json:"attack_rate,omitempty"`
	MaxSpeed       *float64 `json:"max_speed,omitempty"`
	Acceleration   *float64 `json:"acceleration,omitempty"`
	MinRange       *float64 `json:"min_range,omitempty"`
	MaxRange       *float64 `json:"max_range,omitempty"`
	Target         *ID      `json:"target,omitempty"`
}

// HealthFraction returns health/100 clamped to [0, 1]
func (t *Troop) HealthFraction() float64 {
	return vmath.Clamp(t.Health/100, 0, 1)
}

// Projectile is an in-flight arrow
type Projectile struct {
	ID         ID         `json:"id"`
	PlayerID   ID         `json:"player_id"`
	Position   vmath.Vec2 `json:"position"`
	Direction  vmath.Vec2 `json:"direction"`
	Speed      float64    `json:"speed"`
	Damage     float64    `json:"damage"`
	TimeToLive float64    `json:"time_to_live"`
	Color      RGB        `json:"color"`
}

// Snapshot is the complete authoritative world state at one server tick
// Replaced wholesale on every game_state message; never mutated after decode
type Snapshot struct {
	Players     []Player     `json:"players"`
	Troops      []Troop      `json:"troops"`
	Projectiles []Projectile `json:"projectiles,omitempty"`
	MapSize     vmath.Vec2   `json:"map_size" jsonschema:"description=Map width and height as [w, h]"`

	troopIndex map[ID]int
}

// Player looks up a player by id
func (s *Snapshot) Player(id ID) (*Player, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// Troop looks up a troop by id; the index is built on first use
func (s *Snapshot) Troop(id ID) (*Troop, bool) {
	if s == nil {
		return nil, false
	}
	if s.troopIndex == nil {
		s.troopIndex = make(map[ID]int, len(s.Troops))
		for i := range s.Troops {
			s.troopIndex[s.Troops[i].ID] = i
		}
	}
	i, ok := s.troopIndex[id]
	if !ok {
		return nil, false
	}
	return &s.Troops[i], true
}

// TroopCountFor counts troops owned by a player
func (s *Snapshot) TroopCountFor(player ID) int {
	if s == nil {
		return 0
	}
	n := 0
	for i := range s.Troops {
		if s.Troops[i].PlayerID == player {
			n++
		}
	}
	return n
}
