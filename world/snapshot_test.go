package world

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lixenwraith/skirmish/vmath"
)

// serverState mirrors a game_state payload as emitted by the simulation server
const serverState = `{
	"players": [
		{"id": 1, "position": [100, 100], "color": [120, 60, 180], "troops": []},
		{"id": 2, "position": [1500, 900], "color": [60, 180, 90], "troops": []}
	],
	"troops": [
		{"id": 10, "player_id": 1, "position": [110.5, 98.25], "direction": [0.6, -0.8],
		 "speed": 40.0, "health": 75, "attack": 15.0, "color": [120, 60, 180], "shape": "circle",
		 "type": "soldier", "is_attacking": false, "weight": 1.0, "target": null,
		 "attack_speed": 30.0, "attack_range": 15.0, "attack_cooldown": 0.0, "attack_rate": 1.0},
		{"id": 11, "player_id": 2, "position": [1490, 910], "direction": [1, 0],
		 "speed": 0.0, "health": 100, "attack": 0.0, "color": [60, 180, 90], "shape": "triangle",
		 "type": "knight", "is_attacking": true, "weight": 2.0, "max_speed": 80.0, "acceleration": 20.0, "target": 10}
	],
	"projectiles": [
		{"id": 3, "player_id": 2, "position": [700, 700], "direction": [0, 1], "speed": 150,
		 "damage": 20, "time_to_live": 1.5, "color": [60, 180, 90]}
	],
	"map_size": [2000, 2000]
}`

func TestSnapshotDecodesServerPayload(t *testing.T) {
	var s Snapshot
	if err := json.Unmarshal([]byte(serverState), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(s.Players) != 2 || len(s.Troops) != 2 || len(s.Projectiles) != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/2/1", len(s.Players), len(s.Troops), len(s.Projectiles))
	}
	if s.MapSize != vmath.V2(2000, 2000) {
		t.Errorf("map size = %v", s.MapSize)
	}

	soldier, ok := s.Troop(10)
	if !ok {
		t.Fatal("troop 10 missing")
	}
	if soldier.Position != vmath.V2(110.5, 98.25) || soldier.PlayerID != 1 {
		t.Errorf("soldier decoded as %+v", soldier)
	}
	if soldier.Target != nil {
		t.Errorf("null target decoded as %v", *soldier.Target)
	}
	if soldier.AttackRange == nil || *soldier.AttackRange != 15 {
		t.Error("attack_range not decoded")
	}

	knight, _ := s.Troop(11)
	if knight.Target == nil || *knight.Target != 10 {
		t.Error("knight target not decoded")
	}
	if knight.UnitType != UnitKnight || knight.Shape != ShapeTriangle {
		t.Errorf("knight type/shape = %s/%s", knight.UnitType, knight.Shape)
	}
	if knight.Color != (RGB{60, 180, 90}) {
		t.Errorf("knight color = %v", knight.Color)
	}
}

func TestSnapshotLookupsOnNil(t *testing.T) {
	var s *Snapshot
	if _, ok := s.Troop(1); ok {
		t.Error("nil snapshot returned a troop")
	}
	if _, ok := s.Player(1); ok {
		t.Error("nil snapshot returned a player")
	}
	if n := s.TroopCountFor(1); n != 0 {
		t.Errorf("nil snapshot troop count = %d", n)
	}
}

func TestIDAcceptsNumberAndString(t *testing.T) {
	tests := []struct {
		in   string
		want ID
		err  bool
	}{
		{`7`, 7, false},
		{`"42"`, 42, false},
		{`3.0`, 3, false},
		{`"abc"`, 0, true},
		{`-1`, 0, true},
		{`1.5`, 0, true},
	}
	for _, tt := range tests {
		var id ID
		err := json.Unmarshal([]byte(tt.in), &id)
		if tt.err {
			if err == nil {
				t.Errorf("%s: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("%s: got %d, want %d", tt.in, id, tt.want)
		}
	}
}

func TestIdentityPayload(t *testing.T) {
	var ident Identity
	if err := json.Unmarshal([]byte(`{"player_id": "5"}`), &ident); err != nil {
		t.Fatal(err)
	}
	if ident.PlayerID != 5 {
		t.Errorf("player id = %d, want 5", ident.PlayerID)
	}
}

func TestShapeNormalize(t *testing.T) {
	tests := map[Shape]Shape{
		ShapeCircle:   ShapeCircle,
		ShapeSquare:   ShapeSquare,
		ShapeTriangle: ShapeTriangle,
		"hexagon":     ShapeSquare,
		"":            ShapeSquare,
	}
	for in, want := range tests {
		if got := in.Normalize(); got != want {
			t.Errorf("%q.Normalize() = %q, want %q", in, got, want)
		}
	}
}

func TestParseUnitType(t *testing.T) {
	if u, err := ParseUnitType(" Archer "); err != nil || u != UnitArcher {
		t.Errorf("ParseUnitType(Archer) = %q, %v", u, err)
	}
	if _, err := ParseUnitType("dragon"); err == nil {
		t.Error("expected error for unknown unit type")
	}
}

func TestSpawnIntentWireShape(t *testing.T) {
	data, err := json.Marshal(SpawnIntent{
		Position:  vmath.V2(100, 100),
		Direction: vmath.V2(50, -20),
		Count:     DefaultSpawnCount,
		UnitType:  UnitKnight,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"position":[100,100],"direction":[50,-20],"count":15,"unit_type":"knight"}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestHealthFractionClamped(t *testing.T) {
	for _, tt := range []struct{ health, want float64 }{{-5, 0}, {0, 0}, {50, 0.5}, {100, 1}, {130, 1}} {
		tr := Troop{Health: tt.health}
		if got := tr.HealthFraction(); got != tt.want {
			t.Errorf("health %v -> %v, want %v", tt.health, got, tt.want)
		}
	}
}

func TestSchemaCoversWireMessages(t *testing.T) {
	schema := Schema()
	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	for _, key := range []string{"player_id", "game_state", "dev_data", "spawn_troops", "move_troops"} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("schema missing %s", key)
		}
	}
}
