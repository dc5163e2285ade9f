package selection

import (
	"slices"
	"testing"

	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

func troop(id, player world.ID, x, y float64) world.Troop {
	return world.Troop{ID: id, PlayerID: player, Position: vmath.V2(x, y)}
}

func TestComputeOnlyLocalTroopsInRect(t *testing.T) {
	snap := &world.Snapshot{Troops: []world.Troop{
		troop(1, 1, 10, 10),   // A
		troop(2, 2, 10, 10),   // B, other player
		troop(3, 1, 500, 500), // C, outside
	}}

	got := Compute(NewRect(vmath.V2(0, 0), vmath.V2(20, 20)), snap, 1)
	if ids := got.IDs(); !slices.Equal(ids, []world.ID{1}) {
		t.Errorf("selected %v, want [1]", ids)
	}
}

func TestComputeBoundaryInclusive(t *testing.T) {
	snap := &world.Snapshot{Troops: []world.Troop{
		troop(1, 7, 0, 0),
		troop(2, 7, 20, 20),
		troop(3, 7, 20, 0),
		troop(4, 7, 20.0001, 10),
	}}
	got := Compute(NewRect(vmath.V2(20, 20), vmath.V2(0, 0)), snap, 7)
	if ids := got.IDs(); !slices.Equal(ids, []world.ID{1, 2, 3}) {
		t.Errorf("selected %v, want [1 2 3]", ids)
	}
}

func TestComputeNilSnapshot(t *testing.T) {
	got := Compute(NewRect(vmath.V2(0, 0), vmath.V2(1, 1)), nil, 1)
	if !got.Empty() {
		t.Errorf("nil snapshot selected %v", got.IDs())
	}
}

func TestNewRectNormalizesDragDirection(t *testing.T) {
	r := NewRect(vmath.V2(30, 5), vmath.V2(10, 25))
	if r.Min != vmath.V2(10, 5) || r.Max != vmath.V2(30, 25) {
		t.Errorf("rect = %+v", r)
	}
	if r.Size() != vmath.V2(20, 20) {
		t.Errorf("size = %v", r.Size())
	}
}

func TestSetOrderedAndDuplicateFree(t *testing.T) {
	s := NewSet(5, 3, 5, 9, 3)
	if ids := s.IDs(); !slices.Equal(ids, []world.ID{5, 3, 9}) {
		t.Errorf("ids = %v, want [5 3 9]", ids)
	}
	if !s.Contains(9) || s.Contains(4) {
		t.Error("membership wrong")
	}

	// IDs returns a copy
	ids := s.IDs()
	ids[0] = 100
	if s.Contains(100) {
		t.Error("mutating IDs() leaked into the set")
	}
}

func TestNilSetIsEmpty(t *testing.T) {
	var s *Set
	if s.Len() != 0 || s.Contains(1) || s.IDs() != nil || !s.Empty() {
		t.Error("nil set not empty")
	}
}
