package selection

import (
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

// Rect is a world-space rectangle with Min <= Max on both axes
type Rect struct {
	Min, Max vmath.Vec2
}

// NewRect builds a rect from two corners in any drag direction
func NewRect(a, b vmath.Vec2) Rect {
	return Rect{Min: vmath.Min(a, b), Max: vmath.Max(a, b)}
}

// Contains is inclusive on every edge
func (r Rect) Contains(p vmath.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Size returns width and height
func (r Rect) Size() vmath.Vec2 {
	return r.Max.Sub(r.Min)
}

// Set is an ordered, duplicate-free list of troop ids
// Ids are kept across snapshot replacement; lookups that miss are the caller's to skip
type Set struct {
	ids   []world.ID
	index map[world.ID]struct{}
}

// NewSet creates a set preserving first-seen order
func NewSet(ids ...world.ID) *Set {
	s := &Set{index: make(map[world.ID]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Set) add(id world.ID) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Contains reports whether id is selected
func (s *Set) Contains(id world.ID) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// IDs returns a copy of the ids in selection order
func (s *Set) IDs() []world.ID {
	if s == nil || len(s.ids) == 0 {
		return nil
	}
	out := make([]world.ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected ids
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Empty reports Len() == 0
func (s *Set) Empty() bool {
	return s.Len() == 0
}

// Compute returns every troop of localPlayer inside rect, in snapshot order
// Pure; O(troops). Troops of other players are never included
func Compute(rect Rect, snap *world.Snapshot, localPlayer world.ID) *Set {
	out := NewSet()
	if snap == nil {
		return out
	}
	for i := range snap.Troops {
		t := &snap.Troops[i]
		if t.PlayerID != localPlayer {
			continue
		}
		if rect.Contains(t.Position) {
			out.add(t.ID)
		}
	}
	return out
}
