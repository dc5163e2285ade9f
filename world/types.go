package world

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies players, troops and projectiles
// Accepts JSON numbers and numeric strings
type ID uint32

// UnmarshalJSON decodes 7 or "7"
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = str
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		// Servers may send integral floats (7.0)
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f < 0 || f != float64(uint32(f)) {
			return fmt.Errorf("invalid id %q", s)
		}
		v = uint64(f)
	}
	*id = ID(v)
	return nil
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// RGB is a color triple, encoded as [r, g, b]
type RGB [3]uint8

// Shape selects the troop glyph
type Shape string

const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
)

// Normalize maps unknown shapes to square
func (s Shape) Normalize() Shape {
	switch s {
	case ShapeCircle, ShapeSquare, ShapeTriangle:
		return s
	}
	return ShapeSquare
}

// UnitType is the troop class requested on spawn
type UnitType string

const (
	UnitSoldier UnitType = "soldier"
	UnitKnight  UnitType = "knight"
	UnitArcher  UnitType = "archer"
)

// UnitTypes lists the selectable unit types in key order
var UnitTypes = []UnitType{UnitSoldier, UnitKnight, UnitArcher}

// ParseUnitType validates a unit type name
func ParseUnitType(s string) (UnitType, error) {
	u := UnitType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range UnitTypes {
		if u == known {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown unit type %q", s)
}
