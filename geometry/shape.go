package geometry

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Kind tags the variant held by a Shape.
type Kind int

const (
	// KindEmpty holds nothing.
	KindEmpty Kind = iota
	// KindSingle holds exactly one polygon.
	KindSingle
	// KindMulti holds two or more disjoint polygons.
	KindMulti
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSingle:
		return "single"
	case KindMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Shape is a polygonal result whose variant is decided once, where it is
// produced. Consumers switch on Kind instead of inspecting geometry types.
type Shape struct {
	kind  Kind
	parts orb.MultiPolygon
}

// Empty returns the empty Shape.
func Empty() Shape { return Shape{} }

// Single wraps one polygon. A polygon without a usable outer ring yields
// the empty Shape.
func Single(p orb.Polygon) Shape {
	if len(p) == 0 || len(p[0]) < 4 {
		return Empty()
	}
	return Shape{kind: KindSingle, parts: orb.MultiPolygon{p}}
}

// FromMulti classifies mp by its number of non-degenerate parts.
func FromMulti(mp orb.MultiPolygon) Shape {
	parts := make(orb.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		if len(p) > 0 && len(p[0]) >= 4 {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return Empty()
	case 1:
		return Shape{kind: KindSingle, parts: parts}
	default:
		return Shape{kind: KindMulti, parts: parts}
	}
}

// Kind returns the variant.
func (s Shape) Kind() Kind { return s.kind }

// IsEmpty reports whether s holds nothing.
func (s Shape) IsEmpty() bool { return s.kind == KindEmpty }

// Polygon returns the polygon of a Single shape; ok is false otherwise.
func (s Shape) Polygon() (orb.Polygon, bool) {
	if s.kind != KindSingle {
		return nil, false
	}
	return s.parts[0], true
}

// Parts returns every polygon held, largest area first. The slice is a copy.
func (s Shape) Parts() []orb.Polygon {
	out := make([]orb.Polygon, len(s.parts))
	copy(out, s.parts)
	sort.SliceStable(out, func(i, j int) bool {
		return planar.Area(out[i]) > planar.Area(out[j])
	})
	return out
}

// Largest returns the part with the largest area; ok is false when empty.
func (s Shape) Largest() (orb.Polygon, bool) {
	if s.kind == KindEmpty {
		return nil, false
	}
	return s.Parts()[0], true
}

// Geometry returns s as an orb geometry: nil, orb.Polygon or orb.MultiPolygon.
func (s Shape) Geometry() orb.Geometry {
	switch s.kind {
	case KindSingle:
		return s.parts[0]
	case KindMulti:
		return s.parts
	default:
		return nil
	}
}

// Area returns the summed area of all parts.
func (s Shape) Area() float64 {
	var a float64
	for _, p := range s.parts {
		a += planar.Area(p)
	}
	return a
}
