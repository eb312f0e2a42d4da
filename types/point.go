package types

import (
	"cmp"
	"fmt"
	"slices"
)

// EntityID identifies a map entity (site or agent).
//
// IDs are opaque to the allocator apart from their natural ordering, which is
// used to sort every input sequence before any order-sensitive computation.
type EntityID int64

// Locatable is the capability the allocator needs from a world entity:
// a stable identifier and a planar position.
//
// Any point-like variant (areas, buildings, agents) can satisfy it without
// being converted to a concrete type first.
type Locatable interface {
	// EntityID returns the entity identifier.
	EntityID() EntityID

	// Coordinates returns the entity position on the map.
	Coordinates() (x, y float64)
}

// Point is an immutable located entity.
type Point struct {
	ID EntityID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

var _ Locatable = Point{}

// EntityID returns the point identifier.
func (p Point) EntityID() EntityID { return p.ID }

// Coordinates returns the point position.
func (p Point) Coordinates() (float64, float64) { return p.X, p.Y }

// PointOf captures the identifier and position of a non-nil Locatable.
func PointOf(l Locatable) Point {
	if p, ok := l.(Point); ok {
		return p
	}
	x, y := l.Coordinates()

	return Point{ID: l.EntityID(), X: x, Y: y}
}

// SortedPoints converts entities to points ordered by ascending EntityID.
//
// The input slice is not modified.
//
// Parameters:
//   - entities: Entities to convert
//
// Returns:
//   - []Point: Points sorted by ID (stable for equal IDs)
//   - error: ErrNilEntity naming the position of the first nil entity
func SortedPoints(entities []Locatable) ([]Point, error) {
	points := make([]Point, len(entities))
	for i, e := range entities {
		if e == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilEntity, i)
		}
		points[i] = PointOf(e)
	}
	slices.SortStableFunc(points, func(a, b Point) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return points, nil
}

// FirstDuplicate returns the first repeated ID in an ID-sorted point slice.
//
// Returns:
//   - EntityID: The duplicated ID (zero when none)
//   - bool: true if a duplicate exists
func FirstDuplicate(sorted []Point) (EntityID, bool) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return sorted[i].ID, true
		}
	}

	return 0, false
}
