package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type area struct {
	id   EntityID
	x, y int
}

func (a area) EntityID() EntityID              { return a.id }
func (a area) Coordinates() (float64, float64) { return float64(a.x), float64(a.y) }

func TestPointOf(t *testing.T) {
	p := PointOf(area{id: 7, x: 10, y: -3})
	require.Equal(t, Point{ID: 7, X: 10, Y: -3}, p)

	q := Point{ID: 1, X: 0.5, Y: 1.5}
	require.Equal(t, q, PointOf(q))
}

func TestSortedPoints(t *testing.T) {
	entities := []Locatable{
		Point{ID: 30, X: 3},
		area{id: 10, x: 1},
		Point{ID: 20, X: 2},
	}

	t.Run("orders by ID", func(t *testing.T) {
		points, err := SortedPoints(entities)
		require.NoError(t, err)

		require.Equal(t, []EntityID{10, 20, 30}, []EntityID{points[0].ID, points[1].ID, points[2].ID})
		require.Equal(t, EntityID(30), entities[0].EntityID(), "input must not be reordered")
	})

	t.Run("nil entity", func(t *testing.T) {
		withNil := []Locatable{Point{ID: 1}, nil, Point{ID: 2}}

		points, err := SortedPoints(withNil)
		require.ErrorIs(t, err, ErrNilEntity)
		require.Contains(t, err.Error(), "position 1")
		require.Nil(t, points)
	})

	t.Run("empty input", func(t *testing.T) {
		points, err := SortedPoints(nil)
		require.NoError(t, err)
		require.Empty(t, points)
	})
}

func TestFirstDuplicate(t *testing.T) {
	_, dup := FirstDuplicate([]Point{{ID: 1}, {ID: 2}, {ID: 3}})
	require.False(t, dup)

	id, dup := FirstDuplicate([]Point{{ID: 1}, {ID: 2}, {ID: 2}})
	require.True(t, dup)
	require.Equal(t, EntityID(2), id)

	_, dup = FirstDuplicate(nil)
	require.False(t, dup)
}

func TestSiteKindValid(t *testing.T) {
	for _, k := range AllSiteKinds() {
		require.True(t, k.Valid(), k)
	}
	require.False(t, SiteKind("river").Valid())
}
