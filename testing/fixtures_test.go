package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zoner/types"
)

func TestNewGridWorld(t *testing.T) {
	world := NewGridWorld(t, 3, 4, types.PoliceForce, 2)
	ctx := context.Background()

	sites, err := world.Sites(ctx, []types.SiteKind{types.SiteRoad})
	require.NoError(t, err)
	require.Len(t, sites, 12)
	require.Equal(t, types.EntityID(1), sites[0].EntityID())

	agents, err := world.Agents(ctx, types.PoliceForce)
	require.NoError(t, err)
	require.Len(t, agents, 2)

	n, err := world.ClusterCount(ctx, types.PoliceForce)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestRandomPoints(t *testing.T) {
	a := RandomPoints(42, 50, 1000)
	b := RandomPoints(42, 50, 1000)
	c := RandomPoints(43, 50, 1000)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	for _, p := range a {
		require.GreaterOrEqual(t, p.X, 0.0)
		require.Less(t, p.X, 1000.0)
	}
}
