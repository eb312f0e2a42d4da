package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zoner/types"
)

// requireStoreContract exercises the behavior every types.Store must share.
func requireStoreContract(t *testing.T, st types.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key wraps ErrKeyNotFound", func(t *testing.T) {
		_, err := st.Get(ctx, "zoner.allocator.n.missing")

		require.ErrorIs(t, err, types.ErrKeyNotFound)
		require.True(t, types.IsKeyNotFoundError(err))
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, st.Put(ctx, "zoner.allocator.n.fire_brigade", []byte("3")))

		value, err := st.Get(ctx, "zoner.allocator.n.fire_brigade")

		require.NoError(t, err)
		require.Equal(t, []byte("3"), value)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, st.Put(ctx, "zoner.allocator.m.fire_brigade.0", []byte("[1,2]")))
		require.NoError(t, st.Put(ctx, "zoner.allocator.m.fire_brigade.0", []byte("[3]")))

		value, err := st.Get(ctx, "zoner.allocator.m.fire_brigade.0")

		require.NoError(t, err)
		require.Equal(t, []byte("[3]"), value)
	})

	t.Run("delete removes key", func(t *testing.T) {
		require.NoError(t, st.Put(ctx, "zoner.allocator.a.fire_brigade.0", []byte("101")))
		require.NoError(t, st.Delete(ctx, "zoner.allocator.a.fire_brigade.0"))

		_, err := st.Get(ctx, "zoner.allocator.a.fire_brigade.0")

		require.ErrorIs(t, err, types.ErrKeyNotFound)
	})

	t.Run("delete of missing key succeeds", func(t *testing.T) {
		require.NoError(t, st.Delete(ctx, "zoner.allocator.a.never_written.9"))
	})
}
