package store

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	zonertest "github.com/arloliu/zoner/testing"
	"github.com/arloliu/zoner/types"
)

func TestJetStream_Contract(t *testing.T) {
	_, nc := zonertest.StartEmbeddedNATS(t)
	kv := zonertest.CreateJetStreamKV(t, nc, "zoner-contract")

	requireStoreContract(t, NewJetStreamFromKV(kv))
}

func TestNewJetStream(t *testing.T) {
	_, nc := zonertest.StartEmbeddedNATS(t)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("creates default bucket", func(t *testing.T) {
		st, err := NewJetStream(ctx, js, JetStreamConfig{})
		require.NoError(t, err)

		_, err = js.KeyValue(ctx, DefaultBucket)
		require.NoError(t, err)

		require.NoError(t, st.Put(ctx, "zoner.allocator.n.police_force", []byte("2")))
	})

	t.Run("reopens existing bucket and sees prior writes", func(t *testing.T) {
		first, err := NewJetStream(ctx, js, JetStreamConfig{Bucket: "zoner-reopen"})
		require.NoError(t, err)
		require.NoError(t, first.Put(ctx, "zoner.allocator.n.fire_brigade", []byte("4")))

		second, err := NewJetStream(ctx, js, JetStreamConfig{Bucket: "zoner-reopen"})
		require.NoError(t, err)

		value, err := second.Get(ctx, "zoner.allocator.n.fire_brigade")
		require.NoError(t, err)
		require.Equal(t, []byte("4"), value)
	})

	t.Run("errors name the bucket", func(t *testing.T) {
		st, err := NewJetStream(ctx, js, JetStreamConfig{Bucket: "zoner-errors"})
		require.NoError(t, err)

		_, err = st.Get(ctx, "zoner.allocator.n.ambulance_team")
		require.ErrorIs(t, err, types.ErrKeyNotFound)
		require.Contains(t, err.Error(), "zoner-errors/zoner.allocator.n.ambulance_team")
	})
}
