//go:build integration

package entrance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btx638/policr-mini/pkg/testutil/containers"
	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

func TestRedisMessageIDStore(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	store := NewRedisMessageIDStore(rc.Client)

	t.Run("get before set returns not found", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		_, err := store.Get(ctx, 42)
		require.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	})

	t.Run("set then get round trips", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, store.Set(ctx, 42, 1001))

		id, err := store.Get(ctx, 42)
		require.NoError(t, err)
		require.Equal(t, int64(1001), id)
	})

	t.Run("delete forgets the id", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, store.Set(ctx, 42, 1001))
		require.NoError(t, store.Delete(ctx, 42))

		_, err := store.Get(ctx, 42)
		require.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	})

	t.Run("chats are isolated", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, store.Set(ctx, 1, 100))
		require.NoError(t, store.Set(ctx, 2, 200))

		id, err := store.Get(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, int64(100), id)
	})
}
