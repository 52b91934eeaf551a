package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
	"github.com/klwxsrx/storefront-client/internal/session/infra/memory"
)

func TestStorage_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	store := domain.NewSessionStore(memory.NewStorage())

	require.NoError(t, store.SetToken(ctx, "t1"))
	require.NoError(t, store.SetDisplayName(ctx, "a@b.co"))

	token, ok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.AccessToken("t1"), token)

	name, ok, err := store.DisplayName(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", name)

	require.NoError(t, store.Clear(ctx))

	_, ok, err = store.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.DisplayName(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
