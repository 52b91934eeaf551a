package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
	sessiondomainmock "github.com/klwxsrx/storefront-client/internal/session/domain/mock"
)

func TestSessionStore_Token(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	storage := sessiondomainmock.NewStorage(ctrl)
	storage.EXPECT().Get(ctx, domain.StorageKeyToken).Return("t1", true, nil)
	storage.EXPECT().Get(ctx, domain.StorageKeyToken).Return("", false, nil)

	store := domain.NewSessionStore(storage)

	token, ok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.AccessToken("t1"), token)

	_, ok, err = store.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_ClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	storage := sessiondomainmock.NewStorage(ctrl)
	storage.EXPECT().Delete(ctx, domain.StorageKeyToken, domain.StorageKeyDisplayName, domain.StorageKeyCookies).Return(nil)

	require.NoError(t, domain.NewSessionStore(storage).Clear(ctx))
}

func TestSessionStore_WrapsStorageErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	expected := errors.New("unexpected")

	storage := sessiondomainmock.NewStorage(ctrl)
	storage.EXPECT().Set(ctx, domain.StorageKeyDisplayName, "a@b.co").Return(expected)

	err := domain.NewSessionStore(storage).SetDisplayName(ctx, "a@b.co")
	assert.ErrorIs(t, err, expected)
}
