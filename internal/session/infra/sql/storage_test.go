package sql_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	sessionsql "github.com/klwxsrx/storefront-client/internal/session/infra/sql"
	pkgsqlmock "github.com/klwxsrx/storefront-client/pkg/sql/mock"
)

func TestStorage_Get(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	db := pkgsqlmock.NewClient(ctrl)
	db.EXPECT().GetContext(ctx, gomock.Any(), gomock.Any(), "token").
		DoAndReturn(func(_ context.Context, dest any, query string, _ ...any) error {
			assert.Contains(t, query, "FROM session_storage")
			*dest.(*string) = "t1"
			return nil
		})
	db.EXPECT().GetContext(ctx, gomock.Any(), gomock.Any(), "cookies").Return(sql.ErrNoRows)

	storage := sessionsql.NewStorage(db)

	value, ok, err := storage.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t1", value)

	_, ok, err = storage.Get(ctx, "cookies")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_SetUpserts(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	db := pkgsqlmock.NewClient(ctrl)
	db.EXPECT().ExecContext(ctx, gomock.Any(), "token", "t2").
		DoAndReturn(func(_ context.Context, query string, _ ...any) (sql.Result, error) {
			assert.Contains(t, query, "INSERT INTO session_storage (key,value)")
			assert.Contains(t, query, "on conflict (key) do update")
			return nil, nil
		})

	require.NoError(t, sessionsql.NewStorage(db).Set(ctx, "token", "t2"))
}

func TestStorage_DeleteSkipsEmptyKeys(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	db := pkgsqlmock.NewClient(ctrl)
	db.EXPECT().ExecContext(ctx, gomock.Any(), "token", "cookies").Return(nil, nil)

	storage := sessionsql.NewStorage(db)
	require.NoError(t, storage.Delete(ctx))
	require.NoError(t, storage.Delete(ctx, "token", "cookies"))
}
