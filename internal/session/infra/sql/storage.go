package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
	pkgsql "github.com/klwxsrx/storefront-client/pkg/sql"
)

const tableSessionStorage = "session_storage"

type storage struct {
	db pkgsql.Client
}

func NewStorage(db pkgsql.Client) domain.Storage {
	return &storage{db: db}
}

func (s *storage) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := sq.
		Select("value").
		From(tableSessionStorage).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build sql: %w", err)
	}

	var value string
	err = s.db.GetContext(ctx, &value, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	return value, true, nil
}

func (s *storage) Set(ctx context.Context, key, value string) error {
	query, args, err := sq.
		Insert(tableSessionStorage).
		Columns("key", "value").
		Values(key, value).
		Suffix(`on conflict (key) do update set
			value = excluded.value,
			updated_at = now()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sq.
		Delete(tableSessionStorage).
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}
	return nil
}
