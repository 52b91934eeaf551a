package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
)

const DefaultKeyPrefix = "storefront:session:"

type storage struct {
	client    redis.Cmdable
	keyPrefix string
}

func NewStorage(client redis.Cmdable, keyPrefix string) domain.Storage {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	return &storage{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *storage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	return value, true, nil
}

func (s *storage) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (s *storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, s.keyPrefix+key)
	}

	err := s.client.Del(ctx, prefixed...).Err()
	if err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}

	return nil
}
