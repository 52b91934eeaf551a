//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Storage=Storage,SessionStore=SessionStore"
package domain

import (
	"context"
	"fmt"
)

const (
	StorageKeyToken       = "token"
	StorageKeyDisplayName = "nombreUsuario"
	StorageKeyCookies     = "cookies"
)

type (
	// Storage is a persistent string key/value store shared by every session component.
	Storage interface {
		Get(ctx context.Context, key string) (value string, ok bool, err error)
		Set(ctx context.Context, key, value string) error
		Delete(ctx context.Context, keys ...string) error
	}

	SessionStore interface {
		Token(ctx context.Context) (AccessToken, bool, error)
		SetToken(ctx context.Context, token AccessToken) error
		DisplayName(ctx context.Context) (string, bool, error)
		SetDisplayName(ctx context.Context, name string) error
		Clear(ctx context.Context) error
	}
)

type sessionStore struct {
	storage Storage
}

func NewSessionStore(storage Storage) SessionStore {
	return sessionStore{storage: storage}
}

func (s sessionStore) Token(ctx context.Context) (AccessToken, bool, error) {
	value, ok, err := s.storage.Get(ctx, StorageKeyToken)
	if err != nil {
		return "", false, fmt.Errorf("get token: %w", err)
	}
	if !ok || value == "" {
		return "", false, nil
	}

	return AccessToken(value), true, nil
}

func (s sessionStore) SetToken(ctx context.Context, token AccessToken) error {
	err := s.storage.Set(ctx, StorageKeyToken, string(token))
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}

	return nil
}

func (s sessionStore) DisplayName(ctx context.Context) (string, bool, error) {
	value, ok, err := s.storage.Get(ctx, StorageKeyDisplayName)
	if err != nil {
		return "", false, fmt.Errorf("get display name: %w", err)
	}

	return value, ok && value != "", nil
}

func (s sessionStore) SetDisplayName(ctx context.Context, name string) error {
	err := s.storage.Set(ctx, StorageKeyDisplayName, name)
	if err != nil {
		return fmt.Errorf("set display name: %w", err)
	}

	return nil
}

// Clear removes the token, the display name and the persisted cookies.
func (s sessionStore) Clear(ctx context.Context) error {
	err := s.storage.Delete(ctx, StorageKeyToken, StorageKeyDisplayName, StorageKeyCookies)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
