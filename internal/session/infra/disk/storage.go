package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
)

const (
	cacheSizeMaxBytes = 1024 * 1024
	filePerm          = 0o600
	pathPerm          = 0o700
)

type storage struct {
	dv *diskv.Diskv
}

// DefaultPath is the session directory under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}

	return filepath.Join(configDir, "storefront", "session"), nil
}

// NewStorage keeps every key in its own file right in basePath.
func NewStorage(basePath string) domain.Storage {
	flatTransform := func(string) []string { return []string{} }

	return &storage{
		dv: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: cacheSizeMaxBytes,
			FilePerm:     filePerm,
			PathPerm:     pathPerm,
		}),
	}
}

func (s *storage) Get(_ context.Context, key string) (string, bool, error) {
	if !s.dv.Has(key) {
		return "", false, nil
	}

	value, err := s.dv.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("read session key %s: %w", key, err)
	}

	return string(value), true, nil
}

func (s *storage) Set(_ context.Context, key, value string) error {
	err := s.dv.Write(key, []byte(value))
	if err != nil {
		return fmt.Errorf("write session key %s: %w", key, err)
	}

	return nil
}

func (s *storage) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		if !s.dv.Has(key) {
			continue
		}

		err := s.dv.Erase(key)
		if err != nil {
			return fmt.Errorf("erase session key %s: %w", key, err)
		}
	}

	return nil
}
