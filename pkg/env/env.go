package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/klwxsrx/storefront-client/pkg/strings"
)

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("failed to parse environment: %w", err))
	}
	return val
}

// LoadDotEnv populates the environment from dotenv files, keeping variables that are already set.
// Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	return nil
}

func Parse[T strings.SupportedValueParsingTypes](key string) (T, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		var blank T
		return blank, notFoundError[T](key)
	}

	v, err := strings.ParseTypedValue[T](str)
	if err != nil {
		return v, invalidValueError[T](key)
	}

	return v, nil
}

func ParseOptional[T strings.SupportedValueParsingTypes](key string) (*T, error) {
	if _, ok := os.LookupEnv(key); !ok {
		return nil, nil
	}

	v, err := Parse[T](key)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func ParseDefault[T strings.SupportedValueParsingTypes](key string, defaultValue T) (T, error) {
	v, err := ParseOptional[T](key)
	if err != nil || v == nil {
		return defaultValue, err
	}

	return *v, nil
}

func notFoundError[T any](key string) error {
	var blank T
	return fmt.Errorf("env %s with type %T not found", key, blank)
}

func invalidValueError[T any](key string) error {
	var blank T
	return fmt.Errorf("env %s with type %T has invalid value", key, blank)
}
