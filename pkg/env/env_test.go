package env_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/storefront-client/pkg/env"
)

func TestParse(t *testing.T) {
	t.Setenv("SESSION_REFRESH_LEAD", "45s")
	t.Setenv("CATALOG_FETCH_ATTEMPTS", "many")

	lead, err := env.Parse[time.Duration]("SESSION_REFRESH_LEAD")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, lead)

	_, err = env.Parse[int]("CATALOG_FETCH_ATTEMPTS")
	assert.Error(t, err)

	_, err = env.Parse[string]("STOREFRONT_UNKNOWN_VARIABLE")
	assert.Error(t, err)
}

func TestParseOptional(t *testing.T) {
	v, err := env.ParseOptional[time.Duration]("STOREFRONT_UNKNOWN_VARIABLE")
	require.NoError(t, err)
	assert.Nil(t, v)

	t.Setenv("AUTH_HTTP_TIMEOUT", "5s")
	v, err = env.ParseOptional[time.Duration]("AUTH_HTTP_TIMEOUT")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 5*time.Second, *v)

	path, err := env.ParseDefault("STOREFRONT_UNKNOWN_VARIABLE", "/login")
	require.NoError(t, err)
	assert.Equal(t, "/login", path)
}

func TestMust_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		env.Must(env.Parse[string]("STOREFRONT_UNKNOWN_VARIABLE"))
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("STOREFRONT_DOTENV_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STOREFRONT_DOTENV_VALUE") })

	require.NoError(t, env.LoadDotEnv(file, filepath.Join(dir, "missing.env")))

	v, err := env.Parse[string]("STOREFRONT_DOTENV_VALUE")
	require.NoError(t, err)
	assert.Equal(t, "from-file", v)
}
