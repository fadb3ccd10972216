package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/config"
)

type apiSettings struct {
	BaseURL string `env:"TEST_API_BASE_URL" envDefault:"http://localhost:8080"`
	Retries int    `env:"TEST_API_RETRIES" envDefault:"0"`
}

type cachedSettings struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"default"`
}

type requiredSettings struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

type fileSettings struct {
	FromFile string `env:"TEST_FROM_FILE"`
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_API_BASE_URL", "https://api.example.test")
	t.Setenv("TEST_API_RETRIES", "2")

	var s apiSettings
	require.NoError(t, config.Load(&s))
	assert.Equal(t, "https://api.example.test", s.BaseURL)
	assert.Equal(t, 2, s.Retries)
}

func TestLoad_ReadOnce(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_CACHED_VALUE", "first")

	var first cachedSettings
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CACHED_VALUE", "second")

	var second cachedSettings
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "later environment changes must not be observed")

	config.Reset()
	var third cachedSettings
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var s requiredSettings
	err := config.Load(&s)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_REQUIRED_VALUE", "now-set")
	require.NoError(t, config.Load(&s))
	assert.Equal(t, "now-set", s.Required)
}

func TestLoad_NilPointer(t *testing.T) {
	var s *apiSettings
	assert.ErrorIs(t, config.Load(s), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_REQUIRED_VALUE")

	assert.Panics(t, func() {
		var s requiredSettings
		config.MustLoad(&s)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	config.Reset()
	os.Unsetenv("TEST_FROM_FILE")
	t.Cleanup(func() { os.Unsetenv("TEST_FROM_FILE") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FROM_FILE=loaded\n"), 0o600))

	require.NoError(t, config.LoadEnvFiles(path))

	var s fileSettings
	require.NoError(t, config.Load(&s))
	assert.Equal(t, "loaded", s.FromFile)

	err := config.LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrEnvFile)
}
