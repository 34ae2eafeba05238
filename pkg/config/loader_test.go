package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminumlabs/incognito/pkg/config"
)

type inner struct {
	Lifetime time.Duration `env:"TEST_CFG_LIFETIME" envDefault:"1h" yaml:"lifetime"`
	Capacity int64         `env:"TEST_CFG_CAPACITY" envDefault:"100" yaml:"capacity"`
}

type testConfig struct {
	Name  string `env:"TEST_CFG_NAME" envDefault:"default" yaml:"name"`
	Inner inner  `yaml:"inner"`
}

type requiredConfig struct {
	Required string `env:"TEST_CFG_REQUIRED,required"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, time.Hour, cfg.Inner.Lifetime)
	assert.Equal(t, int64(100), cfg.Inner.Capacity)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TEST_CFG_NAME", "from-env")
	t.Setenv("TEST_CFG_LIFETIME", "90s")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 90*time.Second, cfg.Inner.Lifetime)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "name: from-file\ninner:\n  lifetime: 5m\n")

	t.Run("file overrides defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithFile(path)))

		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, 5*time.Minute, cfg.Inner.Lifetime)
		assert.Equal(t, int64(100), cfg.Inner.Capacity, "keys absent from the file keep defaults")
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("TEST_CFG_LIFETIME", "7m")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithFile(path)))

		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, 7*time.Minute, cfg.Inner.Lifetime)
	})

	t.Run("empty file", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithFile(writeFile(t, "empty.yaml", ""))))
		assert.Equal(t, "default", cfg.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg, config.WithFile(filepath.Join(t.TempDir(), "nope.yaml")))
		assert.ErrorIs(t, err, config.ErrReadingFile)
	})

	t.Run("unknown key", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg, config.WithFile(writeFile(t, "bad.yaml", "nmae: typo\n")))
		assert.ErrorIs(t, err, config.ErrParsingFile)
	})
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("APP_TEST_CFG_NAME", "prefixed")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg, config.WithPrefix("APP_")))
	assert.Equal(t, "prefixed", cfg.Name)
}

func TestLoad_EnvFiles(t *testing.T) {
	t.Run("explicit env file", func(t *testing.T) {
		path := writeFile(t, ".env", "TEST_CFG_CAPACITY=256\n")
		t.Cleanup(func() { os.Unsetenv("TEST_CFG_CAPACITY") })

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
		assert.Equal(t, int64(256), cfg.Inner.Capacity)
	})

	t.Run("missing explicit env file", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), ".env.missing")))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("missing required", func(t *testing.T) {
		os.Unsetenv("TEST_CFG_REQUIRED")
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Setenv("TEST_CFG_LIFETIME", "soon")
		var cfg testConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("must load panics", func(t *testing.T) {
		os.Unsetenv("TEST_CFG_REQUIRED")
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
