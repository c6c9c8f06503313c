package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions_Defaults(t *testing.T) {
	opts := LoadOptions(NewViper())

	assert.Equal(t, DefaultConfigPath, opts.ConfigPath)
	assert.Equal(t, ".", opts.Dir)
	assert.Equal(t, "2022-10", opts.APIVersion)
	assert.Equal(t, "warn", opts.LogLevel)
	assert.False(t, opts.Yes)
	assert.Empty(t, opts.Shops)
	assert.Equal(t, "templatesync:events", opts.RedisChannel)
}

func TestLoadOptions_EnvAndFlags(t *testing.T) {
	t.Setenv("TEMPLATESYNC_API_VERSION", "2024-01")
	t.Setenv("TEMPLATESYNC_YES", "true")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP(KeyEnv, "e", "", "")
	flags.StringSliceP(KeyShop, "s", nil, "")
	flags.String(KeyAPIVersion, "2022-10", "")
	require.NoError(t, flags.Parse([]string{"-e", "eu", "-s", "us", "-s", "jp"}))

	v := NewViper()
	require.NoError(t, BindFlags(v, flags))
	opts := LoadOptions(v)

	assert.Equal(t, "eu", opts.Env)
	assert.Equal(t, []string{"us", "jp"}, opts.Shops)
	assert.Equal(t, "2024-01", opts.APIVersion) // flag not changed, env wins over its default
	assert.True(t, opts.Yes)
	assert.Equal(t, "mongodb://db:27017", opts.MongoURI)
	assert.Equal(t, "redis://cache:6379/0", opts.RedisURL)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEMPLATESYNC_DOTENV_PROBE=from-file\n"), 0o600))
	t.Setenv("TEMPLATESYNC_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("TEMPLATESYNC_DOTENV_PROBE"))

	LoadDotEnv(zerolog.Nop(), path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "from-file", os.Getenv("TEMPLATESYNC_DOTENV_PROBE"))
}
