package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.EnvLocal, cfg.Env)
	assert.Equal(t, "https://api.whatnot.com/api/v2", cfg.Platform.APIURL)
	assert.Equal(t, "https://api.whatnot.com/graphql/", cfg.Platform.GraphQLURL)
	assert.Equal(t, "https://images.whatnot.com", cfg.Platform.ImagesURL)
	assert.Equal(t, "web", cfg.Platform.AppType)
	assert.Zero(t, cfg.Platform.HTTPTimeout)
	assert.Equal(t, session.DriverFile, cfg.Session.Driver)
	assert.Equal(t, session.DefaultPath, cfg.Session.Path)
	assert.Equal(t, "8080", cfg.Gateway.Port)
	assert.Equal(t, 5*time.Second, cfg.Gateway.WatchInterval)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WHATNOT_ENV", "prod")
	t.Setenv("WHATNOT_HTTP_TIMEOUT", "20s")
	t.Setenv("WHATNOT_SESSION_DRIVER", "redis")
	t.Setenv("WHATNOT_REDIS_ADDR", "localhost:6379")
	t.Setenv("WHATNOT_REDIS_DB", "2")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.EnvProd, cfg.Env)
	assert.Equal(t, 20*time.Second, cfg.Platform.HTTPTimeout)

	storeCfg := cfg.Session.StoreConfig()
	assert.Equal(t, session.DriverRedis, storeCfg.Driver)
	require.NotNil(t, storeCfg.Redis)
	assert.Equal(t, "localhost:6379", storeCfg.Redis.Addr)
	assert.Equal(t, 2, storeCfg.Redis.DB)
	assert.Equal(t, "whatnot:session:", storeCfg.Redis.Prefix)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WHATNOT_SESSION_PATH=from-dotenv.json\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("WHATNOT_SESSION_PATH") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.Session.Path)
}

func TestLoad_YAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: dev
platform:
  api_url: http://localhost:9000/api/v2
session:
  driver: sqlite
  dsn: sessions.db
gateway:
  watch_interval: 1s
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.EnvDev, cfg.Env)
	assert.Equal(t, "http://localhost:9000/api/v2", cfg.Platform.APIURL)
	assert.Equal(t, "https://api.whatnot.com/graphql/", cfg.Platform.GraphQLURL)
	assert.Equal(t, session.DriverSQLite, cfg.Session.Driver)
	assert.Equal(t, "sessions.db", cfg.Session.DSN)
	assert.Equal(t, time.Second, cfg.Gateway.WatchInterval)
	assert.Nil(t, cfg.Session.StoreConfig().Redis)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero watch interval", key: "WHATNOT_WATCH_INTERVAL", value: "0s"},
		{name: "negative timeout", key: "WHATNOT_HTTP_TIMEOUT", value: "-1s"},
		{name: "unparsable duration", key: "WHATNOT_HTTP_TIMEOUT", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}
