package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/cache"
	"github.com/composersite/catalog/internal/legacy"
	"github.com/composersite/catalog/internal/store"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SANITY_PROJECT_ID", "NEXT_PUBLIC_SANITY_PROJECT_ID", "SANITY_TOKEN", "STORE_DRIVER", "HTTP_PORT", "ENV", "COOKIE_SECURE", "NEXT_PUBLIC_SANITY_API_VERSION", "SANITY_API_VERSION", "CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, DefaultAPIVersion, cfg.Sanity.APIVersion)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, DefaultHTTPPort, cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadConfig_PublicFallbacks(t *testing.T) {
	t.Setenv("SANITY_PROJECT_ID", "")
	t.Setenv("SANITY_DATASET", "")
	t.Setenv("NEXT_PUBLIC_SANITY_PROJECT_ID", "abc123")
	t.Setenv("NEXT_PUBLIC_SANITY_DATASET", "production")
	t.Setenv("ENV", "production")
	t.Setenv("CACHE_TTL", "30s")

	cfg := LoadConfig()
	assert.Equal(t, "abc123", cfg.Sanity.ProjectID)
	assert.Equal(t, "production", cfg.Sanity.Dataset)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	assert.Empty(t, LoadConfig().AllowedOrigins)

	t.Setenv("CORS_ORIGINS", " https://example.com, ,https://preview.example.com ")
	assert.Equal(t, []string{"https://example.com", "https://preview.example.com"}, LoadConfig().AllowedOrigins)
}

func TestConfig_Require(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.RequireProject(), ErrMissingEnv)

	cfg.Sanity.ProjectID = "abc123"
	cfg.Sanity.Dataset = "production"
	assert.NoError(t, cfg.RequireProject())

	err := cfg.RequireToken()
	assert.ErrorIs(t, err, ErrMissingEnv)
	assert.Contains(t, err.Error(), "SANITY_TOKEN")

	cfg.Sanity.Token = "token"
	assert.NoError(t, cfg.RequireToken())
}

func TestConfig_LegacySource(t *testing.T) {
	cfg := &Config{Legacy: LegacyConfig{Source: "ddev", Dir: "/srv/site"}}
	src, err := cfg.LegacySource()
	require.NoError(t, err)
	assert.IsType(t, &legacy.CommandSource{}, src)

	cfg.Legacy = LegacyConfig{Source: "sqlite", DSN: filepath.Join(t.TempDir(), "legacy.db")}
	src, err = cfg.LegacySource()
	require.NoError(t, err)
	assert.IsType(t, &legacy.GormSource{}, src)

	cfg.Legacy = LegacyConfig{Source: "postgres"}
	_, err = cfg.LegacySource()
	assert.ErrorIs(t, err, ErrMissingEnv)

	cfg.Legacy = LegacyConfig{Source: "oracle"}
	_, err = cfg.LegacySource()
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestConfig_OpenStore(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "nested", "catalog.db")}}
	s, err := cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &store.GormStore{}, s)
	require.NoError(t, s.Migrate())

	cfg.Store.Driver = "sanity"
	_, err = cfg.OpenStore()
	assert.ErrorIs(t, err, ErrMissingEnv)

	cfg.Sanity = store.SanityConfig{ProjectID: "abc123", Dataset: "production"}
	s, err = cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &store.SanityStore{}, s)

	cfg.Store.Driver = "mongo"
	_, err = cfg.OpenStore()
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestConfig_OpenCache(t *testing.T) {
	cfg := &Config{}
	assert.IsType(t, cache.Nop{}, cfg.OpenCache())

	cfg.Redis = RedisConfig{Addr: "localhost:6379", Compression: "lz4"}
	assert.IsType(t, &cache.Redis{}, cfg.OpenCache())
}
