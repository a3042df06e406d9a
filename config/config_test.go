package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ENV_DEV, cfg.Env)
	assert.Equal(t, SERVER_PORT, cfg.Server.Port)
	assert.Equal(t, TICKETMASTER_ENDPOINT_BASE_V2, cfg.Ticketmaster.BaseURL)
	assert.Equal(t, DEFAULT_COUNTRY_CODE, cfg.Events.CountryCode)
	assert.Equal(t, DEFAULT_PAGE_SIZE, cfg.Events.PageSize)
	assert.Equal(t, CACHE_BACKEND_MEMORY, cfg.Cache.Backend)
	assert.False(t, cfg.IsProd())
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_PAGE_SIZE, cfg.Events.PageSize)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"env": "prod",
		"events": {"country_code": "US", "page_size": 50},
		"cache": {"backend": "redis"},
		"redis": {"address": "localhost:6379", "ttl_minutes": 5}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "US", cfg.Events.CountryCode)
	assert.Equal(t, 50, cfg.Events.PageSize)
	assert.Equal(t, CACHE_BACKEND_REDIS, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.RedisTTL())
	// untouched sections keep their defaults
	assert.Equal(t, SERVER_PORT, cfg.Server.Port)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"env":`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EVENTLY_SERVER_PORT", "9090")
	t.Setenv("EVENTLY_EVENTS_PAGE_SIZE", "5")
	t.Setenv("EVENTLY_EVENTS_COUNTRY_CODE", "DE")
	t.Setenv("EVENTLY_CACHE_CAPACITY", "10")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Events.PageSize)
	assert.Equal(t, "DE", cfg.Events.CountryCode)
	assert.Equal(t, 10, cfg.Cache.Capacity)
}

func TestLoad_InvalidEnvInt(t *testing.T) {
	t.Setenv("EVENTLY_EVENTS_PAGE_SIZE", "lots")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero page size", func(c *Config) { c.Events.PageSize = 0 }, true},
		{"empty country", func(c *Config) { c.Events.CountryCode = "" }, true},
		{"empty base url", func(c *Config) { c.Ticketmaster.BaseURL = "" }, true},
		{"unknown time zone", func(c *Config) { c.Events.TimeZone = "Mars/Olympus" }, true},
		{"utc time zone", func(c *Config) { c.Events.TimeZone = "UTC" }, false},
		{"zero capacity", func(c *Config) { c.Cache.Capacity = 0 }, true},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "disk" }, true},
		{"redis without address", func(c *Config) {
			c.Cache.Backend = CACHE_BACKEND_REDIS
			c.Redis.Address = ""
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)

			err := cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Events.TimeZone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/evently")
	assert.Equal(t, "/srv/evently/resources/events_response.json", GetResourcePath(EVENTS_RESPONSE_RESOURCE))
}
