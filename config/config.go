package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Server config
const SERVER_PORT = "8080"
const SERVER_READ_TIMEOUT_SECONDS = 10
const SERVER_WRITE_TIMEOUT_SECONDS = 10
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5

// Ticketmaster Discovery API
const TICKETMASTER_ENDPOINT_BASE_V2 = "https://app.ticketmaster.com/discovery/v2"
const TICKETMASTER_API_KEY_ENV = "TICKETMASTER_API_KEY"
const TICKETMASTER_API_KEY_FILE = "ticketmaster_api_key.json"

// Events list defaults
const DEFAULT_COUNTRY_CODE = "PL"
const DEFAULT_PAGE_SIZE = 20
const DEFAULT_TIME_ZONE = "Local"

// Details cache config
const CACHE_BACKEND_MEMORY = "memory"
const CACHE_BACKEND_REDIS = "redis"
const DETAILS_CACHE_CAPACITY = 256

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0
const REDIS_DETAILS_TTL_MINUTES = 30

// Environments
const ENV_PROD = "prod"
const ENV_DEV = "dev"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const EVENTS_RESPONSE_RESOURCE = "events_response.json"
const EVENT_DETAILS_RESOURCE = "event_details.json"

// envPrefix is prepended to every environment override, e.g. EVENTLY_SERVER_PORT.
const envPrefix = "EVENTLY_"

// Config holds all runtime configuration for the application.
type Config struct {
	Env          string             `json:"env"`
	Server       ServerConfig       `json:"server"`
	Ticketmaster TicketmasterConfig `json:"ticketmaster"`
	Events       EventsConfig       `json:"events"`
	Cache        CacheConfig        `json:"cache"`
	Redis        RedisConfig        `json:"redis"`
}

// ServerConfig for HTTP server settings
type ServerConfig struct {
	Port                   string `json:"port"`
	ReadTimeoutSeconds     int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `json:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds"`
}

// TicketmasterConfig for the Discovery API
type TicketmasterConfig struct {
	BaseURL    string `json:"base_url"`
	APIKeyFile string `json:"api_key_file"`
}

// EventsConfig holds the defaults used by list screens.
type EventsConfig struct {
	CountryCode string `json:"country_code"`
	PageSize    int    `json:"page_size"`
	// TimeZone is an IANA name used to render absolute start times.
	TimeZone string `json:"time_zone"`
}

// CacheConfig selects and sizes the event details cache.
type CacheConfig struct {
	Backend  string `json:"backend"`
	Capacity int    `json:"capacity"`
}

// RedisConfig for the optional redis cache backend
type RedisConfig struct {
	Address    string `json:"address"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	TTLMinutes int    `json:"ttl_minutes"`
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	return &Config{
		Env: ENV_DEV,
		Server: ServerConfig{
			Port:                   SERVER_PORT,
			ReadTimeoutSeconds:     SERVER_READ_TIMEOUT_SECONDS,
			WriteTimeoutSeconds:    SERVER_WRITE_TIMEOUT_SECONDS,
			ShutdownTimeoutSeconds: SERVER_SHUTDOWN_TIMEOUT_SECONDS,
		},
		Ticketmaster: TicketmasterConfig{
			BaseURL:    TICKETMASTER_ENDPOINT_BASE_V2,
			APIKeyFile: TICKETMASTER_API_KEY_FILE,
		},
		Events: EventsConfig{
			CountryCode: DEFAULT_COUNTRY_CODE,
			PageSize:    DEFAULT_PAGE_SIZE,
			TimeZone:    DEFAULT_TIME_ZONE,
		},
		Cache: CacheConfig{
			Backend:  CACHE_BACKEND_MEMORY,
			Capacity: DETAILS_CACHE_CAPACITY,
		},
		Redis: RedisConfig{
			Address:    REDIS_DB_ADDRESS,
			Password:   REDIS_DB_PASSWORD,
			DB:         REDIS_DB,
			TTLMinutes: REDIS_DETAILS_TTL_MINUTES,
		},
	}
}

// Load reads configuration from an optional JSON file and then applies
// environment overrides using the pattern EVENTLY_SECTION_KEY.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %q: %w", configPath, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString("ENV", &c.Env)
	setString("SERVER_PORT", &c.Server.Port)
	setString("TICKETMASTER_BASE_URL", &c.Ticketmaster.BaseURL)
	setString("TICKETMASTER_API_KEY_FILE", &c.Ticketmaster.APIKeyFile)
	setString("EVENTS_COUNTRY_CODE", &c.Events.CountryCode)
	setString("EVENTS_TIME_ZONE", &c.Events.TimeZone)
	setString("CACHE_BACKEND", &c.Cache.Backend)
	setString("REDIS_ADDRESS", &c.Redis.Address)
	setString("REDIS_PASSWORD", &c.Redis.Password)

	ints := []struct {
		key string
		dst *int
	}{
		{"SERVER_READ_TIMEOUT_SECONDS", &c.Server.ReadTimeoutSeconds},
		{"SERVER_WRITE_TIMEOUT_SECONDS", &c.Server.WriteTimeoutSeconds},
		{"SERVER_SHUTDOWN_TIMEOUT_SECONDS", &c.Server.ShutdownTimeoutSeconds},
		{"EVENTS_PAGE_SIZE", &c.Events.PageSize},
		{"CACHE_CAPACITY", &c.Cache.Capacity},
		{"REDIS_DB", &c.Redis.DB},
		{"REDIS_TTL_MINUTES", &c.Redis.TTLMinutes},
	}
	for _, i := range ints {
		if err := setInt(i.key, i.dst); err != nil {
			return err
		}
	}
	return nil
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(key string, dst *int) error {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid value for %s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

// Validate checks the invariants the rest of the application relies on.
func (c *Config) Validate() error {
	if c.Events.PageSize <= 0 {
		return fmt.Errorf("events page size must be positive, got %d", c.Events.PageSize)
	}
	if c.Events.CountryCode == "" {
		return fmt.Errorf("events country code is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Ticketmaster.BaseURL == "" {
		return fmt.Errorf("ticketmaster base url is required")
	}
	switch c.Cache.Backend {
	case CACHE_BACKEND_MEMORY:
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("cache capacity must be positive, got %d", c.Cache.Capacity)
		}
	case CACHE_BACKEND_REDIS:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// IsProd reports whether the real Ticketmaster API should be used.
func (c *Config) IsProd() bool {
	return c.Env == ENV_PROD
}

// Location resolves Events.TimeZone; an empty name means UTC.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Events.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid events time zone %q: %w", c.Events.TimeZone, err)
	}
	return loc, nil
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.Redis.TTLMinutes) * time.Minute
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
