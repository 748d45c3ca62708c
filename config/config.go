package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	// HTTP server
	ListenAddr string `yaml:"listen_addr"`

	// Collaborator: "demo" serves placeholder data, "api" calls APIBaseURL.
	Backend         string `yaml:"backend"`
	APIBaseURL      string `yaml:"api_base_url"`
	APITimeout      string `yaml:"api_timeout"`
	SimulateLatency bool   `yaml:"simulate_latency"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects the key-value backend that cart and session state
// persist to.
type StoreConfig struct {
	Driver        string `yaml:"driver"` // memory, file, postgres, redis, sqlite
	Path          string `yaml:"path"`
	DSN           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":3000",
		Backend:         "demo",
		APIBaseURL:      "http://localhost:3001",
		APITimeout:      "10s",
		SimulateLatency: true,
		LogLevel:        "info",
		Store: StoreConfig{
			Driver:    "file",
			Path:      DefaultStorePath(),
			RedisAddr: "localhost:6379",
			KeyPrefix: "retro:",
		},
	}
}

// DefaultStorePath is where the file and sqlite drivers keep their data.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".retro-accessories"
	}
	return filepath.Join(dir, "retro-accessories")
}

// DefaultConfigPath is the config file used when --config is not given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultStorePath(), "config.yaml")
}

// Load reads configuration from a YAML file, starting from defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RETRO_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("RETRO_STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
	if v := os.Getenv("RETRO_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("RETRO_REDIS_PASSWORD"); v != "" {
		c.Store.RedisPassword = v
	}
}

// GetAPITimeout returns the API client timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.APITimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

var (
	ValidBackends     = []string{"demo", "api"}
	ValidStoreDrivers = []string{"memory", "file", "postgres", "redis", "sqlite"}
	ValidLogLevels    = []string{"debug", "info", "warn", "error"}
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidBackends, c.Backend) {
		return fmt.Errorf("invalid backend: %s (valid: %v)", c.Backend, ValidBackends)
	}
	if !contains(ValidStoreDrivers, c.Store.Driver) {
		return fmt.Errorf("invalid store driver: %s (valid: %v)", c.Store.Driver, ValidStoreDrivers)
	}
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.LogLevel, ValidLogLevels)
	}
	if c.APITimeout != "" {
		if _, err := time.ParseDuration(c.APITimeout); err != nil {
			return fmt.Errorf("invalid api_timeout %q: %w", c.APITimeout, err)
		}
	}
	switch c.Store.Driver {
	case "file", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s driver", c.Store.Driver)
		}
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis driver")
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
