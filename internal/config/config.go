package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultPollInterval is how often the poller refreshes collections.
	DefaultPollInterval = 5 * time.Second

	// DefaultRequestTimeout is the per-request timeout for backend calls.
	DefaultRequestTimeout = 10 * time.Second
)

// Config holds all configuration for catalogctl.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Poll    PollConfig    `mapstructure:"poll"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Neo4j   Neo4jConfig   `mapstructure:"neo4j"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds where the signed-in user is persisted.
type SessionConfig struct {
	Path string `mapstructure:"path"`
}

// PollConfig holds the background refresher settings.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// CacheConfig holds the offline snapshot database settings.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// Neo4jConfig holds the optional graph mirror settings.
type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// String returns a safe representation of Neo4jConfig with the password masked.
func (c Neo4jConfig) String() string {
	return fmt.Sprintf("Neo4jConfig{URI:%s, Username:%s, Password:***, Database:%s}", c.URI, c.Username, c.Database)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.base_url", "http://localhost:8080/api")
	v.SetDefault("server.timeout", DefaultRequestTimeout)

	v.SetDefault("session.path", filepath.Join(homeDir(), ".catalogctl", "session.json"))

	v.SetDefault("poll.interval", DefaultPollInterval)

	v.SetDefault("cache.path", filepath.Join(homeDir(), ".catalogctl", "cache.db"))

	v.SetDefault("neo4j.uri", "")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "neo4j")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".catalogctl"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("CATALOGCTL")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("server.base_url", "CATALOGCTL_SERVER_BASE_URL")
	_ = v.BindEnv("server.timeout", "CATALOGCTL_SERVER_TIMEOUT")
	_ = v.BindEnv("poll.interval", "CATALOGCTL_POLL_INTERVAL")
	_ = v.BindEnv("neo4j.uri", "CATALOGCTL_NEO4J_URI")
	_ = v.BindEnv("neo4j.password", "CATALOGCTL_NEO4J_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url must not be empty")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be greater than 0")
	}
	if c.Session.Path == "" {
		return fmt.Errorf("session.path must not be empty")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be greater than 0")
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache.path must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
