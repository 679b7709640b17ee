package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Server.BaseURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.Timeout)
	assert.Equal(t, DefaultPollInterval, cfg.Poll.Interval)
	assert.Contains(t, cfg.Session.Path, "session.json")
	assert.Contains(t, cfg.Cache.Path, "cache.db")
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CATALOGCTL_SERVER_BASE_URL", "http://catalog.internal:9090/api")
	t.Setenv("CATALOGCTL_POLL_INTERVAL", "30s")
	t.Setenv("CATALOGCTL_NEO4J_URI", "neo4j://graph.internal:7687")
	t.Setenv("CATALOGCTL_NEO4J_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.internal:9090/api", cfg.Server.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "neo4j://graph.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, "hunter2", cfg.Neo4j.Password)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{BaseURL: "http://localhost:8080/api", Timeout: DefaultRequestTimeout},
			Session: SessionConfig{Path: "/tmp/session.json"},
			Poll:    PollConfig{Interval: DefaultPollInterval},
			Cache:   CacheConfig{Path: "/tmp/cache.db"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty base url", func(c *Config) { c.Server.BaseURL = "" }, "server.base_url"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "server.timeout"},
		{"empty session path", func(c *Config) { c.Session.Path = "" }, "session.path"},
		{"negative poll interval", func(c *Config) { c.Poll.Interval = -time.Second }, "poll.interval"},
		{"empty cache path", func(c *Config) { c.Cache.Path = "" }, "cache.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNeo4jConfigMasksPassword(t *testing.T) {
	c := Neo4jConfig{URI: "neo4j://localhost:7687", Username: "neo4j", Password: "hunter2", Database: "neo4j"}
	s := c.String()
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "neo4j://localhost:7687")
}
