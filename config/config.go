// Package config loads the runtime's TOML settings, creating a commented
// default file on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full runtime configuration.
type Config struct {
	// DataDirectory holds sessions and the result cache.
	DataDirectory string `toml:"data_directory"`

	// HistoryWindow bounds how many trailing messages a session keeps.
	HistoryWindow int `toml:"history_window"`

	Agents AgentsConfig `toml:"agents"`
	Cache  CacheConfig  `toml:"cache"`
	Tools  ToolsConfig  `toml:"tools"`
}

// AgentsConfig names the two personas.
type AgentsConfig struct {
	Sharp      AgentConfig `toml:"sharp"`
	Contrarian AgentConfig `toml:"contrarian"`
}

// AgentConfig describes one agent's model backend and persona.
type AgentConfig struct {
	// Provider is one of "openai", "anthropic", "ollama". An "openai"
	// agent with a custom base_url reaches any OpenAI-compatible endpoint.
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the key; keys are
	// never stored in the config file.
	APIKeyEnv string `toml:"api_key_env"`

	Temperature float64 `toml:"temperature"`

	// SystemPrompt overrides the built-in persona prompt when non-empty.
	SystemPrompt string `toml:"system_prompt"`
}

// APIKey resolves the agent's key from the environment.
func (a AgentConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

// CacheConfig controls the durable tool-result cache.
type CacheConfig struct {
	// Path to the sqlite file; empty means <data_directory>/cache.db.
	Path string `toml:"path"`

	// Timezone anchors the "today's schedule expires at midnight" rule.
	Timezone string `toml:"timezone"`

	// TTLMinutes overrides per-category TTLs, keyed by category name.
	TTLMinutes map[string]int `toml:"ttl_minutes"`
}

// ToolsConfig controls the dispatch engine and the turn loop.
type ToolsConfig struct {
	Workers             int `toml:"workers"`
	ToolTimeoutSeconds  int `toml:"tool_timeout_seconds"`
	ModelTimeoutSeconds int `toml:"model_timeout_seconds"`
	MaxRounds           int `toml:"max_rounds"`
}

// Load reads the config file, creating the default template when it does
// not exist. Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("failed to create config: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	// 0600: the file may later carry base URLs and model names the user
	// considers private.
	return os.WriteFile(path, []byte(template), 0600)
}

// CachePath resolves the cache file location.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(c.DataDirectory, "cache.db")
}
