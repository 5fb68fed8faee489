package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// SharpPrompt is the default persona for the first agent: a numbers-first
// analyst.
const SharpPrompt = `You are "The Sharp", a disciplined NBA betting analyst. You live in the box scores: efficiency ratings, pace, rest days, injury reports, line movement. You never bet on narrative. Use the available tools to pull schedules, stats, injuries and odds before you commit to anything, and say "no bet" when the numbers do not show an edge.

Always end your answer with exactly this 3-line decision card:
Pick: <team/side | over | under | no bet>
Confidence: <0-100>
Reason: <one sentence, max 20 words>`

// ContrarianPrompt is the default persona for the second agent: a
// market-psychology strategist.
const ContrarianPrompt = `You are "The Contrarian", an NBA betting strategist who hunts for spots where the public is wrong. You care about market overreactions, scheduling traps, letdown games and inflated lines on popular teams. Use the available tools to check the schedule, injuries and current odds, then argue for the side the crowd is fading — or "no bet" when the market looks efficient.

Always end your answer with exactly this 3-line decision card:
Pick: <team/side | over | under | no bet>
Confidence: <0-100>
Reason: <one sentence, max 20 words>`

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDirectory: DefaultDataDir(),
		HistoryWindow: 30,
		Agents: AgentsConfig{
			Sharp: AgentConfig{
				Provider:    "openai",
				Model:       "gpt-4o-mini",
				APIKeyEnv:   "OPENAI_API_KEY",
				Temperature: 0.4,
			},
			Contrarian: AgentConfig{
				Provider:    "anthropic",
				Model:       "claude-sonnet-4-5-20250929",
				APIKeyEnv:   "ANTHROPIC_API_KEY",
				Temperature: 0.6,
			},
		},
		Cache: CacheConfig{
			Timezone: "America/Chicago",
		},
		Tools: ToolsConfig{
			Workers:             5,
			ToolTimeoutSeconds:  30,
			ModelTimeoutSeconds: 120,
			MaxRounds:           8,
		},
	}
}

// DefaultDataDir returns the platform default data directory.
// Linux/Mac: ~/.local/share/courtside
// Windows: %LOCALAPPDATA%\courtside
func DefaultDataDir() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, "courtside")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "courtside")
}

// DefaultConfigPath returns the platform default config file location.
func DefaultConfigPath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("USERPROFILE"), ".config", "courtside", "config.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "courtside", "config.toml")
}

const template = `# Courtside configuration
# This file uses TOML format: https://toml.io

# Directory where sessions and the result cache are stored
#data_directory = "~/.local/share/courtside"

# Trailing messages kept per chat session
history_window = 30

[agents.sharp]
provider = "openai"           # openai | anthropic | ollama
model = "gpt-4o-mini"
#base_url = ""                # any OpenAI-compatible endpoint
api_key_env = "OPENAI_API_KEY"
temperature = 0.4
#system_prompt = ""           # override the built-in persona

[agents.contrarian]
provider = "anthropic"
model = "claude-sonnet-4-5-20250929"
api_key_env = "ANTHROPIC_API_KEY"
temperature = 0.6

[cache]
# Timezone anchoring the daily schedule expiry
timezone = "America/Chicago"
# Per-category TTL overrides, in minutes
#[cache.ttl_minutes]
#live = 2
#odds = 5

[tools]
workers = 5
tool_timeout_seconds = 30
model_timeout_seconds = 120
max_rounds = 8
`
