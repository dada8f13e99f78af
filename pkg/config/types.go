package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent ladle configuration stored as
// config.toml in the .ladle/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Chat    ChatConfig   `toml:"chat"`
}

// ClientConfig holds settings for connecting to the backend API.
// APITarget is a full URL including the API prefix
// (e.g. "http://localhost:8000/api/v1").
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// ChatConfig holds default generation parameters for the chat command.
// Each one can be overridden per invocation with a flag.
type ChatConfig struct {
	Model       string  `toml:"model,omitempty"`
	Temperature float64 `toml:"temperature,omitempty"`
	MaxTokens   int     `toml:"max_tokens,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"chat.model": {
		get: func(c *Config) string { return c.Chat.Model },
		set: func(c *Config, v string) error { c.Chat.Model = v; return nil },
	},
	"chat.temperature": {
		get: func(c *Config) string {
			if c.Chat.Temperature == 0 {
				return ""
			}
			return strconv.FormatFloat(c.Chat.Temperature, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for chat.temperature: %w", err)
			}
			if f < 0 || f > 2 {
				return fmt.Errorf("chat.temperature must be between 0.0 and 2.0, got %v", f)
			}
			c.Chat.Temperature = f
			return nil
		},
	},
	"chat.max_tokens": {
		get: func(c *Config) string {
			if c.Chat.MaxTokens == 0 {
				return ""
			}
			return strconv.Itoa(c.Chat.MaxTokens)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for chat.max_tokens: %w", err)
			}
			if n < 1 || n > 4000 {
				return fmt.Errorf("chat.max_tokens must be between 1 and 4000, got %d", n)
			}
			c.Chat.MaxTokens = n
			return nil
		},
	},
}
