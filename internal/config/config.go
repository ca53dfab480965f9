// Package config persists the host's settings between sessions: the
// YouTube API key and video id entered once, plus the chat command
// strings. Chat history and game state are never persisted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dougneves/doug-minigames/pkg/chat"
	"github.com/dougneves/doug-minigames/pkg/game"
)

// Config holds the persisted host settings.
type Config struct {
	APIKey          string
	VideoID         string
	JoinCommand     string
	ThrowCommand    string
	BreakCommand    string
	MinPollInterval time.Duration
}

// configYAML is the on-disk shape. The poll interval is stored as a
// duration string ("5s") so the file stays hand-editable.
type configYAML struct {
	APIKey          string `yaml:"api_key"`
	VideoID         string `yaml:"video_id"`
	JoinCommand     string `yaml:"join_command"`
	ThrowCommand    string `yaml:"throw_command"`
	BreakCommand    string `yaml:"break_command"`
	MinPollInterval string `yaml:"min_poll_interval"`
}

// DefaultPath returns the config location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, "eggparty", "config.yaml"), nil
}

// Load reads the config file. A missing file is not an error: it yields a
// config with defaults applied, ready for first-time setup.
func Load(path string) (*Config, error) {
	var raw configYAML
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run.
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := Config{
		APIKey:       raw.APIKey,
		VideoID:      raw.VideoID,
		JoinCommand:  raw.JoinCommand,
		ThrowCommand: raw.ThrowCommand,
		BreakCommand: raw.BreakCommand,
	}
	if raw.MinPollInterval != "" {
		d, err := time.ParseDuration(raw.MinPollInterval)
		if err != nil {
			return nil, fmt.Errorf("parse min_poll_interval: %w", err)
		}
		cfg.MinPollInterval = d
	}

	if cfg.JoinCommand == "" {
		cfg.JoinCommand = chat.DefaultJoinCommand
	}
	if cfg.ThrowCommand == "" {
		cfg.ThrowCommand = game.DefaultThrowCommand
	}
	if cfg.BreakCommand == "" {
		cfg.BreakCommand = game.DefaultBreakCommand
	}
	if cfg.MinPollInterval <= 0 {
		cfg.MinPollInterval = chat.MinPollInterval
	}
	return &cfg, nil
}

// Save writes the config, creating the parent directory as needed. The
// file holds an API key, so it is written owner-only.
func Save(path string, cfg *Config) error {
	raw := configYAML{
		APIKey:       cfg.APIKey,
		VideoID:      cfg.VideoID,
		JoinCommand:  cfg.JoinCommand,
		ThrowCommand: cfg.ThrowCommand,
		BreakCommand: cfg.BreakCommand,
	}
	if cfg.MinPollInterval > 0 {
		raw.MinPollInterval = cfg.MinPollInterval.String()
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
