// Package daemon manages the QuestForge daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	User      UserConfig      `toml:"user"`
	API       APIConfig       `toml:"api"`
	Sync      SyncConfig      `toml:"sync"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// UserConfig identifies the local player.
type UserConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// SyncConfig tunes the write coordinator and the maintenance sweep.
type SyncConfig struct {
	DebounceMS     int `toml:"debounce_ms"`
	SweepIntervalS int `toml:"sweep_interval_s"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := questforgeHome()
	return Config{
		User: UserConfig{
			ID:   "local",
			Name: "Hero",
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7151,
		},
		Sync: SyncConfig{
			DebounceMS:     500,
			SweepIntervalS: 60,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "questforge.log"),
		},
	}
}

// LoadConfig reads config from ~/.questforge/config.toml, falling back
// to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(questforgeHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.questforge/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(questforgeHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// questforgeHome returns the QuestForge data directory.
func questforgeHome() string {
	if env := os.Getenv("QUESTFORGE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".questforge")
}

// Home is exported for use by other packages.
func Home() string {
	return questforgeHome()
}
