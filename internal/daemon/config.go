// Package daemon manages the MoodMuse daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Journal    JournalConfig    `toml:"journal"`
	API        APIConfig        `toml:"api"`
	Reflection ReflectionConfig `toml:"reflection"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	Logging    LoggingConfig    `toml:"logging"`
}

// JournalConfig identifies the local user and data location.
type JournalConfig struct {
	UserKey string `toml:"user_key"`
	DataDir string `toml:"data_dir"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// ReflectionConfig controls the AI reflection backend.
type ReflectionConfig struct {
	Endpoint       string `toml:"endpoint"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// TelemetryConfig controls observability exports.
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
	homeDir := moodmuseHome()
	return Config{
		Journal: JournalConfig{
			UserKey: "default",
			DataDir: homeDir,
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8417,
			CORSOrigins: []string{"*"},
		},
		Reflection: ReflectionConfig{
			Endpoint:       "https://api.openai.com",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 30,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "moodmuse.log"),
		},
	}
}

// LoadConfig reads config from ~/.moodmuse/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(moodmuseHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.moodmuse/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(moodmuseHome(), "config.toml")
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

// moodmuseHome returns the MoodMuse data directory.
func moodmuseHome() string {
	if env := os.Getenv("MOODMUSE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".moodmuse")
}

// Home is exported for use by other packages.
func Home() string {
	return moodmuseHome()
}
