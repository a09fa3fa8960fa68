// Package config loads and saves the aetheris command configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the configuration directory under the home directory.
	DefaultBaseDir = ".aetheris"
	// DefaultConfigFile is the configuration filename.
	DefaultConfigFile = "config.yaml"
	// DefaultThemeFile holds persisted theme preferences.
	DefaultThemeFile = "theme.json"
	// DefaultLogFile receives logs while the chat UI owns the terminal.
	DefaultLogFile = "aetheris.log"

	// DefaultBaseURL is the API root of a local server.
	DefaultBaseURL = "http://localhost:8000/api"
	// DefaultTimeoutSeconds bounds each REST call.
	DefaultTimeoutSeconds = 30

	// BaseURLEnv overrides the configured base URL.
	BaseURLEnv = "AETHERIS_BASE_URL"
)

// Config is the on-disk configuration.
type Config struct {
	// BaseURL is the API root, including the /api prefix.
	BaseURL string `yaml:"base_url,omitempty"`

	// SessionID is the chat session used when no flag overrides it.
	SessionID string `yaml:"session_id,omitempty"`

	// Reasoning requests reasoning frames by default.
	Reasoning bool `yaml:"reasoning,omitempty"`

	// TimeoutSeconds bounds each REST call. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug,omitempty"`

	configPath string
}

// DefaultPath returns ~/.aetheris/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultConfigFile), nil
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty. A missing file is created with empty values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{configPath: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.configPath = path

	return cfg, nil
}

// Save writes the configuration back to its file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// ThemePath returns the theme preferences file next to the config file.
func (c *Config) ThemePath() string {
	return filepath.Join(c.Dir(), DefaultThemeFile)
}

// LogPath returns the log file next to the config file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir(), DefaultLogFile)
}

// ApplyEnv overrides file values from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(BaseURLEnv); v != "" {
		c.BaseURL = v
	}
}

// ResolvedBaseURL returns the configured base URL or the default.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

// Timeout returns the REST call timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
