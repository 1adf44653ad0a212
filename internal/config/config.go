// Package config handles the XDG configuration directory, the optional
// config.yaml file, and file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// ConfigFile is the optional YAML configuration filename.
	ConfigFile = "config.yaml"

	// SessionFile is the stored session filename (token + user).
	SessionFile = "session.json"

	// BaseURLEnv overrides the backend base URL when set.
	BaseURLEnv = "TASKFLOW_BASE_URL"

	// DefaultBaseURL is the hosted backend.
	DefaultBaseURL = "https://taskflow-backend-5o21.onrender.com"
)

// Default per-operation timeout classes. Auth operations get the longest
// bound because the hosted backend cold-starts.
const (
	DefaultHealthTimeout = 5 * time.Second
	DefaultTaskTimeout   = 8 * time.Second
	DefaultAuthTimeout   = 15 * time.Second
)

// Timeouts holds the per-operation-class request bounds.
type Timeouts struct {
	Health time.Duration
	Task   time.Duration
	Auth   time.Duration
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend base URL.
	BaseURL string

	// Timeouts are the per-operation-class request bounds.
	Timeouts Timeouts

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig is the on-disk shape of config.yaml. Durations are Go
// duration strings ("8s", "1m30s").
type fileConfig struct {
	BaseURL  string `yaml:"base_url"`
	Timeouts struct {
		Health string `yaml:"health"`
		Task   string `yaml:"task"`
		Auth   string `yaml:"auth"`
	} `yaml:"timeouts"`
}

// New creates a Config with the default or specified config directory,
// applying config.yaml and the TASKFLOW_BASE_URL override when present.
// If configDir is empty, uses XDG_CONFIG_HOME/taskflow or $HOME/.config/taskflow.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Timeouts: Timeouts{
			Health: DefaultHealthTimeout,
			Task:   DefaultTaskTimeout,
			Auth:   DefaultAuthTimeout,
		},
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if url := os.Getenv(BaseURLEnv); url != "" {
		cfg.BaseURL = url
	}

	return cfg, nil
}

// loadFile applies config.yaml on top of the defaults. A missing file is
// not an error.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	for _, f := range []struct {
		raw string
		dst *time.Duration
	}{
		{fc.Timeouts.Health, &c.Timeouts.Health},
		{fc.Timeouts.Task, &c.Timeouts.Task},
		{fc.Timeouts.Auth, &c.Timeouts.Auth},
	} {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("invalid timeout in %s: %w", ConfigFile, err)
		}
		*f.dst = d
	}

	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the optional config.yaml file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
