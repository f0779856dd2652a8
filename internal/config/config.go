package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultServerURL  = "http://localhost:4000"
	DefaultListenAddr = "127.0.0.1:4000"
	DefaultTimeout    = 10 * time.Second
)

// Config holds the unified application configuration
type Config struct {
	ServerURL  string
	ListenAddr string
	Timeout    time.Duration
	LogDir     string
	Verbose    bool
}

// Settings represents the config file structure
type Settings struct {
	ServerURL  string `json:"server_url,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	Timeout    string `json:"timeout,omitempty"`
	LogDir     string `json:"log_dir,omitempty"`
}

// CLIFlags holds parsed CLI flags. Empty values leave lower layers in place.
type CLIFlags struct {
	ConfigPath string
	ServerURL  string
	ListenAddr string
	Timeout    string
	Verbose    bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		ServerURL:  DefaultServerURL,
		ListenAddr: DefaultListenAddr,
		Timeout:    DefaultTimeout,
		Verbose:    flags.Verbose,
	}

	if dir, err := GetConfigDir(); err == nil {
		cfg.LogDir = dir
	}

	configPath := flags.ConfigPath
	explicit := configPath != ""
	if !explicit {
		if p, err := GetConfigPath(); err == nil {
			configPath = p
		}
	}

	if configPath != "" {
		fileConfig, err := loadConfigFile(configPath)
		switch {
		case err == nil:
			if err := cfg.apply(*fileConfig); err != nil {
				return nil, fmt.Errorf("config file %s: %w", configPath, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	// Priority 2: Environment variables override config file
	env := Settings{
		ServerURL:  os.Getenv("SCRIBBLE_SERVER"),
		ListenAddr: os.Getenv("SCRIBBLE_LISTEN"),
		Timeout:    os.Getenv("SCRIBBLE_TIMEOUT"),
		LogDir:     os.Getenv("SCRIBBLE_LOG_DIR"),
	}
	if err := cfg.apply(env); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	// Priority 1: CLI flags override everything
	cli := Settings{
		ServerURL:  flags.ServerURL,
		ListenAddr: flags.ListenAddr,
		Timeout:    flags.Timeout,
	}
	if err := cfg.apply(cli); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	return cfg, nil
}

func (c *Config) apply(s Settings) error {
	if s.ServerURL != "" {
		c.ServerURL = strings.TrimRight(s.ServerURL, "/")
	}
	if s.ListenAddr != "" {
		c.ListenAddr = s.ListenAddr
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid timeout %q: must be positive", s.Timeout)
		}
		c.Timeout = d
	}
	if s.LogDir != "" {
		c.LogDir = expandPath(s.LogDir)
	}
	return nil
}

// GetConfigDir returns the directory holding the config file and debug log
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "scribble"), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	settings := Settings{
		ServerURL:  DefaultServerURL,
		ListenAddr: DefaultListenAddr,
		Timeout:    DefaultTimeout.String(),
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
