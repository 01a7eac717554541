package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Log       LogConfig       `yaml:"log"`
	History   HistoryConfig   `yaml:"history"`
	Storage   StorageConfig   `yaml:"storage"`
	Clipboard ClipboardConfig `yaml:"clipboard"`

	// Unix socket served by the daemon; defaults to <storage.dir>/clipman.sock
	SocketPath string `yaml:"socket_path"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console or auto
	File   string `yaml:"file"`   // optional extra output path
}

// HistoryConfig controls capture and retention
type HistoryConfig struct {
	MaxItems        int   `yaml:"max_items"`
	PollingInterval int64 `yaml:"polling_interval"` // milliseconds

	// Evict unpinned entries (not favorite, not in a group) before pinned ones
	PreservePinned bool `yaml:"preserve_pinned"`

	// Clipboard payloads larger than this many bytes are not captured
	MaxContentSize int `yaml:"max_content_size"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, bolt or memory
	Dir     string `yaml:"dir"`
}

// ClipboardConfig selects the pasteboard implementation
type ClipboardConfig struct {
	Backend string `yaml:"backend"` // native, text or memory
}

// Interval returns the polling interval as a duration
func (h HistoryConfig) Interval() time.Duration {
	return time.Duration(h.PollingInterval) * time.Millisecond
}

// DefaultConfig returns a new Config with default values. Directory fields
// stay empty and are resolved by Load.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		History: HistoryConfig{
			MaxItems:        50,
			PollingInterval: 500,
			MaxContentSize:  100 * 1024 * 1024,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		Clipboard: ClipboardConfig{
			Backend: "native",
		},
	}
}

// Load reads the configuration at configPath, or the default location when
// empty. A missing file is created with defaults.
func Load(configPath string) (*Config, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if configPath == "" {
		configPath = paths.ConfigFile
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideFromEnv(cfg)
	cfg.resolve(paths)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.History.MaxItems < 1 {
		return fmt.Errorf("history.max_items must be at least 1, got %d", c.History.MaxItems)
	}
	if c.History.PollingInterval < 10 {
		return fmt.Errorf("history.polling_interval must be at least 10ms, got %d", c.History.PollingInterval)
	}
	if c.History.MaxContentSize < 0 {
		return fmt.Errorf("history.max_content_size must not be negative, got %d", c.History.MaxContentSize)
	}
	switch c.Storage.Backend {
	case "file", "bolt", "memory":
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	switch c.Clipboard.Backend {
	case "native", "text", "memory":
	default:
		return fmt.Errorf("unknown clipboard.backend %q", c.Clipboard.Backend)
	}
	switch c.Log.Format {
	case "json", "console", "auto":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// LockPath is the single-instance lock file guarding the data directory
func (c *Config) LockPath() string {
	return filepath.Join(c.Storage.Dir, "clipman.lock")
}

func (c *Config) resolve(paths *Paths) {
	if c.Storage.Dir == "" {
		c.Storage.Dir = paths.DataDir
	}
	if c.SocketPath == "" {
		c.SocketPath = filepath.Join(c.Storage.Dir, "clipman.sock")
	}
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	if val := os.Getenv("CLIPMAN_DATA_DIR"); val != "" {
		config.Storage.Dir = val
	}
	if val := os.Getenv("CLIPMAN_STORAGE_BACKEND"); val != "" {
		config.Storage.Backend = val
	}
	if val := os.Getenv("CLIPMAN_CLIPBOARD_BACKEND"); val != "" {
		config.Clipboard.Backend = val
	}
	if val := os.Getenv("CLIPMAN_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("CLIPMAN_MAX_ITEMS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.History.MaxItems = n
		}
	}
	if val := os.Getenv("CLIPMAN_POLLING_INTERVAL"); val != "" {
		if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.History.PollingInterval = ms
		}
	}
}
