package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the resolved on-disk locations
type Paths struct {
	ConfigDir  string // Directory holding config.yaml
	ConfigFile string // Path to config.yaml
	DataDir    string // Default directory for history, groups, lock and socket
}

// GetPaths resolves the platform directories, honoring CLIPMAN_CONFIG_DIR and
// CLIPMAN_DATA_DIR. Nothing is created on disk.
func GetPaths() (*Paths, error) {
	configDir := os.Getenv("CLIPMAN_CONFIG_DIR")
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(base, "Clipman")
		case "darwin":
			configDir = filepath.Join(base, "com.berrythewa.clipman")
		default:
			configDir = filepath.Join(base, "clipman")
		}
	}

	dataDir := os.Getenv("CLIPMAN_DATA_DIR")
	if dataDir == "" {
		var err error
		if dataDir, err = defaultDataDir(); err != nil {
			return nil, err
		}
	}

	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		DataDir:    dataDir,
	}, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Clipman"), nil
	case "windows":
		if appData, err := os.UserConfigDir(); err == nil {
			return filepath.Join(appData, "Clipman", "Data"), nil
		}
		return filepath.Join(home, "AppData", "Local", "Clipman"), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "clipman"), nil
		}
		return filepath.Join(home, ".local", "share", "clipman"), nil
	}
}
