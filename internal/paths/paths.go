// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "carta"

// CWD-relative data directory used when nothing else is configured.
const DefaultDataDirName = ".carta-db"

// Files inside the configuration directory.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CARTA_CONFIG_DIR"
	EnvDataDir   = "CARTA_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/carta (fallback ~/.config/carta)
// macOS:   ~/Library/Application Support/carta
// Windows: %APPDATA%/carta
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userDir()
}

// DefaultDataDir returns the platform-specific per-user data directory.
//
// Linux:   $XDG_DATA_HOME/carta (fallback ~/.local/share/carta)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return userDir()
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

func userDir() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CARTA_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory: flag > configured > $(CWD)/.carta-db.
// configured is the merged data_dir setting, in which CARTA_DATA_DIR already
// overrides config.yaml.
func ResolveDataDir(flag, configured string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configured != "" {
		return filepath.Abs(configured)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// EnvFile returns the path of the optional .env file inside configDir.
func EnvFile(configDir string) string {
	return filepath.Join(configDir, EnvFileName)
}
