package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/carta/internal/paths"
	"github.com/mesh-intelligence/carta/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "CARTA"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyDSN            = "dsn"
	cfgKeySyncStrategy   = "sync_strategy"
	cfgKeyBatchSize      = "batch_size"
	cfgKeyBatchInterval  = "batch_interval"
	cfgKeyServerAddress  = "server.address"
	cfgKeyServerMode     = "server.mode"
	cfgKeyLogMode        = "log.mode"
	cfgKeyAllowedOrigins = "cors.allowed_origins"

	defaultBackend       = types.BackendSQLite
	defaultServerAddress = ":8080"
	defaultServerMode    = "release"
	defaultServeLogMode  = "prod"

	// One-shot commands log nothing unless log.mode is configured.
	quietLogMode = "off"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	DSN          string `yaml:"dsn,omitempty"`
	SyncStrategy string `yaml:"sync_strategy,omitempty"`
	Server       struct {
		Address string `yaml:"address,omitempty"`
		Mode    string `yaml:"mode,omitempty"`
	} `yaml:"server,omitempty"`
	Log struct {
		Mode string `yaml:"mode,omitempty"`
	} `yaml:"log,omitempty"`
}

// settings is the merged configuration of one invocation.
type settings struct {
	ConfigDir      string
	Store          types.Config
	ServerAddress  string
	ServerMode     string
	LogMode        string // empty unless configured
	AllowedOrigins []string
}

// loadSettings resolves the config directory, loads .env and config.yaml,
// and applies CARTA_* environment overrides. A missing config.yaml is not
// an error.
func (a *app) loadSettings() (*settings, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	if err := loadDotEnv(configDir); err != nil {
		return nil, err
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	s := &settings{
		ConfigDir: configDir,
		Store: types.Config{
			Backend: v.GetString(cfgKeyBackend),
			DataDir: dataDir,
			DSN:     v.GetString(cfgKeyDSN),
		},
		ServerAddress:  v.GetString(cfgKeyServerAddress),
		ServerMode:     v.GetString(cfgKeyServerMode),
		AllowedOrigins: v.GetStringSlice(cfgKeyAllowedOrigins),
	}
	if v.IsSet(cfgKeyLogMode) {
		s.LogMode = v.GetString(cfgKeyLogMode)
	}
	if s.Store.Backend == types.BackendSQLite {
		s.Store.SQLiteConfig = &types.SQLiteConfig{
			SyncStrategy:  v.GetString(cfgKeySyncStrategy),
			BatchSize:     v.GetInt(cfgKeyBatchSize),
			BatchInterval: v.GetInt(cfgKeyBatchInterval),
		}
	}
	if err := s.Store.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// loadConfig reads config.yaml from configDir with Viper.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyServerAddress, defaultServerAddress)
	v.SetDefault(cfgKeyServerMode, defaultServerMode)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(cfgKeyDataDir, paths.EnvDataDir); err != nil {
		return nil, fmt.Errorf("binding %s: %w", paths.EnvDataDir, err)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadDotEnv loads KEY=value pairs from .env in configDir, then from the
// working directory. Variables already set in the environment win.
func loadDotEnv(configDir string) error {
	for _, path := range []string{paths.EnvFile(configDir), paths.EnvFileName} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// writeConfigIfMissing creates config.yaml with the given values if the
// file does not exist. An existing file is left untouched.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
