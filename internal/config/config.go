package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "ROTE"

// Setting keys. Flags bind to these names with dashes in place of
// underscores.
const (
	KeyDir          = "dir"
	KeyDB           = "db"
	KeyMinLevelSize = "min_level_size"
	KeySaveOrder    = "save_order"
	KeyLogLevel     = "log_level"
	KeyHistory      = "history"
)

// Config holds the resolved settings for a run.
type Config struct {
	Dir          string
	DB           string // empty means the default history path
	MinLevelSize int
	SaveOrder    string
	LogLevel     string
	History      bool
}

// Sources names the optional files Load reads. Empty fields fall back to
// the defaults: $XDG_CONFIG_HOME/rote/config.yaml and ./.env.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// New returns a viper instance with defaults and ROTE_* environment
// lookup registered. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDir, "questions")
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyMinLevelSize, 3)
	v.SetDefault(KeySaveOrder, "asc")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyHistory, true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves settings from flags, environment, config file and .env, in
// that order of priority, and validates the result.
func Load(v *viper.Viper, src Sources) (*Config, error) {
	if err := loadDotEnv(v, src.EnvFile); err != nil {
		return nil, err
	}
	if err := readConfigFile(v, src.ConfigFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		Dir:          v.GetString(KeyDir),
		DB:           v.GetString(KeyDB),
		MinLevelSize: v.GetInt(KeyMinLevelSize),
		SaveOrder:    strings.ToLower(v.GetString(KeySaveOrder)),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
		History:      v.GetBool(KeyHistory),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("config: dir must not be empty")
	}
	if c.MinLevelSize < 1 {
		return fmt.Errorf("config: min_level_size must be at least 1, got %d", c.MinLevelSize)
	}
	switch c.SaveOrder {
	case "asc", "desc":
	default:
		return fmt.Errorf("config: save_order must be asc or desc, got %q", c.SaveOrder)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/rote/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "rote", "config.yaml"), nil
}

// readConfigFile reads path, or the default config file when path is
// empty. Only an explicitly named file is required to exist.
func readConfigFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil
		}
		if _, err := os.Stat(p); err != nil {
			return nil
		}
		path = p
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv registers ROTE_* entries of a .env file as defaults so they
// rank below the environment and the config file. The process environment
// is left untouched.
func loadDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	for k, val := range vars {
		key, ok := strings.CutPrefix(k, EnvPrefix+"_")
		if !ok {
			continue
		}
		v.SetDefault(strings.ToLower(key), val)
	}
	return nil
}
