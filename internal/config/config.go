package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "COMPRAS"

	dbFileName  = "compras.db"
	logFileName = "compras.log"
)

// Config is read from COMPRAS_* environment variables, optionally seeded
// from a .env file in the working directory.
type Config struct {
	DBPath    string `envconfig:"DB_PATH"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile   string `envconfig:"LOG_FILE"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	Theme     string `envconfig:"THEME" default:"classic"`
}

func Load() (*Config, error) {
	// a missing .env is the normal case
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve() error {
	if c.DBPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("user config dir: %w", err)
		}
		c.DBPath = filepath.Join(dir, "compras", dbFileName)
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(filepath.Dir(c.DBPath), logFileName)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid %s_LOG_FORMAT %q: must be json or console", EnvPrefix, c.LogFormat)
	}

	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	switch c.Theme {
	case "classic", "mono":
	default:
		return fmt.Errorf("invalid %s_THEME %q: must be classic or mono", EnvPrefix, c.Theme)
	}
	return nil
}

// SetDBPath overrides the database location. The log file follows it unless
// it was set explicitly.
func (c *Config) SetDBPath(path string) {
	if c.LogFile == filepath.Join(filepath.Dir(c.DBPath), logFileName) {
		c.LogFile = filepath.Join(filepath.Dir(path), logFileName)
	}
	c.DBPath = path
}

// EnsureDirs creates the directories holding the database and the log file.
func (c *Config) EnsureDirs() error {
	for _, p := range []string{c.DBPath, c.LogFile} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	return nil
}
