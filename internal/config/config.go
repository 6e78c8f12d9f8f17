// Package config loads the TOML configuration file. Every field has a
// default so the program runs with no config at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

type Config struct {
	DataDir      string `toml:"data_dir"`
	CustomerFile string `toml:"customer_file"`
	AccountFile  string `toml:"account_file"`
	LogLevel     string `toml:"log_level"`
	MetricsAddr  string `toml:"metrics_addr"`
}

func Default() Config {
	return Config{
		DataDir:      ".",
		CustomerFile: "customers.json",
		AccountFile:  "accounts.json",
		LogLevel:     "info",
	}
}

// Load reads the config file at path. A missing file yields the defaults; a
// present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) CustomerPath() string {
	return filepath.Join(c.DataDir, c.CustomerFile)
}

func (c Config) AccountPath() string {
	return filepath.Join(c.DataDir, c.AccountFile)
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
