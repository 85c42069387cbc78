package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file name inside the configuration directory.
const FileName = "booth.toml"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "BOOTH_"

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load builds the configuration for the given directory: defaults, then
// the TOML file (a missing file is not an error), then environment
// overrides.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.dir = dir

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First launch: defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	}

	applyEnv(cfg, os.Getenv)
	return cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
func Save(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a config file is present in the directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}

// applyEnv overlays BOOTH_* environment variables onto the config.
// getenv is injectable for tests.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvPrefix + "DEBUG"); v != "" {
		cfg.General.Debug = parseBool(v, cfg.General.Debug)
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := getenv(EnvPrefix + "DIRECTORY"); v != "" {
		cfg.General.Directory = v
	}
	if v := getenv(EnvPrefix + "FULLSCREEN"); v != "" {
		cfg.Window.Fullscreen = parseBool(v, cfg.Window.Fullscreen)
	}
	if v := getenv(EnvPrefix + "PRINTER_NAME"); v != "" {
		cfg.Printer.Name = v
	}
	if v := getenv(EnvPrefix + "MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Printer.MaxPages = n
		}
	}
	if v := getenv(EnvPrefix + "FLASH"); v != "" {
		cfg.Flash.Enable = parseBool(v, cfg.Flash.Enable)
	}
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
