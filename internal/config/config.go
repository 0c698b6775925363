// Package config resolves trestle's runtime settings from built-in defaults,
// an optional JSONC file and TRESTLE_* environment variables, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tailscale/hujson"
)

// Config holds all runtime settings.
type Config struct {
	DBPath      string `json:"db_path,omitempty"`
	LogUseCases bool   `json:"log_use_cases,omitempty"`
	// MaxPasses bounds `schedule propagate --until-stable`; zero lets the
	// engine pick one more than the item count.
	MaxPasses  int    `json:"max_passes,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Source is the config file that was read, empty when none was found.
	Source string `json:"-"`
}

// DefaultConfig returns a Config that stores data under home/.trestle.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:     filepath.Join(home, ".trestle", "trestle.db"),
		DateFormat: "2006-01-02",
	}
}

// Load resolves configuration for the current user.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(home, os.Getenv)
}

// LoadFrom is Load with the home directory and environment lookup injected.
// An explicit TRESTLE_CONFIG file must exist; the default file is optional.
func LoadFrom(home string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig(home)

	path := getenv("TRESTLE_CONFIG")
	mustExist := path != ""
	if path == "" {
		path = filepath.Join(home, ".trestle", "config.json")
	}
	if err := mergeFile(&cfg, path, home, mustExist); err != nil {
		return Config{}, err
	}

	if v := getenv("TRESTLE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("TRESTLE_LOG_USECASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("TRESTLE_LOG_USECASES: %w", err)
		}
		cfg.LogUseCases = b
	}
	if v := getenv("TRESTLE_MAX_PASSES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("TRESTLE_MAX_PASSES: %w", err)
		}
		cfg.MaxPasses = n
	}
	if v := getenv("TRESTLE_DATE_FORMAT"); v != "" {
		cfg.DateFormat = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command could work with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("config: db_path must not be empty")
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("config: max_passes must be >= 0, got %d", c.MaxPasses)
	}
	if !usableLayout(c.DateFormat) {
		return fmt.Errorf("config: date_format %q is not a usable Go time layout", c.DateFormat)
	}
	return nil
}

// layoutSample differs from the reference time in every field, so a layout
// with no time verbs formats to itself.
var layoutSample = time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

func usableLayout(layout string) bool {
	formatted := layoutSample.Format(layout)
	if formatted == layout {
		return false
	}
	_, err := time.Parse(layout, formatted)
	return err == nil
}

// mergeFile overlays non-zero fields from a JSONC file onto cfg.
func mergeFile(cfg *Config, path, home string, mustExist bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	var file Config
	if err := json.Unmarshal(std, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if file.DBPath != "" {
		cfg.DBPath = expandHome(file.DBPath, home)
	}
	if file.LogUseCases {
		cfg.LogUseCases = true
	}
	if file.MaxPasses != 0 {
		cfg.MaxPasses = file.MaxPasses
	}
	if file.DateFormat != "" {
		cfg.DateFormat = file.DateFormat
	}
	cfg.Source = path
	return nil
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if len(p) > 1 && p[0] == '~' && p[1] == '/' {
		return filepath.Join(home, p[2:])
	}
	return p
}
