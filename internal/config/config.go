// Package config loads timesheet settings from an optional YAML file and
// TIMESHEET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "TIMESHEET_CONFIG"

// Config holds rendering and parsing settings.
type Config struct {
	Marker             string `yaml:"marker"`
	FontSizeHalfPoints int    `yaml:"font_size_half_points"`
	TableWidthDxa      int    `yaml:"table_width_dxa"`
	SheetName          string `yaml:"sheet_name"`
	SheetWidthChars    int    `yaml:"sheet_width_chars"`
	TimeZone           string `yaml:"time_zone"` // IANA name; empty means Local
	LogUseCases        bool   `yaml:"log_use_cases"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Marker:             "Tabelle",
		FontSizeHalfPoints: 16,
		TableWidthDxa:      9000,
		SheetName:          "Timesheet",
		SheetWidthChars:    120,
		LogUseCases:        false,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or $TIMESHEET_CONFIG when path is empty), then environment overrides.
// A missing file is only an error when a path was given.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.Marker != "" {
		cfg.Marker = fileCfg.Marker
	}
	if fileCfg.FontSizeHalfPoints > 0 {
		cfg.FontSizeHalfPoints = fileCfg.FontSizeHalfPoints
	}
	if fileCfg.TableWidthDxa > 0 {
		cfg.TableWidthDxa = fileCfg.TableWidthDxa
	}
	if fileCfg.SheetName != "" {
		cfg.SheetName = fileCfg.SheetName
	}
	if fileCfg.SheetWidthChars > 0 {
		cfg.SheetWidthChars = fileCfg.SheetWidthChars
	}
	if fileCfg.TimeZone != "" {
		cfg.TimeZone = fileCfg.TimeZone
	}
	cfg.LogUseCases = cfg.LogUseCases || fileCfg.LogUseCases
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TIMESHEET_MARKER"); v != "" {
		cfg.Marker = v
	}
	applyPositiveIntEnv(&cfg.FontSizeHalfPoints, "TIMESHEET_FONT_SIZE")
	applyPositiveIntEnv(&cfg.TableWidthDxa, "TIMESHEET_TABLE_WIDTH_DXA")
	if v := os.Getenv("TIMESHEET_SHEET_NAME"); v != "" {
		cfg.SheetName = v
	}
	applyPositiveIntEnv(&cfg.SheetWidthChars, "TIMESHEET_SHEET_WIDTH_CHARS")
	if v := os.Getenv("TIMESHEET_TIME_ZONE"); v != "" {
		cfg.TimeZone = v
	}
	if v := os.Getenv("TIMESHEET_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
}

func applyPositiveIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}

// ErrUnknownTimeZone indicates TimeZone names no known location.
var ErrUnknownTimeZone = errors.New("unknown time zone")

// Location resolves TimeZone, defaulting to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimeZone, c.TimeZone, err)
	}
	return loc, nil
}
