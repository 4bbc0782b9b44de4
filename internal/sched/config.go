package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	TickMS     int    `yaml:"tick_ms"`     // 5 (by default), wall-clock period of one tick for the driver
	SliceTicks int    `yaml:"slice_ticks"` // 2 (by default), round-robin quantum
	Policy     string `yaml:"policy"`      // ROUND_ROBIN (by default)
	LogLevel   string `yaml:"log_level"`   // info (by default)
	LogFormat  string `yaml:"log_format"`  // text (by default)
}

// DefaultConfig is used whenever no config file is given or found.
func DefaultConfig() Config {
	return Config{
		TickMS:     5,
		SliceTicks: DefaultTimeSlice,
		Policy:     RoundRobin.String(),
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads YAML and overrides defaults; empty path or missing file =
// defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	// sanity clamps
	if cfg.SliceTicks <= 0 {
		cfg.SliceTicks = DefaultTimeSlice
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 5
	}
	if cfg.Policy == "" {
		cfg.Policy = RoundRobin.String()
	}
	if _, err := ParsePolicy(cfg.Policy); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
