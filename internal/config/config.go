package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sim holds all configuration for the simulation driver.
type Sim struct {
	// Logging
	LogLevel string `yaml:"log_level"` // debug | info | warn | error

	// Tick loop
	TickMs     int64 `yaml:"tick_ms"`
	TotalTicks int   `yaml:"total_ticks"`

	// Event pipeline
	MaxEventDepth int `yaml:"max_event_depth"`

	// Content
	AbilityDefs  string `yaml:"ability_defs"`
	TimelineDefs string `yaml:"timeline_defs"`
	ScenarioPath string `yaml:"scenario"`

	// Replay output (JSONL); empty means stdout
	ReplayPath string `yaml:"replay_path"`
}

// DefaultSim returns a Sim config with sensible defaults.
func DefaultSim() Sim {
	return Sim{
		LogLevel:      "info",
		TickMs:        100,
		TotalTicks:    100,
		MaxEventDepth: 0, // pipeline default
		AbilityDefs:   "config/abilities.yaml",
		TimelineDefs:  "config/timelines.yaml",
		ScenarioPath:  "config/scenario.yaml",
	}
}

// LoadSim reads a YAML config file over the defaults.
func LoadSim(path string) (Sim, error) {
	cfg := DefaultSim()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.TickMs <= 0 {
		return cfg, fmt.Errorf("config %s: tick_ms must be positive", path)
	}
	return cfg, nil
}
