package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/15195999826/LomoMarketplace-sub003/internal/ability"
)

type abilityFile struct {
	Abilities []abilityDef `yaml:"abilities"`
}

type abilityDef struct {
	ConfigID    string         `yaml:"config_id"`
	DisplayName string         `yaml:"display_name"`
	Tags        []string       `yaml:"tags"`
	Components  []componentDef `yaml:"components"`
}

type componentDef struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// LoadAbilityConfigs reads a YAML ability definition file and resolves
// every component through the registry. A missing config_id fails the
// load; per-component problems degrade to noop components so one bad
// definition never takes down the whole content set.
func LoadAbilityConfigs(path string) ([]*ability.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ability definitions: %w", err)
	}
	return ParseAbilityConfigs(raw)
}

// ParseAbilityConfigs resolves ability definitions from YAML bytes.
func ParseAbilityConfigs(raw []byte) ([]*ability.Config, error) {
	var file abilityFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing ability definitions: %w", err)
	}

	configs := make([]*ability.Config, 0, len(file.Abilities))
	for i, def := range file.Abilities {
		if def.ConfigID == "" {
			return nil, fmt.Errorf("ability %d missing config_id", i)
		}
		cfg := &ability.Config{
			ConfigID:    def.ConfigID,
			DisplayName: def.DisplayName,
			Tags:        def.Tags,
		}
		for _, cd := range def.Components {
			cfg.Components = append(cfg.Components, buildComponent(def.ConfigID, cd))
		}
		configs = append(configs, cfg)
	}

	slog.Info("ability definitions loaded", "count", len(configs))
	return configs, nil
}
