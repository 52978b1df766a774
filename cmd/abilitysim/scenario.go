package main

import (
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/world"
)

// Scenario is the scripted setup and input for one simulation run:
// actors with starting attributes and grants, plus events injected at
// fixed logic times. Identical scenarios replay to identical event
// streams.
type Scenario struct {
	Actors []ScenarioActor `yaml:"actors"`
	Script []ScriptEntry   `yaml:"script"`

	injected int
}

type ScenarioActor struct {
	ID         string                  `yaml:"id"`
	Attributes map[string]AttributeDef `yaml:"attributes"`
	Grants     []string                `yaml:"grants"`
}

type AttributeDef struct {
	Base float64  `yaml:"base"`
	Min  *float64 `yaml:"min"`
	Max  *float64 `yaml:"max"`
}

type ScriptEntry struct {
	AtMs   int64          `yaml:"at_ms"`
	Kind   string         `yaml:"kind"`
	Fields map[string]any `yaml:"fields"`
}

// LoadScenario reads a scenario YAML file. Script entries must be
// sorted by at_ms; injection walks them once.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	for i := 1; i < len(s.Script); i++ {
		if s.Script[i].AtMs < s.Script[i-1].AtMs {
			return nil, fmt.Errorf("scenario script entry %d out of order", i)
		}
	}
	return &s, nil
}

// Populate registers actors, defines their attributes and applies the
// initial grants. Actors without an id get a generated one.
func (s *Scenario) Populate(w *world.World) error {
	for i := range s.Actors {
		sa := &s.Actors[i]
		if sa.ID == "" {
			sa.ID = uuid.NewString()
		}
		a, err := w.AddActor(sa.ID)
		if err != nil {
			return err
		}
		for name, def := range sa.Attributes {
			if def.Min != nil || def.Max != nil {
				min, max := math.Inf(-1), math.Inf(1)
				if def.Min != nil {
					min = *def.Min
				}
				if def.Max != nil {
					max = *def.Max
				}
				a.Attributes().DefineClamped(name, def.Base, min, max)
			} else {
				a.Attributes().Define(name, def.Base)
			}
		}
		for _, configID := range sa.Grants {
			ref := actor.Ref{ID: sa.ID}
			if err := w.GrantAbilityByConfig(ref, ref, configID); err != nil {
				return fmt.Errorf("granting %s to %s: %w", configID, sa.ID, err)
			}
		}
	}
	return nil
}

// InjectDue runs every script event scheduled strictly before the
// upcoming tick boundary through the pipeline.
func (s *Scenario) InjectDue(w *world.World, boundaryMs int64) {
	for s.injected < len(s.Script) && s.Script[s.injected].AtMs < boundaryMs {
		entry := s.Script[s.injected]
		s.injected++
		ev := event.New(entry.Kind, w.LogicTime())
		for k, v := range entry.Fields {
			ev = ev.With(k, v)
		}
		w.Processor().Process(ev)
	}
}
