// Package testutil provides shared fixtures for engine tests.
package testutil

import (
	"testing"

	"github.com/15195999826/LomoMarketplace-sub003/internal/ability"
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/world"
)

// NewWorld creates a world with test defaults.
func NewWorld(t *testing.T) *world.World {
	t.Helper()
	return world.New(world.Options{})
}

// AddCombatant registers an actor with the standard combat pools:
// hp/max_hp clamped, atk and mp unclamped.
func AddCombatant(t *testing.T, w *world.World, id string, hp, atk float64) *world.Actor {
	t.Helper()
	a, err := w.AddActor(id)
	if err != nil {
		t.Fatalf("adding actor %s: %v", id, err)
	}
	a.Attributes().DefineClamped(world.AttrHP, hp, 0, hp)
	a.Attributes().Define(world.AttrMaxHP, hp)
	a.Attributes().Define("atk", atk)
	a.Attributes().Define("mp", 100)
	return a
}

// BuffConfig builds a single-modifier buff ability config with an
// optional duration.
func BuffConfig(configID, attribute string, kind actor.ModifierKind, value float64, durationMs int64) *ability.Config {
	cfg := &ability.Config{
		ConfigID: configID,
		Tags:     []string{"buff"},
		Components: []func() ability.Component{
			func() ability.Component {
				return ability.NewAttributeModifierComponent(actor.Modifier{
					Attribute: attribute,
					Kind:      kind,
					Value:     value,
				})
			},
		},
	}
	if durationMs > 0 {
		cfg.Components = append(cfg.Components, func() ability.Component {
			return ability.NewDurationComponent(durationMs)
		})
	}
	return cfg
}
