package ability

import (
	"fmt"
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
)

// AttributeModifierComponent installs a fixed set of modifiers on
// grant and removes them by source on revoke. The source id is the
// owning ability's id, which makes removal exactly-once and immune to
// interleaving with other grants.
type AttributeModifierComponent struct {
	baseComponent
	Modifiers []actor.Modifier
}

func NewAttributeModifierComponent(mods ...actor.Modifier) *AttributeModifierComponent {
	return &AttributeModifierComponent{Modifiers: mods}
}

func (c *AttributeModifierComponent) Name() string { return "AttributeModifier" }

func (c *AttributeModifierComponent) OnApply(h Host) {
	target := h.ModifierTarget()
	for i, m := range c.Modifiers {
		m.Source = c.ability.ID()
		if m.ID == "" {
			m.ID = fmt.Sprintf("%s-mod-%d", c.ability.ID(), i)
		}
		if err := target.AddModifier(m); err != nil {
			// undefined attribute is a content/config contract break;
			// the grant keeps going but the violation is loud
			slog.Error("attribute modifier rejected",
				"ability", c.ability.ID(), "modifier", m.ID,
				"attribute", m.Attribute, "err", err)
		}
	}
}

func (c *AttributeModifierComponent) OnRemove(h Host) {
	removed := h.ModifierTarget().RemoveModifiersBySource(c.ability.ID())
	slog.Debug("attribute modifiers removed",
		"ability", c.ability.ID(), "count", removed)
}
