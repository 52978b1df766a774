package ability

import (
	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/timeline"
)

// Component is a pluggable behavior unit attached to an Ability.
// Behavior is composed, not inherited: an ability is just the set of
// components it holds. Beyond the base interface, components opt into
// lifecycle capabilities by implementing the narrow interfaces below.
type Component interface {
	Name() string
	Expired() bool
}

// Initializer runs once at ability construction, before any grant.
type Initializer interface {
	Initialize(a *Ability)
}

// ApplyHandler runs when the AbilitySet grants the ability.
type ApplyHandler interface {
	OnApply(h Host)
}

// RemoveHandler runs exactly once when the ability is revoked or
// self-expires, or when the component itself expires and is swept.
type RemoveHandler interface {
	OnRemove(h Host)
}

// Ticker advances component time once per set tick.
type Ticker interface {
	OnTick(h Host, dtMs int64)
}

// EventHandler receives finalized events from the post phase.
type EventHandler interface {
	OnEvent(h Host, ev event.Event)
}

// TagProvider contributes component-provenance tags to the owning
// actor's ledger for as long as the component is active.
type TagProvider interface {
	ProvidedTags() []string
}

// Host is the narrow view of the owning AbilitySet handed to component
// hooks. It is the only way a component reaches actor state, and the
// modifier target it exposes is the single sanctioned write path for
// attribute modifiers.
type Host interface {
	OwnerRef() actor.Ref
	SourceRef() actor.Ref
	OwnerAttributes() *actor.AttributeSet
	ModifierTarget() actor.ModifierTarget
	LogicTime() int64

	HasTag(name string) bool
	TagStacks(name string) int
	AddLooseTag(name string, stacks int)
	RemoveLooseTag(name string, stacks int)
	AddAutoDurationTag(name string, durationMs int64)

	Timeline(id string) (*timeline.Timeline, bool)
	NewExecutionContext(chain ...event.Event) *action.ExecutionContext
	Collector() *event.Collector
	Processor() *event.Processor
}

// baseComponent carries the shared component plumbing: the back
// reference to the owning ability and the expired flag.
type baseComponent struct {
	ability *Ability
	expired bool
}

func (c *baseComponent) Initialize(a *Ability) {
	c.ability = a
}

func (c *baseComponent) Expired() bool {
	return c.expired
}

// expireSelf marks the component expired; the owning ability sweeps it
// on the next tick.
func (c *baseComponent) expireSelf() {
	c.expired = true
}

// expireAbility ends the whole ability from inside a component hook.
func (c *baseComponent) expireAbility(reason string) {
	if c.ability != nil {
		c.ability.Expire(reason)
	}
}
