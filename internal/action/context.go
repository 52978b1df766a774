package action

import (
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// GameplayState is the host-side facade visible to actions and
// selectors. It is the only path from an executing action back into
// the simulation; actions never hold live actor objects.
type GameplayState interface {
	AliveActors() []actor.Ref
	ActorAttributes(id string) (*actor.AttributeSet, bool)
	LogicTime() int64

	// Mutating entry points routed through the host so the host keeps
	// ownership of grant and tag bookkeeping.
	GrantAbilityByConfig(target actor.Ref, source actor.Ref, configID string) error
	AddLooseTag(target actor.Ref, name string, stacks int) error
	RemoveLooseTag(target actor.Ref, name string, stacks int) error
	AddAutoDurationTag(target actor.Ref, name string, durationMs int64) error
}

// ExecutionInfo describes the timeline position an action fires from.
type ExecutionInfo struct {
	ID         string
	TimelineID string
	Elapsed    int64
	CurrentTag string
}

// ExecutionContext is the bundle of state an Action sees while
// executing. EventChain models causality: the first element is the
// original trigger, the last is the current event.
type ExecutionContext struct {
	EventChain []event.Event
	State      GameplayState
	Collector  *event.Collector
	Processor  *event.Processor

	// Owning ability, when the action fires from a component.
	AbilityID string
	Owner     actor.Ref
	Source    actor.Ref

	// Set when the action fires from a timeline tag.
	Execution *ExecutionInfo
}

// CurrentEvent returns the most recent event in the causal chain.
func (c *ExecutionContext) CurrentEvent() (event.Event, bool) {
	if len(c.EventChain) == 0 {
		return event.Event{}, false
	}
	return c.EventChain[len(c.EventChain)-1], true
}

// OriginalEvent returns the event that started the causal chain.
func (c *ExecutionContext) OriginalEvent() (event.Event, bool) {
	if len(c.EventChain) == 0 {
		return event.Event{}, false
	}
	return c.EventChain[0], true
}

// WithEvent returns a child context whose chain is extended by ev.
// The parent's chain is never aliased, so sibling executions cannot
// see each other's appends.
func (c *ExecutionContext) WithEvent(ev event.Event) *ExecutionContext {
	child := *c
	chain := make([]event.Event, len(c.EventChain), len(c.EventChain)+1)
	copy(chain, c.EventChain)
	child.EventChain = append(chain, ev)
	return &child
}

// WithExecution returns a child context positioned at a timeline tag.
func (c *ExecutionContext) WithExecution(info ExecutionInfo) *ExecutionContext {
	child := *c
	child.Execution = &info
	return &child
}
