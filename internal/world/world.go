package world

import (
	"fmt"
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/ability"
	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/timeline"
)

// KindActorDefeated is emitted when a committed damage event drops an
// actor's hp pool to zero.
const KindActorDefeated = "actor_defeated"

// Attribute names the world's commit listener understands. Hosts that
// model hp differently wire their own listener instead.
const (
	AttrHP    = "hp"
	AttrMaxHP = "max_hp"
)

// Options configures a world.
type Options struct {
	// MaxEventDepth bounds reactive recursion in the event pipeline.
	// Zero selects event.DefaultMaxDepth.
	MaxEventDepth int
}

// Actor bundles one simulated entity: identity, attributes, abilities.
type Actor struct {
	ref       actor.Ref
	attrs     *actor.AttributeSet
	abilities *ability.Set
	alive     bool
}

func (a *Actor) Ref() actor.Ref                  { return a.ref }
func (a *Actor) Attributes() *actor.AttributeSet { return a.attrs }
func (a *Actor) Abilities() *ability.Set         { return a.abilities }
func (a *Actor) Alive() bool                     { return a.alive }

// World is the explicitly threaded simulation handle: actor registry,
// logic clock, event pipeline and asset registries. A single goroutine
// drives it; single-threaded ticking is the entire concurrency model,
// chosen so the same inputs always replay to the same event stream.
type World struct {
	collector *event.Collector
	processor *event.Processor
	actors    map[string]*Actor
	order     []string
	logicTime int64
	timelines map[string]*timeline.Timeline
	configs   map[string]*ability.Config
}

// New creates an empty world. The hp commit listener subscribes first,
// so damage and heal facts hit the pools before any reactive component
// observes them.
func New(opts Options) *World {
	collector := event.NewCollector()
	w := &World{
		collector: collector,
		processor: event.NewProcessor(collector, opts.MaxEventDepth),
		actors:    make(map[string]*Actor),
		timelines: make(map[string]*timeline.Timeline),
		configs:   make(map[string]*ability.Config),
	}
	w.processor.Subscribe(&commitListener{world: w})
	return w
}

// Collector exposes the event buffer. The host flushes once per tick,
// normally through Tick's return value.
func (w *World) Collector() *event.Collector { return w.collector }

// Processor exposes the pre/post pipeline for host-injected events and
// handlers.
func (w *World) Processor() *event.Processor { return w.processor }

// RegisterTimeline validates and registers a timeline asset.
func (w *World) RegisterTimeline(tl *timeline.Timeline) error {
	if err := tl.Validate(); err != nil {
		return err
	}
	w.timelines[tl.ID] = tl
	return nil
}

// RegisterAbilityConfig registers a grantable ability definition.
func (w *World) RegisterAbilityConfig(cfg *ability.Config) error {
	if cfg.ConfigID == "" {
		return fmt.Errorf("ability config missing config id")
	}
	w.configs[cfg.ConfigID] = cfg
	return nil
}

// AbilityConfig looks up a registered definition.
func (w *World) AbilityConfig(id string) (*ability.Config, bool) {
	cfg, ok := w.configs[id]
	return cfg, ok
}

// AddActor registers an actor with an empty attribute set. Actors tick
// in registration order.
func (w *World) AddActor(id string) (*Actor, error) {
	if _, exists := w.actors[id]; exists {
		return nil, fmt.Errorf("actor %q already registered", id)
	}
	ref := actor.Ref{ID: id}
	attrs := actor.NewAttributeSet()
	a := &Actor{ref: ref, attrs: attrs, alive: true}
	a.abilities = ability.NewSet(ref, ability.Deps{
		Attributes:     attrs,
		Collector:      w.collector,
		Processor:      w.processor,
		State:          w,
		TimelineLookup: w.timelineByID,
	})
	a.abilities.SeedClock(w.logicTime)
	w.processor.Subscribe(a.abilities)
	w.actors[id] = a
	w.order = append(w.order, id)
	return a, nil
}

// Actor looks up a registered actor.
func (w *World) Actor(id string) (*Actor, bool) {
	a, ok := w.actors[id]
	return a, ok
}

// Tick advances the world by dtMs: every actor's ability set ticks in
// registration order, then the event buffer is flushed and returned.
// That flush is the sole handoff to presentation and replay consumers.
func (w *World) Tick(dtMs int64) []event.Event {
	w.logicTime += dtMs
	for _, id := range w.order {
		w.actors[id].abilities.Tick(dtMs)
	}
	return w.collector.Flush()
}

func (w *World) timelineByID(id string) (*timeline.Timeline, bool) {
	tl, ok := w.timelines[id]
	return tl, ok
}

// --- action.GameplayState implementation ---

// AliveActors returns the refs of living actors in registration order.
func (w *World) AliveActors() []actor.Ref {
	out := make([]actor.Ref, 0, len(w.order))
	for _, id := range w.order {
		if a := w.actors[id]; a.alive {
			out = append(out, a.ref)
		}
	}
	return out
}

// ActorAttributes returns the attribute set of a registered actor.
func (w *World) ActorAttributes(id string) (*actor.AttributeSet, bool) {
	a, ok := w.actors[id]
	if !ok {
		return nil, false
	}
	return a.attrs, true
}

// LogicTime returns the world clock in milliseconds.
func (w *World) LogicTime() int64 { return w.logicTime }

// GrantAbilityByConfig grants a registered config to the target actor.
func (w *World) GrantAbilityByConfig(target actor.Ref, source actor.Ref, configID string) error {
	cfg, ok := w.configs[configID]
	if !ok {
		return fmt.Errorf("ability config %q not registered", configID)
	}
	a, ok := w.actors[target.ID]
	if !ok {
		return fmt.Errorf("actor %q not registered", target.ID)
	}
	a.abilities.GrantConfig(cfg, source)
	return nil
}

// AddLooseTag adds loose tag stacks on the target's ledger.
func (w *World) AddLooseTag(target actor.Ref, name string, stacks int) error {
	a, ok := w.actors[target.ID]
	if !ok {
		return fmt.Errorf("actor %q not registered", target.ID)
	}
	a.abilities.AddLooseTag(name, stacks)
	return nil
}

// RemoveLooseTag removes loose tag stacks from the target's ledger.
func (w *World) RemoveLooseTag(target actor.Ref, name string, stacks int) error {
	a, ok := w.actors[target.ID]
	if !ok {
		return fmt.Errorf("actor %q not registered", target.ID)
	}
	a.abilities.RemoveLooseTag(name, stacks)
	return nil
}

// AddAutoDurationTag adds a timer-owned tag on the target's ledger.
func (w *World) AddAutoDurationTag(target actor.Ref, name string, durationMs int64) error {
	a, ok := w.actors[target.ID]
	if !ok {
		return fmt.Errorf("actor %q not registered", target.ID)
	}
	a.abilities.AddAutoDurationTag(name, durationMs)
	return nil
}

// --- hp pool commit ---

// commitListener turns finalized damage and heal facts into hp base
// transitions. Finalized events are immutable: the listener never
// retracts one, it only applies it and possibly emits the defeat fact.
type commitListener struct {
	world *World
}

func (l *commitListener) HandleGameEvent(ev event.Event) {
	switch ev.Kind {
	case action.KindDamage:
		l.apply(ev, -1)
	case action.KindHeal:
		l.apply(ev, +1)
	}
}

func (l *commitListener) apply(ev event.Event, sign float64) {
	targetID, ok := ev.Str("target")
	if !ok {
		return
	}
	target, ok := l.world.actors[targetID]
	if !ok || !target.attrs.Has(AttrHP) {
		return
	}
	amount, ok := ev.Float("amount")
	if !ok {
		return
	}

	base, _ := target.attrs.Base(AttrHP)
	next := base + sign*amount
	if next < 0 {
		next = 0
	}
	if target.attrs.Has(AttrMaxHP) {
		if maxHP, err := target.attrs.CurrentValue(AttrMaxHP); err == nil && next > maxHP {
			next = maxHP
		}
	}
	if err := target.attrs.SetBase(AttrHP, next); err != nil {
		slog.Error("hp commit failed", "target", targetID, "err", err)
		return
	}

	if next <= 0 && target.alive {
		target.alive = false
		l.world.collector.Push(
			event.New(KindActorDefeated, l.world.logicTime).
				With("target", targetID))
	}
}
