package ability

import (
	"fmt"
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/timeline"
)

// Deps are the collaborators a set needs, injected by the host world.
// Callback injection keeps this package free of a world dependency.
type Deps struct {
	Attributes     *actor.AttributeSet
	Collector      *event.Collector
	Processor      *event.Processor
	State          action.GameplayState
	TimelineLookup func(id string) (*timeline.Timeline, bool)
}

// autoTag is one timer-owned tag entry. The timer is the sole owner of
// its lifetime: manual removal never touches these.
type autoTag struct {
	expireAt int64
}

// Set owns one actor's abilities and the authoritative tag ledger.
// Abilities tick in registration order; expired ones are swept after
// the tick pass.
type Set struct {
	owner     actor.Ref
	deps      Deps
	abilities []*Ability
	loose     map[string]int
	auto      map[string][]autoTag
	now       int64
	granted   int
}

// NewSet creates an empty ability set for one actor.
func NewSet(owner actor.Ref, deps Deps) *Set {
	return &Set{
		owner: owner,
		deps:  deps,
		loose: make(map[string]int),
		auto:  make(map[string][]autoTag),
	}
}

// Owner returns the owning actor's ref.
func (s *Set) Owner() actor.Ref { return s.owner }

// SeedClock aligns the set's clock with the host's. Called once at
// registration, before any grants or tags exist, so that an actor
// joining a world that has already ticked emits events at world time.
func (s *Set) SeedClock(nowMs int64) { s.now = nowMs }

// Now returns the set's logic clock in milliseconds, advanced by Tick.
func (s *Set) Now() int64 { return s.now }

// Grant registers an ability and fires OnApply on its components.
// Granting an already-expired ability is rejected as a silent no-op.
func (s *Set) Grant(a *Ability) bool {
	if a.Expired() {
		slog.Debug("grant rejected, ability already expired",
			"ability", a.ID(), "config", a.ConfigID())
		return false
	}
	s.abilities = append(s.abilities, a)
	a.attach(&setHost{set: s, ability: a})
	s.deps.Collector.Push(
		event.New(KindAbilityGranted, s.now).
			With("abilityId", a.ID()).
			With("configId", a.ConfigID()).
			With("owner", s.owner.ID).
			With("sourceActor", a.Source().ID))
	return true
}

// GrantConfig constructs an ability from a config with a
// set-generated id and grants it.
func (s *Set) GrantConfig(cfg *Config, source actor.Ref) *Ability {
	s.granted++
	id := fmt.Sprintf("%s-ab-%d", s.owner.ID, s.granted)
	a := New(id, cfg, s.owner, source)
	s.Grant(a)
	return a
}

// Revoke expires and removes the ability with the given id.
func (s *Set) Revoke(id, reason string) bool {
	a, ok := s.Get(id)
	if !ok {
		return false
	}
	a.Expire(reason)
	s.sweep()
	return true
}

// RevokeByTag expires and removes every ability carrying the config
// tag. Returns how many were revoked.
func (s *Set) RevokeByTag(tag, reason string) int {
	// snapshot: OnRemove hooks may grant back into this set, and a
	// fresh grant must survive the removal pass
	matched := make([]*Ability, 0, len(s.abilities))
	for _, a := range s.abilities {
		if a.HasTag(tag) && !a.Expired() {
			matched = append(matched, a)
		}
	}
	for _, a := range matched {
		a.Expire(reason)
	}
	s.sweep()
	return len(matched)
}

// Get returns the ability with the given id.
func (s *Set) Get(id string) (*Ability, bool) {
	for _, a := range s.abilities {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// Abilities returns the live ability list in registration order.
func (s *Set) Abilities() []*Ability {
	return s.abilities
}

// Tick advances the logic clock, expires due auto-duration tags, ticks
// every ability in registration order, then sweeps the expired ones.
func (s *Set) Tick(dtMs int64) {
	s.now += dtMs
	s.expireAutoTags()

	// snapshot: trigger actions may grant into this set mid-tick, and
	// fresh grants must not tick until the next pass
	current := make([]*Ability, len(s.abilities))
	copy(current, s.abilities)
	for _, a := range current {
		a.tick(dtMs)
	}

	s.sweep()
}

// HandleGameEvent implements event.Listener: post-phase events fan out
// to every active ability's interested components.
func (s *Set) HandleGameEvent(ev event.Event) {
	current := make([]*Ability, len(s.abilities))
	copy(current, s.abilities)
	for _, a := range current {
		a.dispatchEvent(ev)
	}
}

func (s *Set) sweep() {
	kept := s.abilities[:0]
	for _, a := range s.abilities {
		if !a.Expired() {
			kept = append(kept, a)
		}
	}
	s.abilities = kept
}

// --- tag ledger ---

// AddLooseTag increments a manually counted tag.
func (s *Set) AddLooseTag(name string, stacks int) {
	if stacks <= 0 {
		return
	}
	s.loose[name] += stacks
}

// RemoveLooseTag decrements a loose tag, never below zero. It does not
// touch auto-duration entries: those belong to their timer.
func (s *Set) RemoveLooseTag(name string, stacks int) {
	if stacks <= 0 {
		return
	}
	current, ok := s.loose[name]
	if !ok {
		return
	}
	current -= stacks
	if current <= 0 {
		delete(s.loose, name)
		return
	}
	s.loose[name] = current
}

// AddAutoDurationTag schedules a tag entry that force-expires at
// now+duration regardless of any manual removal attempt.
func (s *Set) AddAutoDurationTag(name string, durationMs int64) {
	if durationMs <= 0 {
		return
	}
	s.auto[name] = append(s.auto[name], autoTag{expireAt: s.now + durationMs})
}

func (s *Set) expireAutoTags() {
	for name, entries := range s.auto {
		kept := entries[:0]
		for _, e := range entries {
			if e.expireAt > s.now {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(s.auto, name)
		} else {
			s.auto[name] = kept
		}
	}
}

// HasTag reports presence across all three provenances: loose stacks,
// live auto-duration timers, and active components.
func (s *Set) HasTag(name string) bool {
	if s.loose[name] > 0 || len(s.auto[name]) > 0 {
		return true
	}
	for _, a := range s.abilities {
		for _, t := range a.providedTags() {
			if t == name {
				return true
			}
		}
	}
	return false
}

// TagStacks returns the combined stack count across provenances.
func (s *Set) TagStacks(name string) int {
	count := s.loose[name] + len(s.auto[name])
	for _, a := range s.abilities {
		for _, t := range a.providedTags() {
			if t == name {
				count++
			}
		}
	}
	return count
}

// --- Host implementation handed to component hooks ---

type setHost struct {
	set     *Set
	ability *Ability
}

func (h *setHost) OwnerRef() actor.Ref                  { return h.set.owner }
func (h *setHost) SourceRef() actor.Ref                 { return h.ability.Source() }
func (h *setHost) OwnerAttributes() *actor.AttributeSet { return h.set.deps.Attributes }
func (h *setHost) ModifierTarget() actor.ModifierTarget { return h.set.deps.Attributes }
func (h *setHost) LogicTime() int64                     { return h.set.now }

func (h *setHost) HasTag(name string) bool   { return h.set.HasTag(name) }
func (h *setHost) TagStacks(name string) int { return h.set.TagStacks(name) }
func (h *setHost) AddLooseTag(name string, stacks int) {
	h.set.AddLooseTag(name, stacks)
}
func (h *setHost) RemoveLooseTag(name string, stacks int) {
	h.set.RemoveLooseTag(name, stacks)
}
func (h *setHost) AddAutoDurationTag(name string, durationMs int64) {
	h.set.AddAutoDurationTag(name, durationMs)
}

func (h *setHost) Timeline(id string) (*timeline.Timeline, bool) {
	if h.set.deps.TimelineLookup == nil {
		return nil, false
	}
	return h.set.deps.TimelineLookup(id)
}

func (h *setHost) NewExecutionContext(chain ...event.Event) *action.ExecutionContext {
	return &action.ExecutionContext{
		EventChain: chain,
		State:      h.set.deps.State,
		Collector:  h.set.deps.Collector,
		Processor:  h.set.deps.Processor,
		AbilityID:  h.ability.ID(),
		Owner:      h.set.owner,
		Source:     h.ability.Source(),
	}
}

func (h *setHost) Collector() *event.Collector { return h.set.deps.Collector }
func (h *setHost) Processor() *event.Processor { return h.set.deps.Processor }
