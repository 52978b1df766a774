package ability

import (
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// Event kinds emitted by the ability lifecycle itself. These are plain
// facts and bypass the pre phase.
const (
	KindAbilityGranted = "ability_granted"
	KindAbilityExpired = "ability_expired"
)

// State is the ability lifecycle:
// constructed → granted (active) → expired (terminal).
type State int8

const (
	StateActive State = iota
	StateExpired
)

func (s State) String() string {
	if s == StateExpired {
		return "expired"
	}
	return "active"
}

// Config is the grantable definition of an ability. Components are
// factories, not instances, so one config can be granted to any number
// of actors independently.
type Config struct {
	ConfigID    string
	DisplayName string
	Tags        []string
	Components  []func() Component
}

// Ability is a named bundle of components with tags and an expiry
// state. Composition is static: components are constructed exactly
// once, at ability construction, and initialized immediately.
type Ability struct {
	id           string
	cfg          *Config
	owner        actor.Ref
	source       actor.Ref
	tags         map[string]struct{}
	state        State
	expireReason string
	components   []Component
	host         Host // set at grant time
}

// New constructs an ability from a config. All component factories run
// here and every Initializer fires immediately; OnApply waits until an
// AbilitySet grants the ability.
func New(id string, cfg *Config, owner, source actor.Ref) *Ability {
	a := &Ability{
		id:     id,
		cfg:    cfg,
		owner:  owner,
		source: source,
		tags:   make(map[string]struct{}, len(cfg.Tags)),
	}
	for _, t := range cfg.Tags {
		a.tags[t] = struct{}{}
	}
	a.components = make([]Component, 0, len(cfg.Components))
	for _, factory := range cfg.Components {
		c := factory()
		if init, ok := c.(Initializer); ok {
			init.Initialize(a)
		}
		a.components = append(a.components, c)
	}
	return a
}

func (a *Ability) ID() string           { return a.id }
func (a *Ability) ConfigID() string     { return a.cfg.ConfigID }
func (a *Ability) DisplayName() string  { return a.cfg.DisplayName }
func (a *Ability) Owner() actor.Ref     { return a.owner }
func (a *Ability) Source() actor.Ref    { return a.source }
func (a *Ability) State() State         { return a.state }
func (a *Ability) Expired() bool        { return a.state == StateExpired }
func (a *Ability) ExpireReason() string { return a.expireReason }

// HasTag reports whether the config carries the classification tag.
// This is separate from the actor-level tag ledger.
func (a *Ability) HasTag(tag string) bool {
	_, ok := a.tags[tag]
	return ok
}

// Components returns the live component list.
func (a *Ability) Components() []Component {
	return a.components
}

// Expire ends the ability. Idempotent: only the first call's reason is
// retained and OnRemove fires at most once per component. After expiry
// the ability is structurally dead; its components must not be reused.
func (a *Ability) Expire(reason string) {
	if a.state == StateExpired {
		return
	}
	a.state = StateExpired
	a.expireReason = reason

	if a.host != nil {
		// every component still in the list has a pending OnRemove;
		// sweeps remove components only after firing theirs
		for _, c := range a.components {
			if rh, ok := c.(RemoveHandler); ok {
				rh.OnRemove(a.host)
			}
		}
		a.host.Collector().Push(
			event.New(KindAbilityExpired, a.host.LogicTime()).
				With("abilityId", a.id).
				With("configId", a.cfg.ConfigID).
				With("owner", a.owner.ID).
				With("reason", reason))
	}
	slog.Debug("ability expired", "ability", a.id, "config", a.cfg.ConfigID, "reason", reason)
}

// attach binds the set-provided host and fires OnApply. Called only by
// AbilitySet.Grant.
func (a *Ability) attach(h Host) {
	a.host = h
	for _, c := range a.components {
		if ah, ok := c.(ApplyHandler); ok {
			ah.OnApply(h)
		}
	}
}

// tick advances active components and then sweeps expired ones,
// firing their OnRemove as they leave.
func (a *Ability) tick(dtMs int64) {
	if a.state == StateExpired {
		return
	}
	for _, c := range a.components {
		if c.Expired() {
			continue
		}
		if t, ok := c.(Ticker); ok {
			t.OnTick(a.host, dtMs)
		}
		if a.state == StateExpired {
			return
		}
	}
	a.sweepComponents()
}

// dispatchEvent feeds one finalized event to interested components.
func (a *Ability) dispatchEvent(ev event.Event) {
	if a.state == StateExpired {
		return
	}
	for _, c := range a.components {
		if c.Expired() {
			continue
		}
		if eh, ok := c.(EventHandler); ok {
			eh.OnEvent(a.host, ev)
		}
		if a.state == StateExpired {
			return
		}
	}
}

// sweepComponents drops expired components, running their OnRemove
// exactly once on the way out.
func (a *Ability) sweepComponents() {
	kept := a.components[:0]
	for _, c := range a.components {
		if !c.Expired() {
			kept = append(kept, c)
			continue
		}
		if rh, ok := c.(RemoveHandler); ok && a.host != nil {
			rh.OnRemove(a.host)
		}
	}
	a.components = kept
}

// providedTags collects component-provenance tags from active
// components.
func (a *Ability) providedTags() []string {
	if a.state == StateExpired {
		return nil
	}
	var out []string
	for _, c := range a.components {
		if c.Expired() {
			continue
		}
		if tp, ok := c.(TagProvider); ok {
			out = append(out, tp.ProvidedTags()...)
		}
	}
	return out
}
