package ability

import (
	"fmt"

	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/timeline"
)

// testEnv wires one Set with real pipeline pieces and a minimal
// gameplay-state fake, enough to run full component lifecycles.
type testEnv struct {
	attrs     *actor.AttributeSet
	collector *event.Collector
	processor *event.Processor
	set       *Set
	state     *fakeState
	timelines map[string]*timeline.Timeline
}

func newTestEnv(ownerID string) *testEnv {
	env := &testEnv{
		attrs:     actor.NewAttributeSet(),
		collector: event.NewCollector(),
		timelines: make(map[string]*timeline.Timeline),
	}
	env.processor = event.NewProcessor(env.collector, 0)
	env.state = &fakeState{env: env}

	owner := actor.Ref{ID: ownerID}
	env.set = NewSet(owner, Deps{
		Attributes: env.attrs,
		Collector:  env.collector,
		Processor:  env.processor,
		State:      env.state,
		TimelineLookup: func(id string) (*timeline.Timeline, bool) {
			tl, ok := env.timelines[id]
			return tl, ok
		},
	})
	env.processor.Subscribe(env.set)
	return env
}

func (e *testEnv) grant(cfg *Config) *Ability {
	return e.set.GrantConfig(cfg, e.set.Owner())
}

type fakeState struct {
	env    *testEnv
	others []actor.Ref
}

func (f *fakeState) AliveActors() []actor.Ref {
	return append([]actor.Ref{f.env.set.Owner()}, f.others...)
}

func (f *fakeState) ActorAttributes(id string) (*actor.AttributeSet, bool) {
	if id == f.env.set.Owner().ID {
		return f.env.attrs, true
	}
	return nil, false
}

func (f *fakeState) LogicTime() int64 { return f.env.set.Now() }

func (f *fakeState) GrantAbilityByConfig(target actor.Ref, source actor.Ref, configID string) error {
	return fmt.Errorf("fake state cannot grant %s", configID)
}

func (f *fakeState) AddLooseTag(target actor.Ref, name string, stacks int) error {
	f.env.set.AddLooseTag(name, stacks)
	return nil
}

func (f *fakeState) RemoveLooseTag(target actor.Ref, name string, stacks int) error {
	f.env.set.RemoveLooseTag(name, stacks)
	return nil
}

func (f *fakeState) AddAutoDurationTag(target actor.Ref, name string, durationMs int64) error {
	f.env.set.AddAutoDurationTag(name, durationMs)
	return nil
}

// recordComponent observes its own lifecycle for assertions.
type recordComponent struct {
	baseComponent
	applied  int
	removed  int
	ticks    []int64
	events   []event.Event
	tags     []string
	expireAt int64 // self-expire once elapsed ticks reach this, 0 = never
	elapsed  int64
}

func (c *recordComponent) Name() string { return "Record" }

func (c *recordComponent) OnApply(Host)  { c.applied++ }
func (c *recordComponent) OnRemove(Host) { c.removed++ }

func (c *recordComponent) OnTick(_ Host, dtMs int64) {
	c.ticks = append(c.ticks, dtMs)
	c.elapsed += dtMs
	if c.expireAt > 0 && c.elapsed >= c.expireAt {
		c.expireSelf()
	}
}

func (c *recordComponent) OnEvent(_ Host, ev event.Event) {
	c.events = append(c.events, ev)
}

func (c *recordComponent) ProvidedTags() []string { return c.tags }

func configWith(id string, comps ...func() Component) *Config {
	return &Config{ConfigID: id, Components: comps}
}
