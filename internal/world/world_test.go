package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/15195999826/LomoMarketplace-sub003/internal/ability"
	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/testutil"
	"github.com/15195999826/LomoMarketplace-sub003/internal/world"
)

func TestAddActorRejectsDuplicates(t *testing.T) {
	w := testutil.NewWorld(t)
	_, err := w.AddActor("hero")
	require.NoError(t, err)
	_, err = w.AddActor("hero")
	assert.Error(t, err)
}

func TestTickAdvancesClockAndFlushes(t *testing.T) {
	w := testutil.NewWorld(t)
	testutil.AddCombatant(t, w, "hero", 100, 10)

	assert.Equal(t, int64(0), w.LogicTime())
	events := w.Tick(100)
	assert.Equal(t, int64(100), w.LogicTime())
	assert.Empty(t, events)

	w.Collector().Push(event.New("marker", w.LogicTime()))
	events = w.Tick(100)
	require.Len(t, events, 1)
	assert.Equal(t, "marker", events[0].Kind)
	assert.Empty(t, w.Tick(100), "flush drained the buffer")
}

func TestDamageCommitsToHPPool(t *testing.T) {
	w := testutil.NewWorld(t)
	testutil.AddCombatant(t, w, "hero", 100, 10)
	testutil.AddCombatant(t, w, "orc", 60, 8)

	w.Processor().Process(event.New(action.KindDamage, w.LogicTime()).
		With("source", "hero").
		With("target", "orc").
		With("amount", 25.0))

	orc, _ := w.Actor("orc")
	hp, _ := orc.Attributes().Base(world.AttrHP)
	assert.Equal(t, 35.0, hp)
	assert.True(t, orc.Alive())
}

func TestLethalDamageDefeatsActor(t *testing.T) {
	w := testutil.NewWorld(t)
	testutil.AddCombatant(t, w, "hero", 100, 10)
	testutil.AddCombatant(t, w, "orc", 30, 8)

	w.Processor().Process(event.New(action.KindDamage, w.LogicTime()).
		With("target", "orc").
		With("amount", 50.0))

	orc, _ := w.Actor("orc")
	hp, _ := orc.Attributes().Base(world.AttrHP)
	assert.Equal(t, 0.0, hp, "hp floors at zero, never negative")
	assert.False(t, orc.Alive())
	assert.Equal(t, []actor.Ref{{ID: "hero"}}, w.AliveActors())

	var defeated int
	for _, ev := range w.Tick(100) {
		if ev.Kind == world.KindActorDefeated {
			defeated++
		}
	}
	assert.Equal(t, 1, defeated)

	// a corpse takes no further defeat events
	w.Processor().Process(event.New(action.KindDamage, w.LogicTime()).
		With("target", "orc").
		With("amount", 10.0))
	for _, ev := range w.Tick(100) {
		assert.NotEqual(t, world.KindActorDefeated, ev.Kind)
	}
}

func TestHealCapsAtMaxHP(t *testing.T) {
	w := testutil.NewWorld(t)
	testutil.AddCombatant(t, w, "hero", 100, 10)

	w.Processor().Process(event.New(action.KindDamage, w.LogicTime()).
		With("target", "hero").
		With("amount", 30.0))
	w.Processor().Process(event.New(action.KindHeal, w.LogicTime()).
		With("target", "hero").
		With("amount", 999.0))

	hero, _ := w.Actor("hero")
	hp, _ := hero.Attributes().Base(world.AttrHP)
	assert.Equal(t, 100.0, hp)
}

func TestGrantAbilityByConfig(t *testing.T) {
	w := testutil.NewWorld(t)
	hero := testutil.AddCombatant(t, w, "hero", 100, 50)
	require.NoError(t, w.RegisterAbilityConfig(
		testutil.BuffConfig("might", "atk", actor.ModAddBase, 20, 0)))

	err := w.GrantAbilityByConfig(actor.Ref{ID: "hero"}, actor.Ref{ID: "hero"}, "might")
	require.NoError(t, err)
	atk, _ := hero.Attributes().CurrentValue("atk")
	assert.Equal(t, 70.0, atk)

	assert.Error(t, w.GrantAbilityByConfig(actor.Ref{ID: "hero"}, actor.Ref{}, "unknown"))
	assert.Error(t, w.GrantAbilityByConfig(actor.Ref{ID: "ghost"}, actor.Ref{}, "might"))
}

func TestLateJoinerEventsCarryWorldClock(t *testing.T) {
	w := testutil.NewWorld(t)
	w.Tick(100)
	w.Tick(200)

	hero := testutil.AddCombatant(t, w, "hero", 100, 50)
	require.NoError(t, w.RegisterAbilityConfig(
		testutil.BuffConfig("might", "atk", actor.ModAddBase, 20, 0)))
	require.NoError(t, w.GrantAbilityByConfig(hero.Ref(), hero.Ref(), "might"))

	var granted []event.Event
	for _, ev := range w.Tick(100) {
		if ev.Kind == ability.KindAbilityGranted {
			granted = append(granted, ev)
		}
	}
	require.Len(t, granted, 1)
	assert.Equal(t, int64(300), granted[0].LogicTime,
		"actor added after ticks grants at world time, not zero")
}

func TestTimedBuffExpiresThroughTicks(t *testing.T) {
	w := testutil.NewWorld(t)
	hero := testutil.AddCombatant(t, w, "hero", 100, 50)
	require.NoError(t, w.RegisterAbilityConfig(
		testutil.BuffConfig("haste", "atk", actor.ModMulBase, 0.5, 300)))
	require.NoError(t, w.GrantAbilityByConfig(hero.Ref(), hero.Ref(), "haste"))

	atk, _ := hero.Attributes().CurrentValue("atk")
	assert.Equal(t, 75.0, atk)

	w.Tick(100)
	w.Tick(100)
	atk, _ = hero.Attributes().CurrentValue("atk")
	assert.Equal(t, 75.0, atk)

	events := w.Tick(100)
	atk, _ = hero.Attributes().CurrentValue("atk")
	assert.Equal(t, 50.0, atk, "duration elapsed, modifier gone")

	var sawExpired bool
	for _, ev := range events {
		if ev.Kind == ability.KindAbilityExpired {
			sawExpired = true
		}
	}
	assert.True(t, sawExpired)
}

// fireballConfig is a cast-on-event ability: a trigger that costs mana,
// re-arms a cooldown tag and deals attribute-scaled damage.
func fireballConfig(cooldownMs int64) *ability.Config {
	return &ability.Config{
		ConfigID: "fireball",
		Tags:     []string{"spell"},
		Components: []func() ability.Component{
			func() ability.Component {
				c := ability.NewTriggerComponent("cast_fireball", &action.DamageAction{
					Amount:  action.AttributeParam(action.SelectOwner(), "atk", 2.0),
					Element: "fire",
					Targets: action.SelectEventActor("target"),
				})
				c.Costs = []ability.Cost{&ability.AttributeCost{Attribute: "mp", Amount: 20}}
				c.CooldownTag = "fireball_cd"
				c.CooldownMs = cooldownMs
				return c
			},
		},
	}
}

func TestAbilityCooldownCycle(t *testing.T) {
	w := testutil.NewWorld(t)
	hero := testutil.AddCombatant(t, w, "hero", 100, 30)
	testutil.AddCombatant(t, w, "orc", 500, 10)
	require.NoError(t, w.RegisterAbilityConfig(fireballConfig(1000)))
	require.NoError(t, w.GrantAbilityByConfig(hero.Ref(), hero.Ref(), "fireball"))

	cast := func() {
		w.Processor().Process(event.New("cast_fireball", w.LogicTime()).
			With("target", "orc"))
	}
	orcHP := func() float64 {
		orc, _ := w.Actor("orc")
		hp, _ := orc.Attributes().Base(world.AttrHP)
		return hp
	}

	cast()
	assert.Equal(t, 440.0, orcHP(), "2.0 x atk 30 = 60 damage")
	assert.True(t, hero.Abilities().HasTag("fireball_cd"))

	// on cooldown: the second cast is gated, nothing happens
	cast()
	assert.Equal(t, 440.0, orcHP())

	w.Tick(500)
	assert.True(t, hero.Abilities().HasTag("fireball_cd"))
	w.Tick(500)
	assert.False(t, hero.Abilities().HasTag("fireball_cd"))

	cast()
	assert.Equal(t, 380.0, orcHP())
	mp, _ := hero.Attributes().Base("mp")
	assert.Equal(t, 60.0, mp, "two casts paid 20 mana each")
}

// thornsConfig reflects a flat 5 damage back at whoever damages the
// owner. Exercises a reactive post-phase chain inside one Process call.
func thornsConfig() *ability.Config {
	return &ability.Config{
		ConfigID: "thorns",
		Components: []func() ability.Component{
			func() ability.Component {
				c := ability.NewTriggerComponent(action.KindDamage, &action.DamageAction{
					Amount:  action.Literal(5.0),
					Targets: action.SelectEventActor("source"),
				})
				c.OwnerField = "target"
				return c
			},
		},
	}
}

func TestReactiveDamageChain(t *testing.T) {
	w := testutil.NewWorld(t)
	hero := testutil.AddCombatant(t, w, "hero", 100, 10)
	orc := testutil.AddCombatant(t, w, "orc", 100, 10)
	require.NoError(t, w.RegisterAbilityConfig(thornsConfig()))

	// only the orc wears thorns, so the chain terminates after one hop
	require.NoError(t, w.GrantAbilityByConfig(orc.Ref(), orc.Ref(), "thorns"))
	w.Tick(100)

	w.Processor().Process(event.New(action.KindDamage, w.LogicTime()).
		With("source", "hero").
		With("target", "orc").
		With("amount", 20.0))

	orcHP, _ := orc.Attributes().Base(world.AttrHP)
	heroHP, _ := hero.Attributes().Base(world.AttrHP)
	assert.Equal(t, 80.0, orcHP)
	assert.Equal(t, 95.0, heroHP, "thorns reflected inside the same pipeline call")
}

func TestMutualThornsHitDepthGuard(t *testing.T) {
	w := world.New(world.Options{MaxEventDepth: 6})
	hero := testutil.AddCombatant(t, w, "hero", 1000, 10)
	orc := testutil.AddCombatant(t, w, "orc", 1000, 10)
	require.NoError(t, w.RegisterAbilityConfig(thornsConfig()))
	require.NoError(t, w.GrantAbilityByConfig(hero.Ref(), hero.Ref(), "thorns"))
	require.NoError(t, w.GrantAbilityByConfig(orc.Ref(), orc.Ref(), "thorns"))
	w.Tick(100)

	w.Processor().Process(event.New(action.KindDamage, w.LogicTime()).
		With("source", "hero").
		With("target", "orc").
		With("amount", 5.0))

	var markers int
	for _, ev := range w.Tick(100) {
		if ev.Kind == event.KindDepthExceeded {
			markers++
		}
	}
	assert.Equal(t, 1, markers, "runaway reflection cut off with a marker fact")
	assert.True(t, hero.Alive())
	assert.True(t, orc.Alive())
}
