package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
)

func TestNew_ComponentsConstructedAndInitialized(t *testing.T) {
	var built int
	cfg := configWith("test", func() Component {
		built++
		return &recordComponent{}
	})

	a := New("ab-1", cfg, actor.Ref{ID: "o"}, actor.Ref{ID: "s"})
	assert.Equal(t, 1, built)
	require.Len(t, a.Components(), 1)

	rc := a.Components()[0].(*recordComponent)
	assert.Same(t, a, rc.ability, "Initialize must bind the ability")
	assert.Equal(t, 0, rc.applied, "OnApply waits for a grant")
	assert.Equal(t, StateActive, a.State())
}

func TestExpire_IdempotentKeepsFirstReason(t *testing.T) {
	env := newTestEnv("o")
	rc := &recordComponent{}
	a := env.grant(configWith("test", func() Component { return rc }))

	a.Expire("first")
	a.Expire("second")

	assert.Equal(t, StateExpired, a.State())
	assert.Equal(t, "first", a.ExpireReason())
	assert.Equal(t, 1, rc.removed, "OnRemove fires exactly once")
}

func TestExpire_BeforeGrantIsSafe(t *testing.T) {
	cfg := configWith("test", func() Component { return &recordComponent{} })
	a := New("ab-1", cfg, actor.Ref{ID: "o"}, actor.Ref{ID: "s"})

	a.Expire("never granted")
	assert.True(t, a.Expired())
	rc := a.Components()[0].(*recordComponent)
	assert.Equal(t, 0, rc.removed, "no host, no OnRemove")
}

func TestExpiredComponentSweptOnNextTick(t *testing.T) {
	env := newTestEnv("o")
	rc := &recordComponent{expireAt: 100}
	a := env.grant(configWith("test", func() Component { return rc }))

	env.set.Tick(100)
	assert.Equal(t, 1, rc.removed, "sweep runs OnRemove")
	assert.Empty(t, a.Components())
	assert.False(t, a.Expired(), "component expiry alone does not end the ability")

	env.set.Tick(100)
	assert.Len(t, rc.ticks, 1, "swept component no longer ticks")
}

func TestConfigTagsAndHasTag(t *testing.T) {
	cfg := &Config{ConfigID: "c", Tags: []string{"buff", "fire"}}
	a := New("ab-1", cfg, actor.Ref{ID: "o"}, actor.Ref{ID: "o"})
	assert.True(t, a.HasTag("buff"))
	assert.False(t, a.HasTag("debuff"))
}

func TestGrantedEventEmitted(t *testing.T) {
	env := newTestEnv("o")
	env.grant(configWith("flame"))

	events := env.collector.Flush()
	require.Len(t, events, 1)
	assert.Equal(t, KindAbilityGranted, events[0].Kind)
	cfgID, _ := events[0].Str("configId")
	assert.Equal(t, "flame", cfgID)
}

func TestExpireEmitsEventWithReason(t *testing.T) {
	env := newTestEnv("o")
	a := env.grant(configWith("flame"))
	env.collector.Flush()

	a.Expire("dispelled")
	events := env.collector.Flush()
	require.Len(t, events, 1)
	assert.Equal(t, KindAbilityExpired, events[0].Kind)
	reason, _ := events[0].Str("reason")
	assert.Equal(t, "dispelled", reason)
}
