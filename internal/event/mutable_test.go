package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutable_AddBeforeMultiply(t *testing.T) {
	ev := New("damage", 10).With("amount", 100.0)
	m := NewMutable(ev)

	m.AddModification(Modification{Field: "amount", Op: OpAdd, Value: -10, Source: "armor"})
	m.AddModification(Modification{Field: "amount", Op: OpMultiply, Value: 0.7, Source: "shield"})

	// (100 - 10) * 0.7, regardless of append order of add/multiply
	assert.InDelta(t, 63.0, m.CurrentValue("amount"), 1e-9)

	final := m.ToFinalEvent()
	got, ok := final.Float("amount")
	assert.True(t, ok)
	assert.InDelta(t, 63.0, got, 1e-9)
}

func TestMutable_LastSetWins(t *testing.T) {
	ev := New("damage", 0).With("amount", 50.0)
	m := NewMutable(ev)

	m.AddModification(Modification{Field: "amount", Op: OpSet, Value: 200})
	m.AddModification(Modification{Field: "amount", Op: OpAdd, Value: 10})
	m.AddModification(Modification{Field: "amount", Op: OpSet, Value: 80})
	m.AddModification(Modification{Field: "amount", Op: OpMultiply, Value: 2})

	// last set (80), then +10, then ×2
	assert.InDelta(t, 180.0, m.CurrentValue("amount"), 1e-9)
}

func TestMutable_UntouchedFieldsPassThrough(t *testing.T) {
	ev := New("damage", 3).With("amount", 40.0).With("element", "fire")
	m := NewMutable(ev)
	m.AddModification(Modification{Field: "amount", Op: OpAdd, Value: 5})

	final := m.ToFinalEvent()
	el, _ := final.Str("element")
	assert.Equal(t, "fire", el)
	assert.Equal(t, int64(3), final.LogicTime)
}

func TestMutable_CancelRetainsFirstReason(t *testing.T) {
	m := NewMutable(New("damage", 0))
	assert.False(t, m.Cancelled())

	m.Cancel("immunity", "target immune")
	m.Cancel("other", "too late")

	by, reason := m.CancelledBy()
	assert.Equal(t, "immunity", by)
	assert.Equal(t, "target immune", reason)
}

func TestMutable_OriginalStaysUntouched(t *testing.T) {
	ev := New("damage", 0).With("amount", 10.0)
	m := NewMutable(ev)
	m.AddModification(Modification{Field: "amount", Op: OpSet, Value: 99})
	_ = m.ToFinalEvent()

	orig, _ := m.Original().Float("amount")
	assert.Equal(t, 10.0, orig)
}
