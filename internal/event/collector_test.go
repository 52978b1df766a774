package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector_FlushOrderAndClear(t *testing.T) {
	c := NewCollector()
	e1 := New("a", 1)
	e2 := New("b", 1)
	e3 := New("c", 2)

	c.Push(e1)
	c.Push(e2)
	c.Push(e3)

	got := c.Flush()
	assert.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Kind)
	assert.Equal(t, "b", got[1].Kind)
	assert.Equal(t, "c", got[2].Kind)

	// second consecutive flush yields empty
	assert.Empty(t, c.Flush())
}

func TestCollector_PushIsIdentityPassthrough(t *testing.T) {
	c := NewCollector()
	e := New("hit", 5).With("amount", 12.0)
	got := c.Push(e)
	assert.Equal(t, e, got)
}

func TestCollector_CollectIsNonDestructive(t *testing.T) {
	c := NewCollector()
	c.Push(New("a", 1))
	c.Push(New("b", 1))

	snap := c.Collect()
	assert.Len(t, snap, 2)
	assert.Equal(t, 2, c.Len())

	// mutating the snapshot must not affect the buffer
	snap[0] = New("z", 9)
	assert.Equal(t, "a", c.Collect()[0].Kind)
}
