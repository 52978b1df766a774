package event

// Collector is the ordered, append-only buffer of emitted events. The
// host flushes it once per tick boundary; that flush is the sole
// handoff point to presentation and replay consumers.
type Collector struct {
	buf []Event
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{buf: make([]Event, 0, 32)}
}

// Push appends the event and returns it unchanged, so call sites can
// chain on the pushed value.
func (c *Collector) Push(e Event) Event {
	c.buf = append(c.buf, e)
	return e
}

// Flush returns the buffered events and atomically clears the buffer.
// A second Flush with no intervening Push returns an empty slice.
func (c *Collector) Flush() []Event {
	out := c.buf
	c.buf = make([]Event, 0, cap(out))
	return out
}

// Collect returns a copy of the buffer without clearing it.
func (c *Collector) Collect() []Event {
	out := make([]Event, len(c.buf))
	copy(out, c.buf)
	return out
}

// Len returns the number of buffered events.
func (c *Collector) Len() int {
	return len(c.buf)
}
