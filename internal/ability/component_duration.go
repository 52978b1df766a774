package ability

// DurationComponent gives the ability a lifetime. When the remaining
// time runs out it expires the whole ability, so the AbilitySet never
// has to poll per-component timers itself.
type DurationComponent struct {
	baseComponent
	DurationMs int64
	remaining  int64
}

func NewDurationComponent(durationMs int64) *DurationComponent {
	return &DurationComponent{DurationMs: durationMs}
}

func (c *DurationComponent) Name() string { return "Duration" }

func (c *DurationComponent) OnApply(Host) {
	c.remaining = c.DurationMs
}

func (c *DurationComponent) OnTick(h Host, dtMs int64) {
	c.remaining -= dtMs
	if c.remaining <= 0 {
		c.expireAbility("duration_elapsed")
	}
}

// Remaining returns the time left before expiry.
func (c *DurationComponent) Remaining() int64 {
	return c.remaining
}

// Refresh resets the remaining time to the full duration. Stack
// components call this when a re-grant refreshes an existing ability.
func (c *DurationComponent) Refresh() {
	c.remaining = c.DurationMs
}
