package ability

// StackComponent tracks a bounded stack count on the ability. Stacks
// never exceed MaxStacks and never go below zero; hitting zero with
// ExpireAtZero set ends the ability.
type StackComponent struct {
	baseComponent
	InitialStacks int
	MaxStacks     int
	ExpireAtZero  bool
	stacks        int
}

func NewStackComponent(initial, max int, expireAtZero bool) *StackComponent {
	if initial < 0 {
		initial = 0
	}
	return &StackComponent{InitialStacks: initial, MaxStacks: max, ExpireAtZero: expireAtZero}
}

func (c *StackComponent) Name() string { return "Stack" }

func (c *StackComponent) OnApply(Host) {
	c.stacks = c.InitialStacks
	if c.MaxStacks > 0 && c.stacks > c.MaxStacks {
		c.stacks = c.MaxStacks
	}
}

// Stacks returns the current count.
func (c *StackComponent) Stacks() int {
	return c.stacks
}

// AddStacks increases the count, clamped to MaxStacks, and refreshes
// any sibling duration component so a re-stack also re-times the
// ability. Returns the new count.
func (c *StackComponent) AddStacks(n int) int {
	if n <= 0 {
		return c.stacks
	}
	c.stacks += n
	if c.MaxStacks > 0 && c.stacks > c.MaxStacks {
		c.stacks = c.MaxStacks
	}
	c.refreshSiblingDuration()
	return c.stacks
}

// RemoveStacks decreases the count, never below zero. Returns the new
// count.
func (c *StackComponent) RemoveStacks(n int) int {
	if n <= 0 {
		return c.stacks
	}
	c.stacks -= n
	if c.stacks < 0 {
		c.stacks = 0
	}
	if c.stacks == 0 && c.ExpireAtZero {
		c.expireAbility("stacks_depleted")
	}
	return c.stacks
}

func (c *StackComponent) refreshSiblingDuration() {
	if c.ability == nil {
		return
	}
	for _, other := range c.ability.Components() {
		if d, ok := other.(*DurationComponent); ok && !d.Expired() {
			d.Refresh()
		}
	}
}
