package ability

import (
	"fmt"
)

// Condition gates an activation. Failure is an expected, recoverable
// outcome reported through FailReason, never an error.
type Condition interface {
	Check(h Host) bool
	FailReason() string
}

// HasTagCondition passes when the owner's ledger carries the tag with
// at least MinStacks stacks (MinStacks ≤ 1 means mere presence).
type HasTagCondition struct {
	Tag       string
	MinStacks int
}

func (c *HasTagCondition) Check(h Host) bool {
	if c.MinStacks > 1 {
		return h.TagStacks(c.Tag) >= c.MinStacks
	}
	return h.HasTag(c.Tag)
}

func (c *HasTagCondition) FailReason() string {
	return fmt.Sprintf("requires tag %s", c.Tag)
}

// MissingTagCondition passes when the tag is absent. The usual
// cooldown gate: an auto-duration tag blocks re-activation until its
// timer expires.
type MissingTagCondition struct {
	Tag string
}

func (c *MissingTagCondition) Check(h Host) bool {
	return !h.HasTag(c.Tag)
}

func (c *MissingTagCondition) FailReason() string {
	return fmt.Sprintf("blocked by tag %s", c.Tag)
}

// AttributeAtLeastCondition passes when the owner's current attribute
// value meets the threshold.
type AttributeAtLeastCondition struct {
	Attribute string
	Min       float64
}

func (c *AttributeAtLeastCondition) Check(h Host) bool {
	v, err := h.OwnerAttributes().CurrentValue(c.Attribute)
	if err != nil {
		return false
	}
	return v >= c.Min
}

func (c *AttributeAtLeastCondition) FailReason() string {
	return fmt.Sprintf("requires %s >= %g", c.Attribute, c.Min)
}

// Cost is a payable activation requirement. CanPay is checked for all
// costs before any Pay runs, so activation is all-or-nothing.
type Cost interface {
	CanPay(h Host) bool
	Pay(h Host)
	FailReason() string
}

// AttributeCost spends from a persistent attribute pool (mana,
// stamina) via SetBase. The spend is a base transition, not a
// modifier, so it survives modifier cleanup.
type AttributeCost struct {
	Attribute string
	Amount    float64
}

func (c *AttributeCost) CanPay(h Host) bool {
	base, err := h.OwnerAttributes().Base(c.Attribute)
	if err != nil {
		return false
	}
	return base >= c.Amount
}

func (c *AttributeCost) Pay(h Host) {
	attrs := h.OwnerAttributes()
	base, err := attrs.Base(c.Attribute)
	if err != nil {
		return
	}
	_ = attrs.SetBase(c.Attribute, base-c.Amount)
}

func (c *AttributeCost) FailReason() string {
	return fmt.Sprintf("cannot pay %g %s", c.Amount, c.Attribute)
}
