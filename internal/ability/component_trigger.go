package ability

import (
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// TriggerComponent runs an action list when a matching event arrives,
// gated by conditions and costs. It is the reactive-effect primitive:
// reflect damage, lifesteal, on-kill procs are all trigger components
// with different event kinds and actions.
type TriggerComponent struct {
	baseComponent
	EventKind  string
	Conditions []Condition
	Costs      []Cost
	Actions    []action.Action

	// OwnerField, when set, names an event field that must equal the
	// owner's id for the trigger to fire. Reflect-style triggers set it
	// to "target" so they react to hits on the owner, not to their own
	// reflected output.
	OwnerField string

	// CooldownTag, when set, blocks re-activation while the tag is
	// present and re-arms it as an auto-duration tag on each firing.
	CooldownTag string
	CooldownMs  int64

	// MaxActivations > 0 expires the whole ability after that many
	// firings (one-shot procs use 1).
	MaxActivations int
	activations    int
}

func NewTriggerComponent(eventKind string, actions ...action.Action) *TriggerComponent {
	return &TriggerComponent{EventKind: eventKind, Actions: actions}
}

func (c *TriggerComponent) Name() string { return "Trigger" }

func (c *TriggerComponent) OnEvent(h Host, ev event.Event) {
	if ev.Kind != c.EventKind {
		return
	}
	if c.OwnerField != "" {
		id, ok := ev.Str(c.OwnerField)
		if !ok || id != h.OwnerRef().ID {
			return
		}
	}
	if c.CooldownTag != "" && h.HasTag(c.CooldownTag) {
		slog.Debug("trigger on cooldown",
			"ability", c.ability.ID(), "tag", c.CooldownTag)
		return
	}
	for _, cond := range c.Conditions {
		if !cond.Check(h) {
			slog.Debug("trigger condition failed",
				"ability", c.ability.ID(), "reason", cond.FailReason())
			return
		}
	}
	for _, cost := range c.Costs {
		if !cost.CanPay(h) {
			slog.Debug("trigger cost unpayable",
				"ability", c.ability.ID(), "reason", cost.FailReason())
			return
		}
	}
	for _, cost := range c.Costs {
		cost.Pay(h)
	}
	if c.CooldownTag != "" && c.CooldownMs > 0 {
		h.AddAutoDurationTag(c.CooldownTag, c.CooldownMs)
	}

	ctx := h.NewExecutionContext(ev)
	for _, a := range c.Actions {
		res := action.RunSafe(a, ctx)
		if !res.Success {
			slog.Debug("trigger action failed",
				"ability", c.ability.ID(), "action", a.Name(), "reason", res.FailureReason)
		}
	}

	c.activations++
	if c.MaxActivations > 0 && c.activations >= c.MaxActivations {
		c.expireAbility("max_activations")
	}
}
