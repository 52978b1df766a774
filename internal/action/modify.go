package action

import (
	"log/slog"
)

// ModifyAttributeAction applies a base transition to one attribute on
// each selected target: a permanent state change (resource drain, xp
// award), as opposed to the reversible modifiers abilities install.
type ModifyAttributeAction struct {
	Attribute string
	Amount    Param[float64]
	// Set true overwrites the base instead of adding to it.
	Set     bool
	Targets Selector
}

func (a *ModifyAttributeAction) Name() string { return "ModifyAttribute" }

func (a *ModifyAttributeAction) Execute(ctx *ExecutionContext) Result {
	targets := a.Targets(ctx)
	if len(targets) == 0 {
		return failureResult("no targets selected")
	}
	amount := a.Amount.Resolve(ctx)

	for _, t := range targets {
		attrs, ok := ctx.State.ActorAttributes(t.ID)
		if !ok {
			slog.Warn("modify attribute action skipped unknown actor", "target", t.ID)
			continue
		}
		next := amount
		if !a.Set {
			base, err := attrs.Base(a.Attribute)
			if err != nil {
				slog.Warn("modify attribute action failed",
					"attribute", a.Attribute, "target", t.ID, "err", err)
				continue
			}
			next = base + amount
		}
		if err := attrs.SetBase(a.Attribute, next); err != nil {
			slog.Warn("modify attribute action failed",
				"attribute", a.Attribute, "target", t.ID, "err", err)
		}
	}
	return successResult()
}
