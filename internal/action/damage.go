package action

import (
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// Event kinds produced by the builtin actions. Hosts are expected to
// wrap these in their own exhaustively matched event sets.
const (
	KindDamage = "damage"
	KindHeal   = "heal"
)

// DamageAction emits one damage event per selected target through the
// pre/post pipeline, so armor, immunities and reactive effects all get
// their say before and after the fact.
type DamageAction struct {
	Amount  Param[float64]
	Element string
	Targets Selector
}

func (a *DamageAction) Name() string { return "Damage" }

func (a *DamageAction) Execute(ctx *ExecutionContext) Result {
	targets := a.Targets(ctx)
	if len(targets) == 0 {
		return failureResult("no targets selected")
	}
	amount := a.Amount.Resolve(ctx)

	var finals []event.Event
	for _, t := range targets {
		ev := event.New(KindDamage, ctx.State.LogicTime()).
			With("source", ctx.Owner.ID).
			With("target", t.ID).
			With("amount", amount)
		if a.Element != "" {
			ev = ev.With("element", a.Element)
		}
		if ctx.Execution != nil {
			ev = ev.With("executionTag", ctx.Execution.CurrentTag)
		}
		if final, ok := ctx.Processor.Process(ev); ok {
			finals = append(finals, final)
		}
	}
	return successResult(finals...)
}

// HealAction mirrors DamageAction with the heal kind.
type HealAction struct {
	Amount  Param[float64]
	Targets Selector
}

func (a *HealAction) Name() string { return "Heal" }

func (a *HealAction) Execute(ctx *ExecutionContext) Result {
	targets := a.Targets(ctx)
	if len(targets) == 0 {
		return failureResult("no targets selected")
	}
	amount := a.Amount.Resolve(ctx)

	var finals []event.Event
	for _, t := range targets {
		ev := event.New(KindHeal, ctx.State.LogicTime()).
			With("source", ctx.Owner.ID).
			With("target", t.ID).
			With("amount", amount)
		if final, ok := ctx.Processor.Process(ev); ok {
			finals = append(finals, final)
		}
	}
	return successResult(finals...)
}
