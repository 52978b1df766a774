package action

import (
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
)

// Selector picks the actors an action affects. Selectors are pure
// functions of the context and are swappable per action instance,
// decoupling "who is affected" from "what effect happens".
type Selector func(ctx *ExecutionContext) []actor.Ref

// SelectOwner targets the actor owning the executing ability.
func SelectOwner() Selector {
	return func(ctx *ExecutionContext) []actor.Ref {
		if ctx.Owner.IsZero() {
			return nil
		}
		return []actor.Ref{ctx.Owner}
	}
}

// SelectSource targets the actor that granted the executing ability.
func SelectSource() Selector {
	return func(ctx *ExecutionContext) []actor.Ref {
		if ctx.Source.IsZero() {
			return nil
		}
		return []actor.Ref{ctx.Source}
	}
}

// SelectEventActor targets the actor named by a string field of the
// current event (commonly "source" or "target").
func SelectEventActor(field string) Selector {
	return func(ctx *ExecutionContext) []actor.Ref {
		ev, ok := ctx.CurrentEvent()
		if !ok {
			return nil
		}
		id, ok := ev.Str(field)
		if !ok || id == "" {
			return nil
		}
		return []actor.Ref{{ID: id}}
	}
}

// SelectAllAlive targets every alive actor the host reports.
func SelectAllAlive() Selector {
	return func(ctx *ExecutionContext) []actor.Ref {
		return ctx.State.AliveActors()
	}
}

// SelectAllOthers targets every alive actor except the owner.
func SelectAllOthers() Selector {
	return func(ctx *ExecutionContext) []actor.Ref {
		all := ctx.State.AliveActors()
		out := make([]actor.Ref, 0, len(all))
		for _, r := range all {
			if r != ctx.Owner {
				out = append(out, r)
			}
		}
		return out
	}
}

// SelectFixed targets a fixed list of refs.
func SelectFixed(refs ...actor.Ref) Selector {
	return func(*ExecutionContext) []actor.Ref {
		return refs
	}
}
