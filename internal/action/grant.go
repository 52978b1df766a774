package action

import (
	"fmt"
	"log/slog"
)

// GrantAbilityAction grants an ability config to each selected target.
// The grant itself is routed through the host facade so the host keeps
// ownership of ability construction and registration.
type GrantAbilityAction struct {
	ConfigID string
	Targets  Selector
}

func (a *GrantAbilityAction) Name() string { return "GrantAbility" }

func (a *GrantAbilityAction) Execute(ctx *ExecutionContext) Result {
	targets := a.Targets(ctx)
	if len(targets) == 0 {
		return failureResult("no targets selected")
	}
	granted := 0
	for _, t := range targets {
		if err := ctx.State.GrantAbilityByConfig(t, ctx.Owner, a.ConfigID); err != nil {
			slog.Warn("grant ability action failed",
				"config", a.ConfigID, "target", t.ID, "err", err)
			continue
		}
		granted++
	}
	if granted == 0 {
		return failureResult(fmt.Sprintf("config %s granted to no target", a.ConfigID))
	}
	return successResult()
}
