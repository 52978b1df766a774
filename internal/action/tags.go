package action

import (
	"log/slog"
)

// AddTagAction adds a tag to each selected target's ledger. With a
// positive DurationMs the tag is auto-duration (owned by the target's
// timer); otherwise it is a loose stack increment.
type AddTagAction struct {
	Tag        string
	Stacks     int
	DurationMs int64
	Targets    Selector
}

func (a *AddTagAction) Name() string { return "AddTag" }

func (a *AddTagAction) Execute(ctx *ExecutionContext) Result {
	targets := a.Targets(ctx)
	if len(targets) == 0 {
		return failureResult("no targets selected")
	}
	stacks := a.Stacks
	if stacks <= 0 {
		stacks = 1
	}
	for _, t := range targets {
		var err error
		if a.DurationMs > 0 {
			err = ctx.State.AddAutoDurationTag(t, a.Tag, a.DurationMs)
		} else {
			err = ctx.State.AddLooseTag(t, a.Tag, stacks)
		}
		if err != nil {
			slog.Warn("add tag action failed", "tag", a.Tag, "target", t.ID, "err", err)
		}
	}
	return successResult()
}

// RemoveTagAction decrements loose tag stacks on each selected target.
// Auto-duration tags are not touched; only their timer removes them.
type RemoveTagAction struct {
	Tag     string
	Stacks  int
	Targets Selector
}

func (a *RemoveTagAction) Name() string { return "RemoveTag" }

func (a *RemoveTagAction) Execute(ctx *ExecutionContext) Result {
	targets := a.Targets(ctx)
	if len(targets) == 0 {
		return failureResult("no targets selected")
	}
	stacks := a.Stacks
	if stacks <= 0 {
		stacks = 1
	}
	for _, t := range targets {
		if err := ctx.State.RemoveLooseTag(t, a.Tag, stacks); err != nil {
			slog.Warn("remove tag action failed", "tag", a.Tag, "target", t.ID, "err", err)
		}
	}
	return successResult()
}
