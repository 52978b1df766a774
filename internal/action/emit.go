package action

import (
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// EmitEventAction produces a custom event. With ViaPipeline it runs
// the full pre/post pipeline; otherwise it is pushed straight to the
// collector as an already-final fact.
type EmitEventAction struct {
	Kind        string
	Fields      map[string]any
	ViaPipeline bool
}

func (a *EmitEventAction) Name() string { return "EmitEvent" }

func (a *EmitEventAction) Execute(ctx *ExecutionContext) Result {
	ev := event.New(a.Kind, ctx.State.LogicTime())
	for k, v := range a.Fields {
		ev = ev.With(k, v)
	}
	if !ctx.Owner.IsZero() {
		ev = ev.With("source", ctx.Owner.ID)
	}

	if a.ViaPipeline {
		final, ok := ctx.Processor.Process(ev)
		if !ok {
			return failureResult("event cancelled in pre phase")
		}
		return successResult(final)
	}
	return successResult(ctx.Collector.Push(ev))
}
