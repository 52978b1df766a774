package action

import (
	"fmt"
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// Result reports one action execution. Events lists the finalized
// events the execution produced (cancelled ones are absent).
type Result struct {
	Success       bool
	Events        []event.Event
	FailureReason string
	Data          map[string]any
}

// Action is one executable effect primitive. Execute may only touch
// the simulation through ctx.State and ctx.Processor/ctx.Collector;
// it never holds live actor state.
type Action interface {
	Name() string
	Execute(ctx *ExecutionContext) Result
}

// RunSafe executes one action, converting a panic into a failed
// Result. One broken effect must not abort the rest of a tick.
func RunSafe(a Action, ctx *ExecutionContext) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("action panicked", "action", a.Name(), "panic", r)
			res = failureResult(fmt.Sprintf("action %s panicked: %v", a.Name(), r))
		}
	}()
	return a.Execute(ctx)
}

func successResult(events ...event.Event) Result {
	return Result{Success: true, Events: events}
}

func failureResult(reason string) Result {
	return Result{Success: false, FailureReason: reason}
}
