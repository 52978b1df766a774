package action

import (
	"log/slog"
)

// NoopAction is the degraded form of a misconfigured action: content
// errors never crash a tick, they just do nothing with a log trail.
type NoopAction struct {
	Reason string
}

func (a *NoopAction) Name() string { return "Noop" }

func (a *NoopAction) Execute(*ExecutionContext) Result {
	slog.Debug("noop action executed", "reason", a.Reason)
	return successResult()
}
