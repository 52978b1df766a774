package timeline

import (
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
)

// InstanceState is the execution lifecycle of one timeline run.
type InstanceState int8

const (
	StateExecuting InstanceState = iota
	StateCompleted
	StateCancelled
)

func (s InstanceState) String() string {
	switch s {
	case StateExecuting:
		return "executing"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Instance advances elapsed time against one timeline and fires the
// action lists bound to each tag. Tags fire at most once, in
// non-decreasing offset order; equal offsets fire in name order.
type Instance struct {
	id           string
	timeline     *Timeline
	tagActions   map[string][]action.Action
	contextFn    func() *action.ExecutionContext
	ordered      []tagOffset
	fired        map[string]bool
	elapsed      int64
	state        InstanceState
	cancelReason string
}

// NewInstance starts a run at elapsed 0 in the executing state.
// contextFn builds a fresh execution context per fired tag; the owning
// component injects its ability scope there.
func NewInstance(id string, tl *Timeline, tagActions map[string][]action.Action, contextFn func() *action.ExecutionContext) *Instance {
	return &Instance{
		id:         id,
		timeline:   tl,
		tagActions: tagActions,
		contextFn:  contextFn,
		ordered:    tl.orderedTags(),
		fired:      make(map[string]bool, len(tl.Tags)),
	}
}

func (i *Instance) ID() string           { return i.id }
func (i *Instance) TimelineID() string   { return i.timeline.ID }
func (i *Instance) Elapsed() int64       { return i.elapsed }
func (i *Instance) State() InstanceState { return i.state }
func (i *Instance) CancelReason() string { return i.cancelReason }

// Advance moves elapsed time forward and fires every tag whose offset
// was crossed. Completion happens after the tags at the crossing
// instant have fired, so a tag at offset == totalDuration still runs.
func (i *Instance) Advance(dtMs int64) {
	if i.state != StateExecuting {
		return
	}
	i.elapsed += dtMs

	for _, to := range i.ordered {
		if to.offset > i.elapsed || i.fired[to.tag] {
			continue
		}
		i.fired[to.tag] = true
		i.fireTag(to.tag)
		if i.state != StateExecuting {
			// an action expired the owning ability mid-run
			return
		}
	}

	if i.elapsed >= i.timeline.TotalDuration {
		i.state = StateCompleted
	}
}

func (i *Instance) fireTag(tag string) {
	actions := i.tagActions[tag]
	if len(actions) == 0 {
		return
	}
	base := i.contextFn()
	ctx := base.WithExecution(action.ExecutionInfo{
		ID:         i.id,
		TimelineID: i.timeline.ID,
		Elapsed:    i.elapsed,
		CurrentTag: tag,
	})
	for _, a := range actions {
		res := action.RunSafe(a, ctx)
		if !res.Success {
			slog.Debug("timeline action failed",
				"instance", i.id, "tag", tag, "action", a.Name(), "reason", res.FailureReason)
		}
	}
}

// Cancel stops an executing run; completed or already cancelled runs
// are left untouched.
func (i *Instance) Cancel(reason string) {
	if i.state != StateExecuting {
		return
	}
	i.state = StateCancelled
	i.cancelReason = reason
}
