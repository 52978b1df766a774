package ability

import (
	"fmt"
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/timeline"
)

// Event kinds emitted when an execution instance finishes.
const (
	KindExecutionCompleted = "execution_completed"
	KindExecutionCancelled = "execution_cancelled"
)

// TimelineComponent starts and drives execution instances against a
// named timeline asset. With StartOn empty one instance starts at
// grant time; otherwise every matching event starts a fresh instance,
// so an ability may own several runs at once.
type TimelineComponent struct {
	baseComponent
	TimelineID string
	TagActions map[string][]action.Action
	StartOn    string

	// ExpireOnComplete ends the ability once every started instance
	// has finished (cast-style abilities).
	ExpireOnComplete bool

	instances []*timeline.Instance
	started   int
}

func NewTimelineComponent(timelineID string, tagActions map[string][]action.Action) *TimelineComponent {
	return &TimelineComponent{TimelineID: timelineID, TagActions: tagActions}
}

func (c *TimelineComponent) Name() string { return "Timeline" }

func (c *TimelineComponent) OnApply(h Host) {
	if c.StartOn == "" {
		c.start(h)
	}
}

func (c *TimelineComponent) OnEvent(h Host, ev event.Event) {
	if c.StartOn != "" && ev.Kind == c.StartOn {
		c.start(h)
	}
}

func (c *TimelineComponent) start(h Host) {
	tl, ok := h.Timeline(c.TimelineID)
	if !ok {
		// missing asset is a content error: degrade, don't crash
		slog.Warn("timeline asset not found, component disabled",
			"ability", c.ability.ID(), "timeline", c.TimelineID)
		c.expireSelf()
		return
	}
	c.started++
	id := fmt.Sprintf("%s-exec-%d", c.ability.ID(), c.started)
	inst := timeline.NewInstance(id, tl, c.TagActions, func() *action.ExecutionContext {
		return h.NewExecutionContext()
	})
	c.instances = append(c.instances, inst)
}

func (c *TimelineComponent) OnTick(h Host, dtMs int64) {
	if len(c.instances) == 0 {
		if c.ExpireOnComplete && c.started > 0 {
			c.expireAbility("execution_complete")
		}
		return
	}

	kept := make([]*timeline.Instance, 0, len(c.instances))
	for _, inst := range c.instances {
		inst.Advance(dtMs)
		if c.ability.Expired() {
			// a tag action expired the ability in-stack; OnRemove has
			// already cancelled the remaining runs and emitted their
			// terminal facts
			return
		}
		switch inst.State() {
		case timeline.StateCompleted:
			h.Collector().Push(executionEvent(KindExecutionCompleted, h, c, inst))
		case timeline.StateCancelled:
			h.Collector().Push(executionEvent(KindExecutionCancelled, h, c, inst).
				With("reason", inst.CancelReason()))
		default:
			kept = append(kept, inst)
		}
	}
	c.instances = kept

	if c.ExpireOnComplete && c.started > 0 && len(c.instances) == 0 {
		c.expireAbility("execution_complete")
	}
}

// OnRemove cancels whatever is still executing; an ability that dies
// mid-cast takes its runs down with it.
func (c *TimelineComponent) OnRemove(h Host) {
	for _, inst := range c.instances {
		if inst.State() != timeline.StateExecuting {
			continue
		}
		inst.Cancel("ability_removed")
		h.Collector().Push(executionEvent(KindExecutionCancelled, h, c, inst).
			With("reason", inst.CancelReason()))
	}
	c.instances = nil
}

// RunningInstances returns the instances still executing.
func (c *TimelineComponent) RunningInstances() []*timeline.Instance {
	return c.instances
}

func executionEvent(kind string, h Host, c *TimelineComponent, inst *timeline.Instance) event.Event {
	return event.New(kind, h.LogicTime()).
		With("abilityId", c.ability.ID()).
		With("executionId", inst.ID()).
		With("timelineId", inst.TimelineID()).
		With("elapsed", inst.Elapsed())
}
