package event

import (
	"log/slog"
)

// DefaultMaxDepth bounds reactive recursion through the pipeline.
// Post-phase listeners run in the stack of the event that triggered
// them, so a reflect→damage→reflect chain re-enters Process; without a
// guard a content cycle would recurse forever.
const DefaultMaxDepth = 16

// KindDepthExceeded is the marker event pushed when the depth guard
// trips. It bypasses the pipeline so it can never recurse itself.
const KindDepthExceeded = "pipeline_depth_exceeded"

// PreHandler inspects and may mutate or cancel a candidate event
// before it becomes fact. Handlers run in registration order.
type PreHandler struct {
	ID     string
	Handle func(*Mutable)
}

// Listener receives finalized events during the post phase. Listeners
// are invoked synchronously, in subscription order, in the call stack
// of whatever produced the event.
type Listener interface {
	HandleGameEvent(ev Event)
}

// Processor implements the two-phase pipeline over one semantic event:
// pre (cancellable mutation), finalize, post (synchronous broadcast).
type Processor struct {
	pre       map[string][]PreHandler
	listeners []Listener
	collector *Collector
	maxDepth  int
	depth     int
}

// NewProcessor wires a processor to the collector that receives
// finalized events. maxDepth ≤ 0 selects DefaultMaxDepth.
func NewProcessor(collector *Collector, maxDepth int) *Processor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Processor{
		pre:       make(map[string][]PreHandler),
		collector: collector,
		maxDepth:  maxDepth,
	}
}

// RegisterPre adds a pre-phase handler for one event kind.
func (p *Processor) RegisterPre(kind string, h PreHandler) {
	p.pre[kind] = append(p.pre[kind], h)
}

// RemovePre removes every pre-phase handler with the given id from
// one kind. Used by component teardown.
func (p *Processor) RemovePre(kind, handlerID string) {
	handlers := p.pre[kind]
	kept := handlers[:0]
	for _, h := range handlers {
		if h.ID != handlerID {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		delete(p.pre, kind)
	} else {
		p.pre[kind] = kept
	}
}

// Subscribe adds a post-phase listener.
func (p *Processor) Subscribe(l Listener) {
	p.listeners = append(p.listeners, l)
}

// Unsubscribe removes a previously subscribed listener.
func (p *Processor) Unsubscribe(l Listener) {
	kept := p.listeners[:0]
	for _, existing := range p.listeners {
		if existing != l {
			kept = append(kept, existing)
		}
	}
	p.listeners = kept
}

// Process runs the full pipeline on one candidate event. On success
// the finalized event is pushed to the collector before the post
// broadcast, so reactive follow-ups appear after their cause in the
// buffer. Returns ok=false when a pre handler cancelled the event or
// the depth guard tripped; no final event exists in either case.
func (p *Processor) Process(candidate Event) (final Event, ok bool) {
	if p.depth >= p.maxDepth {
		slog.Warn("event pipeline depth exceeded, dropping event",
			"kind", candidate.Kind,
			"logicTime", candidate.LogicTime,
			"maxDepth", p.maxDepth)
		marker := New(KindDepthExceeded, candidate.LogicTime).
			With("droppedKind", candidate.Kind)
		p.collector.Push(marker)
		return Event{}, false
	}
	p.depth++
	defer func() { p.depth-- }()

	mutable := NewMutable(candidate)
	for _, h := range p.pre[candidate.Kind] {
		h.Handle(mutable)
		if mutable.Cancelled() {
			by, reason := mutable.CancelledBy()
			slog.Debug("event cancelled in pre phase",
				"kind", candidate.Kind, "by", by, "reason", reason)
			return Event{}, false
		}
	}

	final = mutable.ToFinalEvent()
	p.collector.Push(final)

	// Post phase: each listener runs in this stack; a listener that
	// emits another event re-enters Process recursively.
	for _, l := range p.listeners {
		p.dispatch(l, final)
	}
	return final, true
}

// dispatch isolates one listener so a broken reactive effect cannot
// abort the rest of the broadcast.
func (p *Processor) dispatch(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("post-phase listener panicked",
				"kind", ev.Kind, "panic", r)
		}
	}()
	l.HandleGameEvent(ev)
}
