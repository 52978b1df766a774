package event

// ModOp is one mutation operation on a numeric event field.
type ModOp string

const (
	OpSet      ModOp = "set"
	OpAdd      ModOp = "add"
	OpMultiply ModOp = "multiply"
)

// Modification is one entry in the pre-phase mutation log. The log is
// append-only; current values are derived by replaying it, which keeps
// the full audit history per field.
type Modification struct {
	Field  string
	Op     ModOp
	Value  float64
	Source string
}

// Mutable wraps one candidate event during the pre phase. It never
// escapes the processor: handlers mutate or cancel here, then the
// processor bakes the result into a plain immutable Event.
type Mutable struct {
	original     Event
	mods         []Modification
	cancelled    bool
	cancelledBy  string
	cancelReason string
}

// NewMutable wraps a candidate event for pre-phase processing.
func NewMutable(original Event) *Mutable {
	return &Mutable{original: original}
}

// Original returns the unmodified candidate event.
func (m *Mutable) Original() Event {
	return m.original
}

// AddModification appends one operation to the mutation log.
func (m *Mutable) AddModification(mod Modification) {
	m.mods = append(m.mods, mod)
}

// Modifications returns the mutation log in append order.
func (m *Mutable) Modifications() []Modification {
	return m.mods
}

// Cancel marks the event as cancelled. Only the first cancellation's
// handler and reason are retained.
func (m *Mutable) Cancel(handlerID, reason string) {
	if m.cancelled {
		return
	}
	m.cancelled = true
	m.cancelledBy = handlerID
	m.cancelReason = reason
}

// Cancelled reports whether any handler cancelled the event.
func (m *Mutable) Cancelled() bool {
	return m.cancelled
}

// CancelledBy returns the cancelling handler id and its reason.
func (m *Mutable) CancelledBy() (handlerID, reason string) {
	return m.cancelledBy, m.cancelReason
}

// CurrentValue derives the field's value from the mutation log:
// start from the last set (or the original value if none), apply all
// add operations, then apply all multiply operations.
func (m *Mutable) CurrentValue(field string) float64 {
	base, _ := m.original.Float(field)
	for _, mod := range m.mods {
		if mod.Field == field && mod.Op == OpSet {
			base = mod.Value
		}
	}
	for _, mod := range m.mods {
		if mod.Field == field && mod.Op == OpAdd {
			base += mod.Value
		}
	}
	for _, mod := range m.mods {
		if mod.Field == field && mod.Op == OpMultiply {
			base *= mod.Value
		}
	}
	return base
}

// ToFinalEvent bakes the mutation log into an immutable event. Fields
// never touched by a modification pass through unchanged.
func (m *Mutable) ToFinalEvent() Event {
	final := m.original.clone()
	touched := make(map[string]struct{}, len(m.mods))
	for _, mod := range m.mods {
		touched[mod.Field] = struct{}{}
	}
	for field := range touched {
		final.Fields[field] = m.CurrentValue(field)
	}
	return final
}
