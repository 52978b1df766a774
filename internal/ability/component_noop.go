package ability

// NoopComponent is the degraded form of a misconfigured component
// definition. It participates in no lifecycle hooks; the loader logs
// the original problem when it substitutes one.
type NoopComponent struct {
	baseComponent
	Reason string
}

func NewNoopComponent(reason string) *NoopComponent {
	return &NoopComponent{Reason: reason}
}

func (c *NoopComponent) Name() string { return "Noop" }
