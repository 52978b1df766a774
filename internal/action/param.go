package action

// Param is a lazily resolved action parameter: either a literal value
// or a function of the execution context. Resolution happens exactly
// once per execution, at the call site that needs the value, so skill
// definitions can reference runtime state (the attacker's current atk)
// without the action author writing plumbing.
type Param[T any] struct {
	literal T
	fn      func(*ExecutionContext) T
}

// Literal wraps a fixed value.
func Literal[T any](v T) Param[T] {
	return Param[T]{literal: v}
}

// FromContext wraps a context-dependent value.
func FromContext[T any](fn func(*ExecutionContext) T) Param[T] {
	return Param[T]{fn: fn}
}

// Resolve produces the parameter value for this execution.
func (p Param[T]) Resolve(ctx *ExecutionContext) T {
	if p.fn != nil {
		return p.fn(ctx)
	}
	return p.literal
}

// AttributeParam resolves to an actor's current attribute value scaled
// by a constant. of selects the actor whose attribute is read.
func AttributeParam(of Selector, name string, scale float64) Param[float64] {
	return FromContext(func(ctx *ExecutionContext) float64 {
		refs := of(ctx)
		if len(refs) == 0 {
			return 0
		}
		attrs, ok := ctx.State.ActorAttributes(refs[0].ID)
		if !ok {
			return 0
		}
		v, err := attrs.CurrentValue(name)
		if err != nil {
			return 0
		}
		return v * scale
	})
}
