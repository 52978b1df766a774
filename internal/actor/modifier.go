package actor

// ModifierKind defines where in the layered formula a modifier applies.
//
// Evaluation order is fixed:
//
//	body    = (base + Σ AddBase) × (1 + Σ MulBase)
//	current = clamp((body + Σ AddFinal) × (1 + Σ MulFinal), min, max)
type ModifierKind int8

const (
	ModAddBase ModifierKind = iota
	ModMulBase
	ModAddFinal
	ModMulFinal
)

func (k ModifierKind) String() string {
	switch k {
	case ModAddBase:
		return "AddBase"
	case ModMulBase:
		return "MulBase"
	case ModAddFinal:
		return "AddFinal"
	case ModMulFinal:
		return "MulFinal"
	default:
		return "Unknown"
	}
}

// Modifier is a single typed adjustment to one named attribute.
// Source identifies the grant that installed it; RemoveModifiersBySource
// uses it for exactly-once cleanup when the grant is revoked.
type Modifier struct {
	ID        string
	Attribute string
	Kind      ModifierKind
	Value     float64
	Source    string
	Priority  int
}

// ModifierTarget is the narrow write interface handed to component
// lifecycle hooks. Keeping mutation behind these two methods enforces
// single-writer discipline per grant/revoke pair.
type ModifierTarget interface {
	AddModifier(m Modifier) error
	RemoveModifiersBySource(source string) int
}
