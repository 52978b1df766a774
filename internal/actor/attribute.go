package actor

import (
	"fmt"
	"math"
	"sort"
)

// attributeState holds the persistent part of one attribute. Base is
// mutated only through SetBase; modifiers never touch it.
type attributeState struct {
	base float64
	min  float64
	max  float64
}

// AttributeSet stores one actor's named numeric stats plus the layered
// modifiers currently applied to them. CurrentValue always recomputes
// from first principles; there is no cached final value to invalidate.
type AttributeSet struct {
	attrs     map[string]*attributeState
	modifiers map[string][]Modifier // keyed by attribute name
}

// NewAttributeSet creates an empty attribute set.
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{
		attrs:     make(map[string]*attributeState),
		modifiers: make(map[string][]Modifier),
	}
}

// Define registers an unclamped attribute with the given base value.
// Redefining an existing attribute overwrites base and clamp bounds.
func (s *AttributeSet) Define(name string, base float64) {
	s.attrs[name] = &attributeState{base: base, min: math.Inf(-1), max: math.Inf(1)}
}

// DefineClamped registers an attribute whose current value is clamped
// to [min, max]. The clamp applies to the computed value only, never
// to base itself.
func (s *AttributeSet) DefineClamped(name string, base, min, max float64) {
	s.attrs[name] = &attributeState{base: base, min: min, max: max}
}

// Has reports whether the attribute is defined.
func (s *AttributeSet) Has(name string) bool {
	_, ok := s.attrs[name]
	return ok
}

// Names returns all defined attribute names in sorted order.
func (s *AttributeSet) Names() []string {
	names := make([]string, 0, len(s.attrs))
	for n := range s.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Base returns the raw base value, untouched by modifiers.
func (s *AttributeSet) Base(name string) (float64, error) {
	st, ok := s.attrs[name]
	if !ok {
		return 0, fmt.Errorf("attribute %q not defined", name)
	}
	return st.base, nil
}

// SetBase overwrites the base value. This is the only way to change
// base and is reserved for persistent state transitions (HP after a
// committed damage event), as opposed to modifiers which are
// reversible by source.
func (s *AttributeSet) SetBase(name string, value float64) error {
	st, ok := s.attrs[name]
	if !ok {
		return fmt.Errorf("attribute %q not defined", name)
	}
	st.base = value
	return nil
}

// AddModifier installs a modifier. Targeting an undefined attribute is
// a programmer error and is rejected loudly rather than clamped away.
func (s *AttributeSet) AddModifier(m Modifier) error {
	if _, ok := s.attrs[m.Attribute]; !ok {
		return fmt.Errorf("modifier %s/%s targets undefined attribute %q (source %s)",
			m.ID, m.Kind, m.Attribute, m.Source)
	}
	s.modifiers[m.Attribute] = append(s.modifiers[m.Attribute], m)
	return nil
}

// RemoveModifiersBySource drops every modifier installed under the
// given source id and returns how many were removed. Safe to call for
// a source that installed nothing.
func (s *AttributeSet) RemoveModifiersBySource(source string) int {
	removed := 0
	for name, mods := range s.modifiers {
		kept := mods[:0]
		for _, m := range mods {
			if m.Source == source {
				removed++
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) == 0 {
			delete(s.modifiers, name)
		} else {
			s.modifiers[name] = kept
		}
	}
	return removed
}

// ModifierCount returns how many modifiers are applied to the attribute.
func (s *AttributeSet) ModifierCount(name string) int {
	return len(s.modifiers[name])
}

// CurrentValue recomputes the attribute from base and all applied
// modifiers in the fixed layer order:
//
//	body    = (base + Σ AddBase) × (1 + Σ MulBase)
//	current = clamp((body + Σ AddFinal) × (1 + Σ MulFinal), min, max)
func (s *AttributeSet) CurrentValue(name string) (float64, error) {
	st, ok := s.attrs[name]
	if !ok {
		return 0, fmt.Errorf("attribute %q not defined", name)
	}

	var addBase, mulBase, addFinal, mulFinal float64
	for _, m := range s.modifiers[name] {
		switch m.Kind {
		case ModAddBase:
			addBase += m.Value
		case ModMulBase:
			mulBase += m.Value
		case ModAddFinal:
			addFinal += m.Value
		case ModMulFinal:
			mulFinal += m.Value
		}
	}

	body := (st.base + addBase) * (1 + mulBase)
	current := (body + addFinal) * (1 + mulFinal)

	if current < st.min {
		current = st.min
	}
	if current > st.max {
		current = st.max
	}
	return current, nil
}
