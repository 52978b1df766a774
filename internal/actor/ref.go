package actor

// Ref is an opaque actor identity. The engine passes Refs everywhere
// instead of live object pointers so that no subsystem ends up owning
// another actor's state.
type Ref struct {
	ID string
}

// IsZero reports whether the ref carries no identity.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

func (r Ref) String() string {
	return r.ID
}
