package types

import (
	"fmt"

	"go.dedis.ch/mpcsim/field"
)

// -----------------------------------------------------------------------------
// Share

// NewShare returns a share of the value registered under id.
func NewShare[T field.Element[T]](id string, value T) Share[T] {
	return Share[T]{ID: id, Value: value}
}

// String implements fmt.Stringer.
func (s Share[T]) String() string {
	return fmt.Sprintf("{share %s: %d}", s.ID, s.Value.Value())
}

// Hash implements storage.Hashable.
func (s Share[T]) Hash() string {
	return fmt.Sprintf("share|%s|%d", s.ID, s.Value.Value())
}

// -----------------------------------------------------------------------------
// Triple

// String implements fmt.Stringer.
func (t Triple[T]) String() string {
	return fmt.Sprintf("{triple a:%d b:%d c:%d}",
		t.A.Value.Value(), t.B.Value.Value(), t.C.Value.Value())
}

// Hash implements storage.Hashable.
func (t Triple[T]) Hash() string {
	return fmt.Sprintf("triple|%s|%s|%s", t.A.Hash(), t.B.Hash(), t.C.Hash())
}

// -----------------------------------------------------------------------------
// TripleIDs

// String implements fmt.Stringer.
func (t TripleIDs) String() string {
	return fmt.Sprintf("{%s,%s,%s}", t.A, t.B, t.C)
}
