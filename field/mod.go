package field

import (
	"io"

	"golang.org/x/xerrors"
)

// ErrZeroInverse is returned when the multiplicative inverse of the zero
// element is requested.
var ErrZeroInverse = xerrors.New("zero has no multiplicative inverse")

// Element is the algebraic contract the protocol engine builds on. Elements
// have value semantics: every operation returns a new element and leaves the
// receiver untouched. New and Random must work on the zero value of T so
// generic code can mint elements without a concrete constructor.
type Element[T any] interface {
	// New returns the element for value, reduced into the field.
	New(value uint64) T

	// Add returns the field sum of the receiver and other.
	Add(other T) T

	// Negate returns the additive inverse. Zero negates to zero.
	Negate() T

	// Subtract returns the receiver minus other.
	Subtract(other T) T

	// Multiply returns the field product of the receiver and other.
	Multiply(other T) T

	// Inverse returns the multiplicative inverse, or ErrZeroInverse for
	// the zero element.
	Inverse() (T, error)

	// Random draws a fresh element from rng.
	Random(rng io.Reader) (T, error)

	// Value returns the canonical representative in [0, order).
	Value() uint64
}
