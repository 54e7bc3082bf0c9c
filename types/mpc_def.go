package types

import "go.dedis.ch/mpcsim/field"

// Share is one participant's additive share of a secret-shared value. ID is
// the logical identifier the value is shared under and is the same on every
// participant; Value is this participant's summand only and reveals nothing
// about the secret by itself.
type Share[T field.Element[T]] struct {
	ID    string
	Value T
}

// Triple is one participant's slice of a multiplication triple a*b = c,
// held in pooled form until a secure multiplication consumes it.
type Triple[T field.Element[T]] struct {
	A Share[T]
	B Share[T]
	C Share[T]
}

// TripleIDs names the three logical identifiers a multiplication triple is
// shared under.
type TripleIDs struct {
	A string
	B string
	C string
}
