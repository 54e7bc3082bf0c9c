package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/types"
)

func newTestMachine(id string) *Machine[field.Mersenne61] {
	return NewMachine[field.Mersenne61](id)
}

func elem(v uint64) field.Mersenne61 {
	return field.NewMersenne61(v)
}

func Test_Machine_PrivateValue(t *testing.T) {
	m := newTestMachine("alice")

	require.NoError(t, m.InsertPrivateValue("a", elem(4)))

	value, err := m.GetPrivateValue("a")
	require.NoError(t, err)
	require.Equal(t, uint64(4), value.Value())
}

func Test_Machine_PrivateValue_Missing(t *testing.T) {
	m := newTestMachine("alice")

	_, err := m.GetPrivateValue("nope")
	require.ErrorIs(t, err, ErrMissingIdentifier)
}

func Test_Machine_Share_Roundtrip(t *testing.T) {
	m := newTestMachine("alice")

	share := types.NewShare("x", elem(7))
	require.NoError(t, m.InsertShare("x", share))

	got, err := m.GetShare("x")
	require.NoError(t, err)
	require.Equal(t, share, got)
	require.True(t, m.HasShare("x"))
}

func Test_Machine_Share_Missing(t *testing.T) {
	m := newTestMachine("alice")

	_, err := m.GetShare("nope")
	require.ErrorIs(t, err, ErrMissingIdentifier)
}

func Test_Machine_Share_Duplicate(t *testing.T) {
	m := newTestMachine("alice")

	require.NoError(t, m.InsertShare("x", types.NewShare("x", elem(1))))

	err := m.InsertShare("x", types.NewShare("x", elem(2)))
	require.ErrorIs(t, err, ErrDuplicateIdentifier)
}

// a private insert is rejected when the identifier is taken by a share
func Test_Machine_PrivateValue_Collides_With_Share(t *testing.T) {
	m := newTestMachine("alice")

	require.NoError(t, m.InsertShare("x", types.NewShare("x", elem(1))))

	err := m.InsertPrivateValue("x", elem(2))
	require.ErrorIs(t, err, ErrDuplicateIdentifier)
}

// only the share namespace is collision-checked: a repeated private insert
// overwrites, and a share may take an identifier already used by a private
// value
func Test_Machine_Namespace_Asymmetry(t *testing.T) {
	m := newTestMachine("alice")

	require.NoError(t, m.InsertPrivateValue("a", elem(1)))
	require.NoError(t, m.InsertPrivateValue("a", elem(2)))

	value, err := m.GetPrivateValue("a")
	require.NoError(t, err)
	require.Equal(t, uint64(2), value.Value())

	require.NoError(t, m.InsertShare("a", types.NewShare("a", elem(3))))
}

func Test_Machine_RemoveShare_Frees_Identifier(t *testing.T) {
	m := newTestMachine("alice")

	require.NoError(t, m.InsertShare("x", types.NewShare("x", elem(1))))

	m.RemoveShare("x")
	require.False(t, m.HasShare("x"))

	// removing an absent share is a no-op
	m.RemoveShare("x")

	require.NoError(t, m.InsertShare("x", types.NewShare("x", elem(2))))
}

func Test_Machine_Triples(t *testing.T) {
	m := newTestMachine("alice")

	triple := types.Triple[field.Mersenne61]{
		A: types.NewShare("t|a", elem(1)),
		B: types.NewShare("t|b", elem(2)),
		C: types.NewShare("t|c", elem(3)),
	}

	require.NoError(t, m.InsertTriple("t", triple))

	err := m.InsertTriple("t", triple)
	require.ErrorIs(t, err, ErrDuplicateIdentifier)

	got, err := m.GetTriple("t")
	require.NoError(t, err)
	require.Equal(t, triple, got)

	m.RemoveTriple("t")

	_, err = m.GetTriple("t")
	require.ErrorIs(t, err, ErrMissingIdentifier)
}

func Test_Machine_IDs_Sorted(t *testing.T) {
	m := newTestMachine("alice")

	m.InsertShare("b", types.NewShare("b", elem(1)))
	m.InsertShare("a", types.NewShare("a", elem(2)))
	m.InsertPrivateValue("z", elem(3))

	require.Equal(t, []string{"a", "b"}, m.ShareIDs())
	require.Equal(t, []string{"z"}, m.PrivateIDs())
	require.Empty(t, m.TripleIDs())
}

func Test_Machine_Fingerprint(t *testing.T) {
	a := newTestMachine("alice")
	b := newTestMachine("alice")

	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	require.NoError(t, a.InsertPrivateValue("x", elem(1)))
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	require.NoError(t, b.InsertPrivateValue("x", elem(1)))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	// the machine identifier is part of the fingerprint
	require.NotEqual(t,
		newTestMachine("alice").Fingerprint(),
		newTestMachine("carol").Fingerprint())
}
