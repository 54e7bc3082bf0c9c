package vm

import (
	"crypto/sha256"
	"encoding/hex"

	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/storage"
	"go.dedis.ch/mpcsim/types"
	"golang.org/x/xerrors"
)

var (
	// ErrDuplicateIdentifier reports an insert under an identifier that is
	// already bound in the namespace the operation checks.
	ErrDuplicateIdentifier = xerrors.New("identifier already in use")

	// ErrMissingIdentifier reports a lookup of an identifier that has no
	// binding.
	ErrMissingIdentifier = xerrors.New("identifier not registered")
)

// Machine is one simulated participant: an isolated memory with private
// values, shares, and pooled multiplication triples, each keyed by logical
// string identifiers. Machines never reach into each other; only the
// protocol functions move data between them.
type Machine[T field.Element[T]] struct {
	id string

	privateValues storage.KVStore[T]
	shares        storage.KVStore[types.Share[T]]
	triples       storage.KVStore[types.Triple[T]]
}

// NewMachine creates a participant with the given identifier and empty
// memories.
func NewMachine[T field.Element[T]](id string) *Machine[T] {
	return &Machine[T]{
		id:            id,
		privateValues: storage.NewBasicKV[T](),
		shares:        storage.NewBasicKV[types.Share[T]](),
		triples:       storage.NewBasicKV[types.Triple[T]](),
	}
}

// ID returns the machine identifier.
func (m *Machine[T]) ID() string {
	return m.id
}

// InsertPrivateValue registers a private value under id. Only the share
// namespace is collision-checked: re-registering a private identifier
// overwrites the previous value.
func (m *Machine[T]) InsertPrivateValue(id string, value T) error {
	if m.shares.Has(id) {
		return xerrors.Errorf("private value %s on %s: %w", id, m.id, ErrDuplicateIdentifier)
	}

	return m.privateValues.Put(id, value)
}

// InsertShare stores this machine's share of id.
func (m *Machine[T]) InsertShare(id string, share types.Share[T]) error {
	if m.shares.Has(id) {
		return xerrors.Errorf("share %s on %s: %w", id, m.id, ErrDuplicateIdentifier)
	}

	return m.shares.Put(id, share)
}

// GetPrivateValue returns the private value registered under id.
func (m *Machine[T]) GetPrivateValue(id string) (T, error) {
	value, ok := m.privateValues.Get(id)
	if !ok {
		return value, xerrors.Errorf("private value %s on %s: %w", id, m.id, ErrMissingIdentifier)
	}

	return value, nil
}

// GetShare returns this machine's share of id.
func (m *Machine[T]) GetShare(id string) (types.Share[T], error) {
	share, ok := m.shares.Get(id)
	if !ok {
		return share, xerrors.Errorf("share %s on %s: %w", id, m.id, ErrMissingIdentifier)
	}

	return share, nil
}

// HasShare reports whether id is bound in the share namespace.
func (m *Machine[T]) HasShare(id string) bool {
	return m.shares.Has(id)
}

// RemoveShare deletes this machine's share of id, freeing the identifier
// for reuse. Removing an absent identifier is a no-op.
func (m *Machine[T]) RemoveShare(id string) {
	m.shares.Del(id)
}

// InsertTriple stores a pooled multiplication triple under id.
func (m *Machine[T]) InsertTriple(id string, triple types.Triple[T]) error {
	if m.triples.Has(id) {
		return xerrors.Errorf("triple %s on %s: %w", id, m.id, ErrDuplicateIdentifier)
	}

	return m.triples.Put(id, triple)
}

// GetTriple returns the pooled triple registered under id.
func (m *Machine[T]) GetTriple(id string) (types.Triple[T], error) {
	triple, ok := m.triples.Get(id)
	if !ok {
		return triple, xerrors.Errorf("triple %s on %s: %w", id, m.id, ErrMissingIdentifier)
	}

	return triple, nil
}

// RemoveTriple deletes the pooled triple under id. Removing an absent
// identifier is a no-op.
func (m *Machine[T]) RemoveTriple(id string) {
	m.triples.Del(id)
}

// PrivateIDs returns the private-value identifiers in sorted order.
func (m *Machine[T]) PrivateIDs() []string {
	return m.privateValues.Keys()
}

// ShareIDs returns the share identifiers in sorted order.
func (m *Machine[T]) ShareIDs() []string {
	return m.shares.Keys()
}

// TripleIDs returns the pooled-triple identifiers in sorted order.
func (m *Machine[T]) TripleIDs() []string {
	return m.triples.Keys()
}

// Fingerprint digests the machine's identifier and entire memory. Two runs
// leaving a machine in the same state produce the same fingerprint.
func (m *Machine[T]) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(m.id))
	h.Write(m.privateValues.Hash())
	h.Write(m.shares.Hash())
	h.Write(m.triples.Hash())

	return hex.EncodeToString(h.Sum(nil))
}
