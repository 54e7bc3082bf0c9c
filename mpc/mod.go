// Package mpc implements the protocols of an additive secret-sharing scheme
// with passive security: share distribution, reconstruction, linear
// operations, and multiplication with Beaver triples. The parties are
// in-process virtual machines, so "sending" a share is a direct write into
// the receiver's memory. Correlated randomness is not produced by a secure
// protocol; it is simulated with a seeded generator.
package mpc

import (
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/types"
	"go.dedis.ch/mpcsim/vm"
	"golang.org/x/xerrors"
)

var (
	// ErrOwnerNotFound reports that no party in the set carries the
	// requested owner identifier.
	ErrOwnerNotFound = xerrors.New("party with that id does not exist")

	// ErrNoParties reports a protocol invocation over an empty party set.
	ErrNoParties = xerrors.New("no parties given")
)

// findParty returns the party whose machine ID matches id.
func findParty[T field.Element[T]](parties []*vm.Machine[T], id string) (*vm.Machine[T], error) {
	for _, party := range parties {
		if party.ID() == id {
			return party, nil
		}
	}

	return nil, xerrors.Errorf("owner %s: %w", id, ErrOwnerNotFound)
}

// checkParties rejects an empty party set.
func checkParties[T field.Element[T]](parties []*vm.Machine[T]) error {
	if len(parties) == 0 {
		return ErrNoParties
	}
	return nil
}

// checkSharesExist verifies that every party holds a share for each id.
func checkSharesExist[T field.Element[T]](parties []*vm.Machine[T], ids ...string) error {
	for _, party := range parties {
		for _, id := range ids {
			_, err := party.GetShare(id)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSharesFree verifies that no party has a share bound to any of the
// ids, so a following insert pass cannot fail halfway through the party set.
func checkSharesFree[T field.Element[T]](parties []*vm.Machine[T], ids ...string) error {
	for _, party := range parties {
		for _, id := range ids {
			if party.HasShare(id) {
				return xerrors.Errorf("share %s on %s: %w", id, party.ID(),
					vm.ErrDuplicateIdentifier)
			}
		}
	}
	return nil
}

// removeShares deletes the given share identifiers from every party.
func removeShares[T field.Element[T]](parties []*vm.Machine[T], ids ...string) {
	for _, party := range parties {
		for _, id := range ids {
			party.RemoveShare(id)
		}
	}
}

// copyShares rebinds every party's share of from under the identifier to,
// leaving from in place.
func copyShares[T field.Element[T]](parties []*vm.Machine[T], from, to string) error {
	err := checkSharesExist(parties, from)
	if err != nil {
		return err
	}
	err = checkSharesFree(parties, to)
	if err != nil {
		return err
	}

	for _, party := range parties {
		share, err := party.GetShare(from)
		if err != nil {
			return err
		}

		err = party.InsertShare(to, types.NewShare(to, share.Value))
		if err != nil {
			return err
		}
	}

	return nil
}
