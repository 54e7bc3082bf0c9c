package mpc

import (
	"io"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/types"
	"go.dedis.ch/mpcsim/vm"
)

func poolTripleIDs(poolID string) types.TripleIDs {
	return types.TripleIDs{
		A: poolID + "|a",
		B: poolID + "|b",
		C: poolID + "|c",
	}
}

// StockTriples generates count multiplication triples ahead of time and
// parks each party's slices in its triple memory, every party using the
// same fresh identifier per triple. The share namespaces end up untouched.
// The returned identifiers are spent with MultProtocolPooled.
func StockTriples[T field.Element[T]](parties []*vm.Machine[T], count int,
	rng io.Reader) ([]string, error) {

	err := checkParties(parties)
	if err != nil {
		return nil, err
	}

	poolIDs := make([]string, 0, count)

	for i := 0; i < count; i++ {
		poolID := xid.New().String()
		ids := poolTripleIDs(poolID)

		err := GenerateTriple(parties, ids, rng)
		if err != nil {
			return nil, err
		}

		for _, party := range parties {
			a, err := party.GetShare(ids.A)
			if err != nil {
				return nil, err
			}

			b, err := party.GetShare(ids.B)
			if err != nil {
				return nil, err
			}

			c, err := party.GetShare(ids.C)
			if err != nil {
				return nil, err
			}

			err = party.InsertTriple(poolID, types.Triple[T]{A: a, B: b, C: c})
			if err != nil {
				return nil, err
			}
		}

		removeShares(parties, ids.A, ids.B, ids.C)
		poolIDs = append(poolIDs, poolID)
	}

	log.Debug().Msgf("stocked %d triples for %d parties", count, len(parties))

	return poolIDs, nil
}

// MultProtocolPooled runs MultProtocol on a pooled triple. The triple is
// loaded into scratch share identifiers for the Beaver step and deleted
// from every party's pool once the product is in place: a pooled triple
// spends exactly once.
func MultProtocolPooled[T field.Element[T]](parties []*vm.Machine[T],
	idX, idY, idResult, tripleID string) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	ids := poolTripleIDs(tripleID)

	err = checkSharesFree(parties, ids.A, ids.B, ids.C)
	if err != nil {
		return err
	}
	defer removeShares(parties, ids.A, ids.B, ids.C)

	for _, party := range parties {
		triple, err := party.GetTriple(tripleID)
		if err != nil {
			return err
		}

		err = party.InsertShare(ids.A, types.NewShare(ids.A, triple.A.Value))
		if err != nil {
			return err
		}

		err = party.InsertShare(ids.B, types.NewShare(ids.B, triple.B.Value))
		if err != nil {
			return err
		}

		err = party.InsertShare(ids.C, types.NewShare(ids.C, triple.C.Value))
		if err != nil {
			return err
		}
	}

	err = MultProtocol(parties, idX, idY, idResult, ids)
	if err != nil {
		return err
	}

	for _, party := range parties {
		party.RemoveTriple(tripleID)
	}

	return nil
}
