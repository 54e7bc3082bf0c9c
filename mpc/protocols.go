package mpc

import (
	"io"

	"github.com/rs/zerolog/log"
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/types"
	"go.dedis.ch/mpcsim/vm"
)

// Scratch identifiers used by the composite protocols. They are removed
// from every party before the protocol returns, so consecutive invocations
// can reuse them. Caller-chosen identifiers must stay clear of these names.
const (
	scratchSubtraction = "subtraction"
	scratchEpsilon     = "epsilon"
	scratchDelta       = "delta"
	scratchT1          = "t1"
	scratchT2          = "t2"
	scratchSum         = "sum"
	scratchSumC        = "sumc"
	scratchEpsDelt     = "epsdelt"
)

// AddProtocol computes shares of the sum of the values shared under idA and
// idB. Additive shares add locally, so no communication is simulated.
func AddProtocol[T field.Element[T]](parties []*vm.Machine[T],
	idA, idB, idResult string) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesExist(parties, idA, idB)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, idResult)
	if err != nil {
		return err
	}

	for _, party := range parties {
		shareA, err := party.GetShare(idA)
		if err != nil {
			return err
		}

		shareB, err := party.GetShare(idB)
		if err != nil {
			return err
		}

		sum := shareA.Value.Add(shareB.Value)

		err = party.InsertShare(idResult, types.NewShare(idResult, sum))
		if err != nil {
			return err
		}
	}

	return nil
}

// MultByConstProtocol computes shares of the product of a public field
// element with the value shared under id. Each party scales its own share.
func MultByConstProtocol[T field.Element[T]](parties []*vm.Machine[T], value T,
	id, idResult string) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesExist(parties, id)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, idResult)
	if err != nil {
		return err
	}

	for _, party := range parties {
		share, err := party.GetShare(id)
		if err != nil {
			return err
		}

		product := share.Value.Multiply(value)

		err = party.InsertShare(idResult, types.NewShare(idResult, product))
		if err != nil {
			return err
		}
	}

	return nil
}

// SubtractProtocol computes shares of the value shared under idA minus the
// value shared under idB, as idA + (-1)*idB. The scratch identifier
// "subtraction" holds the scaled operand and is removed from every party
// before returning.
func SubtractProtocol[T field.Element[T]](parties []*vm.Machine[T],
	idA, idB, idResult string) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, scratchSubtraction)
	if err != nil {
		return err
	}
	defer removeShares(parties, scratchSubtraction)

	var zero T
	minusOne := zero.New(1).Negate()

	err = MultByConstProtocol(parties, minusOne, idB, scratchSubtraction)
	if err != nil {
		return err
	}

	return AddProtocol(parties, idA, scratchSubtraction, idResult)
}

// GenerateTriple hands out shares of a multiplication triple a*b = c under
// the three given identifiers. The triple comes from the simulated dealer,
// not from a preprocessing protocol: a and b are drawn from rng and only
// their shares reach the parties.
func GenerateTriple[T field.Element[T]](parties []*vm.Machine[T],
	ids types.TripleIDs, rng io.Reader) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, ids.A, ids.B, ids.C)
	if err != nil {
		return err
	}

	var zero T

	a, err := zero.Random(rng)
	if err != nil {
		return err
	}

	b, err := zero.Random(rng)
	if err != nil {
		return err
	}

	c := a.Multiply(b)

	log.Debug().Msgf("generated triple %s for %d parties", ids, len(parties))

	err = SimulateRandomDist(ids.A, parties, a, rng)
	if err != nil {
		return err
	}

	err = SimulateRandomDist(ids.B, parties, b, rng)
	if err != nil {
		return err
	}

	return SimulateRandomDist(ids.C, parties, c, rng)
}

// MultProtocol computes shares of the product of the values shared under
// idX and idY, consuming the multiplication triple shared under ids. The
// masked differences epsilon = x-a and delta = y-b are opened, then the
// parties assemble c + epsilon*b + delta*a + epsilon*delta with local
// operations only. The scratch identifiers epsilon, delta, t1, t2, sum,
// sumc and epsdelt are removed from every party before returning; the
// triple shares stay in place.
func MultProtocol[T field.Element[T]](parties []*vm.Machine[T],
	idX, idY, idResult string, ids types.TripleIDs) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesExist(parties, idX, idY, ids.A, ids.B, ids.C)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, idResult, scratchEpsilon, scratchDelta,
		scratchT1, scratchT2, scratchSum, scratchSumC, scratchEpsDelt,
		scratchSubtraction)
	if err != nil {
		return err
	}

	defer removeShares(parties, scratchEpsilon, scratchDelta, scratchT1,
		scratchT2, scratchSum, scratchSumC, scratchEpsDelt)

	log.Debug().Msgf("multiplication %s * %s -> %s with triple %s",
		idX, idY, idResult, ids)

	err = SubtractProtocol(parties, idX, ids.A, scratchEpsilon)
	if err != nil {
		return err
	}

	err = SubtractProtocol(parties, idY, ids.B, scratchDelta)
	if err != nil {
		return err
	}

	epsilon, err := ReconstructShare(parties, scratchEpsilon)
	if err != nil {
		return err
	}

	delta, err := ReconstructShare(parties, scratchDelta)
	if err != nil {
		return err
	}

	err = MultByConstProtocol(parties, epsilon, ids.B, scratchT1)
	if err != nil {
		return err
	}

	err = MultByConstProtocol(parties, delta, ids.A, scratchT2)
	if err != nil {
		return err
	}

	err = AddProtocol(parties, scratchT1, scratchT2, scratchSum)
	if err != nil {
		return err
	}

	err = AddProtocol(parties, scratchSum, ids.C, scratchSumC)
	if err != nil {
		return err
	}

	err = DistributePubValue(epsilon.Multiply(delta), scratchEpsDelt, parties)
	if err != nil {
		return err
	}

	return AddProtocol(parties, scratchSumC, scratchEpsDelt, idResult)
}
