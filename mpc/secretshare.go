package mpc

import (
	"io"

	"github.com/rs/zerolog/log"
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/types"
	"go.dedis.ch/mpcsim/vm"
)

// DistributeShares splits the private value registered under idVar on the
// party idOwner into additive shares and stores one in every party's share
// memory, under idVar as well. The first len(parties)-1 shares are random
// field elements; the last party receives the value minus their sum, so the
// full set reconstructs the value.
func DistributeShares[T field.Element[T]](idVar, idOwner string,
	parties []*vm.Machine[T], rng io.Reader) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	owner, err := findParty(parties, idOwner)
	if err != nil {
		return err
	}

	value, err := owner.GetPrivateValue(idVar)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, idVar)
	if err != nil {
		return err
	}

	log.Debug().Msgf("distributing shares of %s owned by %s among %d parties",
		idVar, idOwner, len(parties))

	var zero T
	sum := zero.New(0)

	shares := make([]types.Share[T], 0, len(parties))
	for i := 0; i < len(parties)-1; i++ {
		random, err := zero.Random(rng)
		if err != nil {
			return err
		}

		sum = sum.Add(random)
		shares = append(shares, types.NewShare(idVar, random))
	}

	shares = append(shares, types.NewShare(idVar, value.Subtract(sum)))

	for i, party := range parties {
		err := party.InsertShare(idVar, shares[i])
		if err != nil {
			return err
		}
	}

	return nil
}

// SimulateRandomDist splits value into additive shares under id the way a
// trusted dealer would: the value never enters any private memory. The
// adjusted share lands on the first party.
func SimulateRandomDist[T field.Element[T]](id string, parties []*vm.Machine[T],
	value T, rng io.Reader) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, id)
	if err != nil {
		return err
	}

	var zero T
	sum := zero.New(0)

	shares := make([]types.Share[T], 0, len(parties))
	for i := 0; i < len(parties)-1; i++ {
		random, err := zero.Random(rng)
		if err != nil {
			return err
		}

		sum = sum.Add(random)
		shares = append(shares, types.NewShare(id, random))
	}

	shares = append(shares, types.NewShare(id, value.Subtract(sum)))

	for i, party := range parties {
		err := party.InsertShare(id, shares[len(shares)-1-i])
		if err != nil {
			return err
		}
	}

	return nil
}

// DistributePubValue gives every party a share of a publicly known value:
// the first party holds the value itself, all others hold zero.
func DistributePubValue[T field.Element[T]](value T, id string,
	parties []*vm.Machine[T]) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, id)
	if err != nil {
		return err
	}

	var zero T

	err = parties[0].InsertShare(id, types.NewShare(id, zero.New(value.Value())))
	if err != nil {
		return err
	}

	for _, party := range parties[1:] {
		err := party.InsertShare(id, types.NewShare(id, zero.New(0)))
		if err != nil {
			return err
		}
	}

	return nil
}

// ReconstructShare opens the value shared under id by summing every party's
// share. This is the only operation that reveals a secret; whether a value
// may be opened is protocol semantics, not something the engine checks.
func ReconstructShare[T field.Element[T]](parties []*vm.Machine[T], id string) (T, error) {
	var zero T

	err := checkParties(parties)
	if err != nil {
		return zero, err
	}

	value := zero.New(0)
	for _, party := range parties {
		share, err := party.GetShare(id)
		if err != nil {
			return zero, err
		}

		value = value.Add(share.Value)
	}

	log.Debug().Msgf("reconstructed %s = %d from %d shares",
		id, value.Value(), len(parties))

	return value, nil
}
