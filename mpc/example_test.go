package mpc_test

import (
	"fmt"

	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/mpc"
	"go.dedis.ch/mpcsim/prg"
	"go.dedis.ch/mpcsim/types"
	"go.dedis.ch/mpcsim/vm"
)

// Two parties add their private inputs without revealing them to each other.
func Example_secureAddition() {
	rng := prg.New(nil)

	alice := vm.NewMachine[field.Mersenne61]("alice")
	bob := vm.NewMachine[field.Mersenne61]("bob")
	parties := []*vm.Machine[field.Mersenne61]{alice, bob}

	alice.InsertPrivateValue("a", field.NewMersenne61(4))
	mpc.DistributeShares("a", "alice", parties, rng)

	bob.InsertPrivateValue("b", field.NewMersenne61(2))
	mpc.DistributeShares("b", "bob", parties, rng)

	mpc.AddProtocol(parties, "a", "b", "c")

	sum, _ := mpc.ReconstructShare(parties, "c")
	fmt.Println("a + b =", sum)

	// Output: a + b = 6
}

// Multiplication opens only the masked differences x-a and y-b; the inputs
// themselves stay hidden behind the triple.
func Example_secureMultiplication() {
	rng := prg.New([]byte{1, 2})

	alice := vm.NewMachine[field.Mersenne61]("alice")
	bob := vm.NewMachine[field.Mersenne61]("bob")
	parties := []*vm.Machine[field.Mersenne61]{alice, bob}

	alice.InsertPrivateValue("a", field.NewMersenne61(4))
	mpc.DistributeShares("a", "alice", parties, rng)

	bob.InsertPrivateValue("b", field.NewMersenne61(2))
	mpc.DistributeShares("b", "bob", parties, rng)

	ids := types.TripleIDs{A: "x1", B: "x2", C: "x3"}
	mpc.GenerateTriple(parties, ids, rng)
	mpc.MultProtocol(parties, "a", "b", "c", ids)

	product, _ := mpc.ReconstructShare(parties, "c")
	fmt.Println("a * b =", product)

	// Output: a * b = 8
}

// Whole arithmetic expressions evaluate in one call; triples are generated
// on the fly for every multiplication.
func Example_evaluate() {
	rng := prg.New([]byte{1, 2})

	alice := vm.NewMachine[field.Mersenne61]("alice")
	bob := vm.NewMachine[field.Mersenne61]("bob")
	parties := []*vm.Machine[field.Mersenne61]{alice, bob}

	alice.InsertPrivateValue("a", field.NewMersenne61(4))
	mpc.DistributeShares("a", "alice", parties, rng)

	bob.InsertPrivateValue("b", field.NewMersenne61(2))
	mpc.DistributeShares("b", "bob", parties, rng)

	mpc.Evaluate(parties, "a*b + 3", "r", rng)

	result, _ := mpc.ReconstructShare(parties, "r")
	fmt.Println("a*b + 3 =", result)

	// Output: a*b + 3 = 11
}
