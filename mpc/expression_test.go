package mpc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/mpcsim/prg"
	"go.dedis.ch/mpcsim/vm"
)

func Test_Infix_To_Postfix(t *testing.T) {
	infix := []string{
		"a+b",
		"a + b*  c + d",
		"aa+bb*(cc^dd-ee)^(ff + gg  * hh )-ii",
	}
	expected := [][]string{
		{"a", "b", "+"},
		{"a", "b", "c", "*", "+", "d", "+"},
		{"aa", "bb", "cc", "dd", "^", "ee", "-", "ff", "gg", "hh", "*", "+", "^", "*", "+", "ii", "-"},
	}

	for i, test := range infix {
		postfix, err := infixToPostfix(test)
		fmt.Printf("test %d, %s infix has %s postfix\n", i, test, postfix)
		require.NoError(t, err)
		require.Equal(t, expected[i], postfix)
	}
}

func Test_Infix_To_Postfix_Rejects(t *testing.T) {
	_, err := infixToPostfix("a + b)")
	require.Error(t, err)

	_, err = infixToPostfix("(a + b")
	require.Error(t, err)

	_, err = infixToPostfix("a $ b")
	require.Error(t, err)

	_, err = infixToPostfix("  ")
	require.Error(t, err)
}

func Test_MPC_Evaluate(t *testing.T) {
	parties := newParties("alice", "bob")
	rng := prg.New([]byte("eval"))

	require.NoError(t, parties[0].InsertPrivateValue("a", fp(4)))
	require.NoError(t, DistributeShares("a", "alice", parties, rng))
	require.NoError(t, parties[1].InsertPrivateValue("b", fp(2)))
	require.NoError(t, DistributeShares("b", "bob", parties, rng))
	require.NoError(t, parties[1].InsertPrivateValue("c", fp(3)))
	require.NoError(t, DistributeShares("c", "bob", parties, rng))

	require.NoError(t, Evaluate(parties, "a*b + c", "result", rng))

	value, err := ReconstructShare(parties, "result")
	require.NoError(t, err)
	require.Equal(t, uint64(11), value.Value())

	// operand shares are untouched and no scratch is left behind
	for _, party := range parties {
		require.Equal(t, []string{"a", "b", "c", "result"}, party.ShareIDs())
	}
}

func Test_MPC_Evaluate_Literals(t *testing.T) {
	parties := newParties("alice", "bob")
	rng := prg.New([]byte("literals"))

	require.NoError(t, parties[0].InsertPrivateValue("a", fp(4)))
	require.NoError(t, DistributeShares("a", "alice", parties, rng))

	require.NoError(t, Evaluate(parties, "2*a + 1", "r", rng))

	value, err := ReconstructShare(parties, "r")
	require.NoError(t, err)
	require.Equal(t, uint64(9), value.Value())
}

func Test_MPC_Evaluate_Parentheses(t *testing.T) {
	parties := newParties("alice", "bob")
	rng := prg.New([]byte("parens"))

	require.NoError(t, parties[0].InsertPrivateValue("a", fp(4)))
	require.NoError(t, DistributeShares("a", "alice", parties, rng))
	require.NoError(t, parties[1].InsertPrivateValue("b", fp(2)))
	require.NoError(t, DistributeShares("b", "bob", parties, rng))

	require.NoError(t, Evaluate(parties, "(a+b)*(a-b)", "r", rng))

	value, err := ReconstructShare(parties, "r")
	require.NoError(t, err)
	require.Equal(t, uint64(12), value.Value())
}

func Test_MPC_Evaluate_Single_Variable(t *testing.T) {
	parties := newParties("alice", "bob")
	rng := prg.New([]byte("single"))

	require.NoError(t, parties[0].InsertPrivateValue("a", fp(4)))
	require.NoError(t, DistributeShares("a", "alice", parties, rng))

	require.NoError(t, Evaluate(parties, "a", "copy", rng))

	value, err := ReconstructShare(parties, "copy")
	require.NoError(t, err)
	require.Equal(t, uint64(4), value.Value())

	// the source shares are still in place
	value, err = ReconstructShare(parties, "a")
	require.NoError(t, err)
	require.Equal(t, uint64(4), value.Value())
}

func Test_MPC_Evaluate_Unsupported_Operator(t *testing.T) {
	parties := newParties("alice", "bob")
	rng := prg.New([]byte("unsupported"))

	require.NoError(t, parties[0].InsertPrivateValue("a", fp(4)))
	require.NoError(t, DistributeShares("a", "alice", parties, rng))
	require.NoError(t, parties[1].InsertPrivateValue("b", fp(2)))
	require.NoError(t, DistributeShares("b", "bob", parties, rng))

	err := Evaluate(parties, "a/b", "r", rng)
	require.ErrorContains(t, err, "not supported")

	err = Evaluate(parties, "a^b", "r", rng)
	require.ErrorContains(t, err, "not supported")

	// nothing was written and no scratch is left behind
	for _, party := range parties {
		require.Equal(t, []string{"a", "b"}, party.ShareIDs())
	}
}

func Test_MPC_Evaluate_Unknown_Variable(t *testing.T) {
	parties := newParties("alice", "bob")

	err := Evaluate(parties, "a+b", "r", prg.New(nil))
	require.ErrorIs(t, err, vm.ErrMissingIdentifier)
}

func Test_MPC_Evaluate_Invalid_Expression(t *testing.T) {
	parties := newParties("alice", "bob")
	rng := prg.New(nil)

	require.NoError(t, parties[0].InsertPrivateValue("a", fp(4)))
	require.NoError(t, DistributeShares("a", "alice", parties, rng))

	err := Evaluate(parties, "a+", "r", rng)
	require.Error(t, err)

	for _, party := range parties {
		require.Equal(t, []string{"a"}, party.ShareIDs())
	}
}
