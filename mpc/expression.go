package mpc

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/types"
	"go.dedis.ch/mpcsim/vm"
	"golang.org/x/xerrors"
)

var (
	noInvalidChar = regexp.MustCompile(`^[a-zA-Z0-9_\+\-\*\/\^()\.]+$`).MatchString
	isOperand     = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`).MatchString
)

// Evaluate computes an infix expression over secret-shared values and
// stores shares of the result under idResult. Operands are share
// identifiers or non-negative integer literals; literals enter the
// computation as public values. Supported operators are + - * with the
// usual precedence and parentheses; every multiplication consumes one
// freshly generated triple. All intermediate shares live under a scratch
// namespace unique to this invocation and are removed from every party
// before returning.
func Evaluate[T field.Element[T]](parties []*vm.Machine[T], expr, idResult string,
	rng io.Reader) error {

	err := checkParties(parties)
	if err != nil {
		return err
	}

	postfix, err := infixToPostfix(expr)
	if err != nil {
		return err
	}

	err = checkSharesFree(parties, idResult)
	if err != nil {
		return err
	}

	log.Debug().Msgf("evaluating %s -> %s (postfix %v)", expr, idResult, postfix)

	run := "eval-" + xid.New().String()
	scratch := []string{}
	defer func() {
		removeShares(parties, scratch...)
	}()

	step := 0
	newScratch := func() string {
		id := fmt.Sprintf("%s|%d", run, step)
		step++
		scratch = append(scratch, id)
		return id
	}

	s := Stack{}
	for _, token := range postfix {
		switch token {
		case "+", "-", "*":
			if len(s) < 2 {
				return xerrors.Errorf("expression %s is invalid", expr)
			}

			idB := s.Top()
			s.Pop()
			idA := s.Top()
			s.Pop()

			id := newScratch()

			switch token {
			case "+":
				err = AddProtocol(parties, idA, idB, id)
			case "-":
				err = SubtractProtocol(parties, idA, idB, id)
			case "*":
				ids := types.TripleIDs{A: id + "|a", B: id + "|b", C: id + "|c"}
				scratch = append(scratch, ids.A, ids.B, ids.C)

				err = GenerateTriple(parties, ids, rng)
				if err == nil {
					err = MultProtocol(parties, idA, idB, id, ids)
				}
			}
			if err != nil {
				return err
			}

			s.Push(id)

		case "/", "^":
			return xerrors.Errorf("operator %s is not supported", token)

		default:
			value, convErr := strconv.ParseUint(token, 10, 64)
			if convErr == nil {
				var zero T

				id := newScratch()
				err := DistributePubValue(zero.New(value), id, parties)
				if err != nil {
					return err
				}

				s.Push(id)
				continue
			}

			err := checkSharesExist(parties, token)
			if err != nil {
				return err
			}

			s.Push(token)
		}
	}

	if len(s) != 1 {
		return xerrors.Errorf("expression %s is invalid", expr)
	}

	return copyShares(parties, s.Top(), idResult)
}

// infixToPostfix converts an infix expression to postfix notation.
// '+' and '-' are binary only: "-1" and "3*(-2)" are invalid.
func infixToPostfix(infix string) ([]string, error) {
	infix = strings.ReplaceAll(infix, " ", "")
	if infix == "" {
		return nil, xerrors.Errorf("expression is empty")
	}
	if !noInvalidChar(infix) {
		return nil, xerrors.Errorf("expression contains an illegal character")
	}

	s := Stack{}
	postfix := []string{}

	operand := ""
	for _, char := range infix {
		opchar := string(char)

		// operands accumulate until an operator shows up
		if isOperand(opchar) {
			operand += opchar
			continue
		}
		if operand != "" {
			postfix = append(postfix, operand)
			operand = ""
		}

		switch {
		case char == '(':
			s.Push(opchar)

		case char == ')':
			for !s.IsEmpty() && s.Top() != "(" {
				postfix = append(postfix, s.Top())
				s.Pop()
			}
			if !s.Pop() {
				return nil, xerrors.Errorf("expression has unbalanced parentheses")
			}

		default:
			for !s.IsEmpty() && prec(opchar) <= prec(s.Top()) {
				postfix = append(postfix, s.Top())
				s.Pop()
			}
			s.Push(opchar)
		}
	}
	if operand != "" {
		postfix = append(postfix, operand)
	}

	for !s.IsEmpty() {
		if s.Top() == "(" {
			return nil, xerrors.Errorf("expression has unbalanced parentheses")
		}
		postfix = append(postfix, s.Top())
		s.Pop()
	}

	return postfix, nil
}

type Stack []string

// IsEmpty: check if stack is empty
func (st *Stack) IsEmpty() bool {
	return len(*st) == 0
}

// Push a new value onto the stack
func (st *Stack) Push(str string) {
	*st = append(*st, str)
}

// Remove top element of stack. Return false if stack is empty.
func (st *Stack) Pop() bool {
	if st.IsEmpty() {
		return false
	}

	*st = (*st)[:len(*st)-1]
	return true
}

// Return top element of stack. Return "" if stack is empty.
func (st *Stack) Top() string {
	if st.IsEmpty() {
		return ""
	}

	return (*st)[len(*st)-1]
}

// prec returns the precedence of operators
func prec(s string) int {
	switch s {
	case "^":
		return 3
	case "/", "*":
		return 2
	case "+", "-":
		return 1
	default:
		return -1
	}
}
