package cmd

import (
	"fmt"
	"os"
	"strconv"

	"go.dedis.ch/mpcsim/sim"
)

// -----------------------------------------------------------------------------
// CMD Actions

func setValue(s *sim.Simulation) error {
	party, err := askString("Enter the party name: ")
	if err != nil {
		return err
	}

	id, err := askString("Enter the value identifier: ")
	if err != nil {
		return err
	}

	value, err := askValue("Enter the value: ")
	if err != nil {
		return err
	}

	return s.SetPrivateValue(party, id, value)
}

func shareValue(s *sim.Simulation) error {
	id, err := askString("Enter the value identifier: ")
	if err != nil {
		return err
	}

	owner, err := askString("Enter the owner name: ")
	if err != nil {
		return err
	}

	return s.Share(id, owner)
}

func sharePublic(s *sim.Simulation) error {
	id, err := askString("Enter the share identifier: ")
	if err != nil {
		return err
	}

	value, err := askValue("Enter the public value: ")
	if err != nil {
		return err
	}

	return s.SharePublic(id, value)
}

func addShares(s *sim.Simulation) error {
	a, b, result, err := askBinary()
	if err != nil {
		return err
	}

	return s.Add(a, b, result)
}

func subShares(s *sim.Simulation) error {
	a, b, result, err := askBinary()
	if err != nil {
		return err
	}

	return s.Sub(a, b, result)
}

func scaleShares(s *sim.Simulation) error {
	id, err := askString("Enter the share identifier: ")
	if err != nil {
		return err
	}

	value, err := askValue("Enter the constant: ")
	if err != nil {
		return err
	}

	result, err := askString("Enter the result identifier: ")
	if err != nil {
		return err
	}

	return s.Scale(id, value, result)
}

func multShares(s *sim.Simulation) error {
	a, b, result, err := askBinary()
	if err != nil {
		return err
	}

	return s.Mult(a, b, result)
}

func evalExpr(s *sim.Simulation) error {
	expr, err := askString("Enter the expression (no spaces): ")
	if err != nil {
		return err
	}

	result, err := askString("Enter the result identifier: ")
	if err != nil {
		return err
	}

	err = s.Eval(expr, result)
	if err != nil {
		return err
	}

	fmt.Printf("Shares of %s stored under %s\n", expr, result)
	return nil
}

func reconstructValue(s *sim.Simulation) error {
	id, err := askString("Enter the share identifier: ")
	if err != nil {
		return err
	}

	value, err := s.Reconstruct(id)
	if err != nil {
		return err
	}

	fmt.Printf("The value of %s is %d\n", id, value)
	return nil
}

func showMemory(s *sim.Simulation) error {
	fmt.Println(s.MemoryTable())
	return nil
}

func showFingerprint(s *sim.Simulation) error {
	fmt.Println("Fingerprint: ", s.Fingerprint())
	return nil
}

func exitSim(s *sim.Simulation) error {
	fmt.Println("bye 👋")
	os.Exit(0)
	return nil
}

// -----------------------------------------------------------------------------
// Utils

func askString(msg string) (string, error) {
	fmt.Println(msg)
	in := ""
	_, err := fmt.Scanln(&in)
	if err != nil {
		return "", err
	}

	return in, nil
}

func askValue(msg string) (uint64, error) {
	in, err := askString(msg)
	if err != nil {
		return 0, err
	}

	return strconv.ParseUint(in, 10, 64)
}

func askBinary() (string, string, string, error) {
	a, err := askString("Enter the first operand: ")
	if err != nil {
		return "", "", "", err
	}

	b, err := askString("Enter the second operand: ")
	if err != nil {
		return "", "", "", err
	}

	result, err := askString("Enter the result identifier: ")
	if err != nil {
		return "", "", "", err
	}

	return a, b, result, nil
}

func printError(err error) {
	fmt.Println("~~ERROR~~")
	fmt.Println(err)
}
