package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"go.dedis.ch/mpcsim/sim"
)

// -----------------------------------------------------------------------------
// Simulation CMD Prompt

var prompt = &survey.Select{
	Message: "What do you want to do ?",
	Options: actionOpts,
}

var actionOpts = []string{
	"🦑 Set a private value",
	"🐙 Share a private value",
	"🐋 Share a public constant",
	"🦈 Add two shared values",
	"🐬 Subtract two shared values",
	"🐠 Scale a shared value",
	"🐡 Multiply two shared values",
	"🐚 Evaluate an expression",
	"🦀 Reconstruct a value",
	"🐳 Show memory",
	"🐢 Show fingerprint",
	"🍃 Exit",
}

var actions = map[string]func(*sim.Simulation) error{
	actionOpts[0]:  setValue,
	actionOpts[1]:  shareValue,
	actionOpts[2]:  sharePublic,
	actionOpts[3]:  addShares,
	actionOpts[4]:  subShares,
	actionOpts[5]:  scaleShares,
	actionOpts[6]:  multShares,
	actionOpts[7]:  evalExpr,
	actionOpts[8]:  reconstructValue,
	actionOpts[9]:  showMemory,
	actionOpts[10]: showFingerprint,
	actionOpts[11]: exitSim,
}

// -----------------------------------------------------------------------------
// Start CMD

// StartCMD builds the simulation, runs the scenario steps, then hands
// control to an interactive prompt.
func StartCMD(conf sim.Config) {
	s, err := sim.NewSimulation(conf)
	if err != nil {
		printError(err)
		return
	}

	fmt.Println("##########################################")
	fmt.Println("######     Starting MPC Simulator   ######")
	fmt.Println("##########################################")
	fmt.Println("Run ID: ", s.ID())
	fmt.Println("Parties: ", strings.Join(conf.Parties, ", "))
	fmt.Println()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("bye 👋")
		os.Exit(0)
	}()

	err = s.Run(conf.Steps)
	if err != nil {
		printError(err)
		return
	}

	var action string
	for {
		err := survey.AskOne(prompt, &action)
		if err != nil {
			printError(err)
			return
		}

		method := actions[action]
		err = method(s)
		if err != nil {
			printError(err)
		}
	}
}

// -----------------------------------------------------------------------------
// Run CMD

// RunCMD executes a scenario to completion and prints every opened value,
// the final memory of each party, and the run fingerprint.
func RunCMD(conf sim.Config) error {
	s, err := sim.NewSimulation(conf)
	if err != nil {
		return err
	}

	err = s.Run(conf.Steps)
	if err != nil {
		return err
	}

	results := s.Results()
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("%s = %d\n", id, results[id])
	}

	fmt.Println()
	fmt.Println(s.MemoryTable())
	fmt.Println("Fingerprint: ", s.Fingerprint())

	return nil
}
