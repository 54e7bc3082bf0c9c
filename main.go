package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cli "go.dedis.ch/mpcsim/cmd"
	"go.dedis.ch/mpcsim/sim"
)

func main() {
	command := &cobra.Command{
		Use: "mpcsim",
	}
	addStartCmd(command)
	addRunCmd(command)

	err := command.Execute()
	if err != nil {
		panic(err)
	}
}

// addStartCmd starts an interactive simulation
func addStartCmd(command *cobra.Command) {
	var scenario string
	var parties []string
	var seed string
	var verbose bool

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start an interactive MPC simulation",
		Long:  "Start an interactive MPC simulation and perform protocol operations from a prompt",
		Args:  cobra.MinimumNArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			setLogLevel(verbose)

			conf, err := loadConfig(scenario, parties, seed)
			if err != nil {
				panic(err)
			}

			cli.StartCMD(conf)
		},
	}

	startCmd.Flags().StringVarP(&scenario, "scenario", "c", "",
		"Load parties, values and steps from a scenario YAML file")
	startCmd.Flags().StringSliceVarP(&parties, "parties", "p",
		[]string{"alice", "bob"}, "Names of the participating parties")
	startCmd.Flags().StringVarP(&seed, "seed", "s", "",
		"Seed of the shared randomness source")
	startCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	command.AddCommand(startCmd)
}

// addRunCmd executes a scenario file to completion
func addRunCmd(command *cobra.Command) {
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario to completion",
		Long:  "Run a scenario YAML file to completion and print the opened values",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			setLogLevel(verbose)

			conf, err := sim.ConfigFromYAML(args[0])
			if err != nil {
				panic(err)
			}

			err = cli.RunCMD(conf)
			if err != nil {
				panic(err)
			}
		},
	}

	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	command.AddCommand(runCmd)
}

func setLogLevel(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
}

func loadConfig(scenario string, parties []string, seed string) (sim.Config, error) {
	if scenario != "" {
		return sim.ConfigFromYAML(scenario)
	}

	return sim.Config{
		Name:    "interactive",
		Seed:    seed,
		Parties: parties,
	}, nil
}
