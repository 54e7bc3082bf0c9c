package sim

import (
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Step is one scenario operation. Which fields are read depends on Op:
//
//	share       ID, Owner
//	pub         ID, Value
//	add         A, B, Result
//	sub         A, B, Result
//	scale       ID, Value, Result
//	mult        A, B, Result
//	eval        Expr, Result
//	reconstruct ID
type Step struct {
	Op     string
	ID     string
	Owner  string
	A      string
	B      string
	Result string
	Value  uint64
	Expr   string
}

// Config describes a scenario: the participants, the seed of the shared
// randomness source, the private values each party starts with, and the
// steps to execute.
type Config struct {
	Name    string
	Seed    string
	Parties []string
	Values  map[string]map[string]uint64
	Steps   []Step
}

// ConfigFromYAML loads a scenario from a YAML file.
func ConfigFromYAML(path string) (Config, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return Config{}, xerrors.Errorf("failed to read scenario file: %v", err)
	}

	conf := Config{}

	err = yaml.Unmarshal(yamlFile, &conf)
	if err != nil {
		return Config{}, xerrors.Errorf("failed to parse scenario: %v", err)
	}

	if conf.Name == "" {
		conf.Name = "simulation"
	}

	return conf, nil
}
