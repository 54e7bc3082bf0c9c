// Package sim drives full secret-sharing scenarios over a set of virtual
// machines: it builds the parties, loads their private values, executes
// scenario steps, and records every opened value.
package sim

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/markkurossi/tabulate"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/mpcsim/field"
	"go.dedis.ch/mpcsim/mpc"
	"go.dedis.ch/mpcsim/prg"
	"go.dedis.ch/mpcsim/vm"
	"golang.org/x/xerrors"
)

// Fp is the field every simulation computes over.
type Fp = field.Mersenne61

// Simulation owns the machines of a scenario and the shared randomness
// source feeding the protocols.
type Simulation struct {
	id      string
	conf    Config
	prg     *prg.Prg
	parties []*vm.Machine[Fp]
	byName  map[string]*vm.Machine[Fp]
	results map[string]uint64
}

// NewSimulation builds one machine per declared party and loads the
// initial private values.
func NewSimulation(conf Config) (*Simulation, error) {
	if len(conf.Parties) == 0 {
		return nil, xerrors.Errorf("scenario %s: %w", conf.Name, mpc.ErrNoParties)
	}

	s := &Simulation{
		id:      xid.New().String(),
		conf:    conf,
		prg:     prg.New([]byte(conf.Seed)),
		parties: make([]*vm.Machine[Fp], 0, len(conf.Parties)),
		byName:  make(map[string]*vm.Machine[Fp], len(conf.Parties)),
		results: make(map[string]uint64),
	}

	for _, name := range conf.Parties {
		if _, ok := s.byName[name]; ok {
			return nil, xerrors.Errorf("party %s declared twice", name)
		}

		machine := vm.NewMachine[Fp](name)
		s.parties = append(s.parties, machine)
		s.byName[name] = machine
	}

	for party, values := range conf.Values {
		machine, ok := s.byName[party]
		if !ok {
			return nil, xerrors.Errorf("values declared for party %s: %w",
				party, mpc.ErrOwnerNotFound)
		}

		for id, value := range values {
			err := machine.InsertPrivateValue(id, field.NewMersenne61(value))
			if err != nil {
				return nil, err
			}
		}
	}

	log.Info().Msgf("[%s] scenario %s ready with %d parties",
		s.id, conf.Name, len(s.parties))

	return s, nil
}

// ID returns the unique identifier of this run.
func (s *Simulation) ID() string {
	return s.id
}

// Name returns the scenario name.
func (s *Simulation) Name() string {
	return s.conf.Name
}

// Machines returns the participant machines in scenario order.
func (s *Simulation) Machines() []*vm.Machine[Fp] {
	return s.parties
}

// Machine returns the machine of the named party.
func (s *Simulation) Machine(name string) (*vm.Machine[Fp], error) {
	machine, ok := s.byName[name]
	if !ok {
		return nil, xerrors.Errorf("party %s: %w", name, mpc.ErrOwnerNotFound)
	}

	return machine, nil
}

// SetPrivateValue registers a private value on the named party.
func (s *Simulation) SetPrivateValue(party, id string, value uint64) error {
	machine, err := s.Machine(party)
	if err != nil {
		return err
	}

	return machine.InsertPrivateValue(id, field.NewMersenne61(value))
}

// Share secret-shares the owner's private value among all parties.
func (s *Simulation) Share(id, owner string) error {
	return mpc.DistributeShares(id, owner, s.parties, s.prg)
}

// SharePublic hands out the degenerate sharing of a public value.
func (s *Simulation) SharePublic(id string, value uint64) error {
	return mpc.DistributePubValue(field.NewMersenne61(value), id, s.parties)
}

// Add computes shares of a+b under result.
func (s *Simulation) Add(a, b, result string) error {
	return mpc.AddProtocol(s.parties, a, b, result)
}

// Sub computes shares of a-b under result.
func (s *Simulation) Sub(a, b, result string) error {
	return mpc.SubtractProtocol(s.parties, a, b, result)
}

// Scale computes shares of value*id under result.
func (s *Simulation) Scale(id string, value uint64, result string) error {
	return mpc.MultByConstProtocol(s.parties, field.NewMersenne61(value), id, result)
}

// Mult computes shares of a*b under result. It stocks one fresh triple
// and spends it on the multiplication.
func (s *Simulation) Mult(a, b, result string) error {
	poolIDs, err := mpc.StockTriples(s.parties, 1, s.prg)
	if err != nil {
		return err
	}

	err = mpc.MultProtocolPooled(s.parties, a, b, result, poolIDs[0])
	if err != nil {
		for _, party := range s.parties {
			party.RemoveTriple(poolIDs[0])
		}

		return err
	}

	return nil
}

// Eval evaluates an arithmetic expression over shared values and stores
// the resulting shares under result.
func (s *Simulation) Eval(expr, result string) error {
	return mpc.Evaluate(s.parties, expr, result, s.prg)
}

// Reconstruct opens the value shared under id and records it in the run
// results.
func (s *Simulation) Reconstruct(id string) (uint64, error) {
	value, err := mpc.ReconstructShare(s.parties, id)
	if err != nil {
		return 0, err
	}

	s.results[id] = value.Value()

	log.Info().Msgf("[%s] reconstructed %s = %d", s.id, id, value.Value())

	return value.Value(), nil
}

// Results returns the values opened so far, keyed by identifier.
func (s *Simulation) Results() map[string]uint64 {
	return s.results
}

// Run executes the given steps in order and stops at the first failure.
func (s *Simulation) Run(steps []Step) error {
	for i, step := range steps {
		err := s.runStep(step)
		if err != nil {
			return xerrors.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}

	return nil
}

func (s *Simulation) runStep(step Step) error {
	switch step.Op {
	case "share":
		return s.Share(step.ID, step.Owner)
	case "pub":
		return s.SharePublic(step.ID, step.Value)
	case "add":
		return s.Add(step.A, step.B, step.Result)
	case "sub":
		return s.Sub(step.A, step.B, step.Result)
	case "scale":
		return s.Scale(step.ID, step.Value, step.Result)
	case "mult":
		return s.Mult(step.A, step.B, step.Result)
	case "eval":
		return s.Eval(step.Expr, step.Result)
	case "reconstruct":
		_, err := s.Reconstruct(step.ID)
		return err
	default:
		return xerrors.Errorf("unknown op %s", step.Op)
	}
}

// Fingerprint digests the memory of every machine. Two runs of the same
// scenario with the same seed end with the same fingerprint.
func (s *Simulation) Fingerprint() string {
	h := sha256.New()

	for _, party := range s.parties {
		h.Write([]byte(party.Fingerprint()))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// MemoryTable renders the memory of every machine as a table.
func (s *Simulation) MemoryTable() string {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Party").SetAlign(tabulate.ML)
	tab.Header("Private").SetAlign(tabulate.ML)
	tab.Header("Shares").SetAlign(tabulate.ML)
	tab.Header("Triples").SetAlign(tabulate.ML)

	for _, party := range s.parties {
		row := tab.Row()
		row.Column(party.ID())

		private := make([]string, 0)
		for _, id := range party.PrivateIDs() {
			value, err := party.GetPrivateValue(id)
			if err != nil {
				continue
			}
			private = append(private, fmt.Sprintf("%s=%d", id, value.Value()))
		}
		row.Column(strings.Join(private, ", "))

		shares := make([]string, 0)
		for _, id := range party.ShareIDs() {
			share, err := party.GetShare(id)
			if err != nil {
				continue
			}
			shares = append(shares, fmt.Sprintf("%s=%d", id, share.Value.Value()))
		}
		row.Column(strings.Join(shares, ", "))

		row.Column(strings.Join(party.TripleIDs(), ", "))
	}

	buf := new(bytes.Buffer)
	tab.Print(buf)

	return buf.String()
}
