// mpcsimd exposes one running MPC simulation over HTTP so that a browser
// or curl can drive the protocols.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"go.dedis.ch/mpcsim/mpc"
	"go.dedis.ch/mpcsim/sim"
	"go.dedis.ch/mpcsim/vm"
)

type ValueRequest struct {
	Party string `json:"Party"`
	ID    string `json:"ID"`
	Value uint64 `json:"Value"`
}

type ShareRequest struct {
	ID    string `json:"ID"`
	Owner string `json:"Owner"`
}

type EvalRequest struct {
	Expr   string `json:"Expr"`
	Result string `json:"Result"`
}

type MachineInfo struct {
	Party   string   `json:"Party"`
	Private []string `json:"Private"`
	Shares  []string `json:"Shares"`
	Triples []string `json:"Triples"`
}

type ReconstructResponse struct {
	ID    string `json:"ID"`
	Value uint64 `json:"Value"`
}

type FingerprintResponse struct {
	RunID       string `json:"RunID"`
	Fingerprint string `json:"Fingerprint"`
}

// server serializes every request on one simulation. The protocols mutate
// the memory of all parties, so handlers never run concurrently.
type server struct {
	*sync.Mutex
	sim *sim.Simulation
}

func newServer(s *sim.Simulation) *server {
	return &server{
		Mutex: &sync.Mutex{},
		sim:   s,
	}
}

func (s *server) machinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.Lock()
	defer s.Unlock()

	infos := make([]MachineInfo, 0, len(s.sim.Machines()))
	for _, machine := range s.sim.Machines() {
		infos = append(infos, MachineInfo{
			Party:   machine.ID(),
			Private: machine.PrivateIDs(),
			Shares:  machine.ShareIDs(),
			Triples: machine.TripleIDs(),
		})
	}

	writeJSON(w, infos)
}

func (s *server) valuesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ValueRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid post request", http.StatusBadRequest)
		return
	}

	s.Lock()
	defer s.Unlock()

	err = s.sim.SetPrivateValue(req.Party, req.ID, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, req)
}

func (s *server) shareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ShareRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid post request", http.StatusBadRequest)
		return
	}

	s.Lock()
	defer s.Unlock()

	err = s.sim.Share(req.ID, req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, req)
}

func (s *server) evalHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid post request", http.StatusBadRequest)
		return
	}

	s.Lock()
	defer s.Unlock()

	err = s.sim.Eval(req.Expr, req.Result)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, req)
}

func (s *server) reconstructHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	s.Lock()
	defer s.Unlock()

	value, err := s.sim.Reconstruct(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, ReconstructResponse{ID: id, Value: value})
}

func (s *server) fingerprintHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.Lock()
	defer s.Unlock()

	writeJSON(w, FingerprintResponse{
		RunID:       s.sim.ID(),
		Fingerprint: s.sim.Fingerprint(),
	})
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, _ := json.Marshal(value)
	w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, vm.ErrMissingIdentifier) || errors.Is(err, mpc.ErrOwnerNotFound) {
		status = http.StatusNotFound
	}

	http.Error(w, err.Error(), status)
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	conf := sim.Config{
		Name:    "daemon",
		Seed:    c.String("seed"),
		Parties: c.StringSlice("parties"),
	}

	if c.String("scenario") != "" {
		var err error
		conf, err = sim.ConfigFromYAML(c.String("scenario"))
		if err != nil {
			return err
		}
	}

	s, err := sim.NewSimulation(conf)
	if err != nil {
		return err
	}

	err = s.Run(conf.Steps)
	if err != nil {
		return err
	}

	srv := newServer(s)

	http.HandleFunc("/machines", srv.machinesHandler)
	http.HandleFunc("/values", srv.valuesHandler)
	http.HandleFunc("/share", srv.shareHandler)
	http.HandleFunc("/eval", srv.evalHandler)
	http.HandleFunc("/reconstruct", srv.reconstructHandler)
	http.HandleFunc("/fingerprint", srv.fingerprintHandler)

	addr := fmt.Sprintf(":%d", c.Int("port"))
	log.Info().Msgf("mpcsimd listening on %s", addr)

	return http.ListenAndServe(addr, nil)

	// // list machines
	// curl http://127.0.0.1:8080/machines

	// // set a private value
	// curl -X POST -H "Content-Type: application/json" -d '{"Party":"alice", "ID":"a", "Value":4}' http://127.0.0.1:8080/values

	// // share it
	// curl -X POST -H "Content-Type: application/json" -d '{"ID":"a", "Owner":"alice"}' http://127.0.0.1:8080/share

	// // evaluate an expression
	// curl -X POST -H "Content-Type: application/json" -d '{"Expr":"a*a+1", "Result":"out"}' http://127.0.0.1:8080/eval

	// // open the result
	// curl http://127.0.0.1:8080/reconstruct?id=out

	// // fingerprint of the whole run
	// curl http://127.0.0.1:8080/fingerprint
}

func main() {
	app := &cli.App{
		Name:  "mpcsimd",
		Usage: "expose one MPC simulation over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "port to listen on",
			},
			&cli.StringSliceFlag{
				Name:  "parties",
				Value: cli.NewStringSlice("alice", "bob"),
				Usage: "names of the participating parties",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "seed of the shared randomness source",
			},
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"c"},
				Usage:   "scenario YAML file to run at startup",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
