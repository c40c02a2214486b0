// Package sweep runs batches of seeded shortest-path trials and checks that
// every trial yields the same distance table regardless of how many workers
// perform the relaxations.
package sweep

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/pipeline"
	"github.com/brandonshearin/frontier/shortestpath"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ErrNondeterministic is returned when two worker counts disagree on the
// distance table of the same trial.
var ErrNondeterministic = xerrors.New("distance tables differ between worker counts")

// Solver is implemented by types that compute shortest paths on a graph.
// *shortestpath.Calculator satisfies this interface.
type Solver interface {
	Run(ctx context.Context, g *graph.Graph, source, target graph.NodeID) (*shortestpath.Result, error)
}

// SolverFactory returns a Solver whose results include the full distance
// table and that uses the requested number of workers.
type SolverFactory func(workers int) (Solver, error)

// Config encapsulates the settings for a sweep.
type Config struct {
	// Nodes is the size of every generated graph.
	Nodes int

	// EdgeProbability and MaxWeight are forwarded to the graph generator.
	EdgeProbability float64
	MaxWeight       int64

	// FirstSeed is the seed of the first trial; trial i uses FirstSeed+i
	// for both graph generation and source/target selection.
	FirstSeed int64

	// Trials is the number of graphs to generate.
	Trials int

	// WorkerCounts lists the pool sizes each trial is solved with.
	WorkerCounts []int

	// Parallelism is the number of trials solved concurrently.
	Parallelism int

	// SolverFactory creates solvers. Defaults to shortestpath calculators.
	SolverFactory SolverFactory

	// Logger for trial progress. If not specified, output is discarded.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Nodes < 2 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for node count %d: need at least 2", cfg.Nodes))
	}
	if cfg.Trials < 1 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for trial count %d", cfg.Trials))
	}
	if len(cfg.WorkerCounts) == 0 {
		err = multierror.Append(err, xerrors.New("at least one worker count must be specified"))
	}
	for _, workers := range cfg.WorkerCounts {
		if workers < 1 {
			err = multierror.Append(err, xerrors.Errorf("invalid worker count %d", workers))
		}
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	if cfg.SolverFactory == nil {
		cfg.SolverFactory = calculatorFactory
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

func calculatorFactory(workers int) (Solver, error) {
	calc, err := shortestpath.NewCalculator(shortestpath.Config{Workers: workers, CollectTable: true})
	if err != nil {
		return nil, err
	}
	return calc, nil
}

// Trial summarises one generated graph and its shortest-path outcome.
type Trial struct {
	Seed   int64
	Nodes  int
	Edges  int
	Source graph.NodeID
	Target graph.NodeID

	Reachable bool
	Distance  int64
	Rounds    int

	// WorkerCounts lists the pool sizes that agreed on the result.
	WorkerCounts []int
}

// Run generates cfg.Trials graphs, solves each of them with every
// configured worker count and returns the trials ordered by seed.
func Run(ctx context.Context, cfg Config) ([]Trial, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("sweep config validation failed: %w", err)
	}

	p := pipeline.New(
		pipeline.FIFO(newGraphGenerator(cfg)),
		pipeline.FixedWorkerPool(newTrialSolver(cfg), cfg.Parallelism),
	)

	sink := new(collectingSink)
	if err := p.Process(ctx, &seedSource{next: cfg.FirstSeed, remaining: cfg.Trials}, sink); err != nil {
		// surface a lone failure directly so callers can match it
		if merr, ok := err.(*multierror.Error); ok && len(merr.Errors) == 1 {
			return nil, merr.Errors[0]
		}
		return nil, err
	}

	sort.Slice(sink.trials, func(i, j int) bool { return sink.trials[i].Seed < sink.trials[j].Seed })
	return sink.trials, nil
}

type trialPayload struct {
	seed   int64
	g      *graph.Graph
	source graph.NodeID
	target graph.NodeID
	trial  Trial
}

// MarkAsProcessed releases the graph once the trial has been summarised.
func (p *trialPayload) MarkAsProcessed() { p.g = nil }

// seedSource emits one payload per trial seed.
type seedSource struct {
	next      int64
	remaining int
	current   *trialPayload
}

func (s *seedSource) Next(context.Context) bool {
	if s.remaining == 0 {
		return false
	}
	s.current = &trialPayload{seed: s.next}
	s.next++
	s.remaining--
	return true
}

func (s *seedSource) Payload() pipeline.Payload { return s.current }
func (s *seedSource) Error() error              { return nil }

type collectingSink struct {
	mu     sync.Mutex
	trials []Trial
}

func (s *collectingSink) Consume(_ context.Context, p pipeline.Payload) error {
	s.mu.Lock()
	s.trials = append(s.trials, p.(*trialPayload).trial)
	s.mu.Unlock()
	return nil
}
