package sweep

import (
	"context"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/pipeline"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

type graphGenerator struct {
	cfg Config
}

func newGraphGenerator(cfg Config) *graphGenerator {
	return &graphGenerator{cfg: cfg}
}

func (gen *graphGenerator) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*trialPayload)

	g, err := graph.Generate(graph.GeneratorConfig{
		Nodes:           gen.cfg.Nodes,
		Seed:            payload.seed,
		EdgeProbability: gen.cfg.EdgeProbability,
		MaxWeight:       gen.cfg.MaxWeight,
	})
	if err != nil {
		return nil, xerrors.Errorf("trial %d: %w", payload.seed, err)
	}

	if payload.source, payload.target, err = graph.PickSourceAndTarget(g, payload.seed); err != nil {
		return nil, xerrors.Errorf("trial %d: %w", payload.seed, err)
	}
	payload.g = g
	return payload, nil
}

type trialSolver struct {
	cfg Config
}

func newTrialSolver(cfg Config) *trialSolver {
	return &trialSolver{cfg: cfg}
}

// Process solves the trial once per configured worker count. Every run
// resets the graph, so the runs are independent of each other.
func (s *trialSolver) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*trialPayload)

	var baseline []int64
	for i, workers := range s.cfg.WorkerCounts {
		solver, err := s.cfg.SolverFactory(workers)
		if err != nil {
			return nil, xerrors.Errorf("trial %d: %w", payload.seed, err)
		}

		res, err := solver.Run(ctx, payload.g, payload.source, payload.target)
		if err != nil {
			return nil, xerrors.Errorf("trial %d with %d workers: %w", payload.seed, workers, err)
		}

		if i == 0 {
			baseline = res.Table
			payload.trial = Trial{
				Seed:      payload.seed,
				Nodes:     payload.g.NodeCount(),
				Edges:     payload.g.EdgeCount(),
				Source:    payload.source,
				Target:    payload.target,
				Reachable: res.Reachable,
				Distance:  res.Distance,
				Rounds:    res.Rounds,
			}
		} else if !equalTables(baseline, res.Table) || res.Distance != payload.trial.Distance {
			return nil, xerrors.Errorf("trial %d: %d workers vs %d workers: %w",
				payload.seed, s.cfg.WorkerCounts[0], workers, ErrNondeterministic)
		}
		payload.trial.WorkerCounts = append(payload.trial.WorkerCounts, workers)
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"seed":      payload.seed,
		"reachable": payload.trial.Reachable,
		"distance":  payload.trial.Distance,
		"rounds":    payload.trial.Rounds,
	}).Info("trial completed")
	return payload, nil
}

func equalTables(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
