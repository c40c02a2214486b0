// Package shortestpath computes single-source shortest paths with a
// frontier-expansion scheme in which a single coordinator selects one node
// per round and a fixed pool of workers relaxes that node's edges in
// parallel.
package shortestpath

import (
	"context"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/rendezvous"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var (
	// ErrInvalidWorkerCount is returned when the calculator is configured
	// without any workers.
	ErrInvalidWorkerCount = xerrors.New("worker count must be positive")

	// ErrNilGraph is returned by Run when no graph is supplied.
	ErrNilGraph = xerrors.New("graph is nil")

	// ErrNodeOutOfRange is returned by Run when the source or target do
	// not belong to the graph.
	ErrNodeOutOfRange = xerrors.New("node is not part of the graph")

	// ErrAborted is returned by Run when the context expires between rounds.
	ErrAborted = xerrors.New("traversal aborted")
)

// Calculator runs shortest-path traversals with a fixed worker pool size.
// A Calculator may be reused for several runs but each graph must only be
// traversed by one run at a time.
type Calculator struct {
	cfg Config

	// relaxHook, if set, is invoked by workers for every edge they relax.
	relaxHook func(worker int, edge graph.EdgeID)
}

// NewCalculator returns a Calculator configured with cfg.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("shortest path config validation failed: %w", err)
	}
	return &Calculator{cfg: cfg}, nil
}

// Run resets the traversal state of g and computes the shortest distance
// from source to target.
//
// A target that cannot be reached from source is not an error: Run returns
// a Result whose Reachable field is false. Errors are returned for invalid
// input, for context expiry observed at a round boundary (ErrAborted) and
// for protocol failures, which are fatal for the run.
func (c *Calculator) Run(ctx context.Context, g *graph.Graph, source, target graph.NodeID) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Contains(source) {
		return nil, xerrors.Errorf("source %d: %w", source, ErrNodeOutOfRange)
	}
	if !g.Contains(target) {
		return nil, xerrors.Errorf("target %d: %w", target, ErrNodeOutOfRange)
	}

	rv, err := rendezvous.New(c.cfg.Workers)
	if err != nil {
		return nil, err
	}
	if err = g.Reset(source); err != nil {
		return nil, err
	}

	runID := uuid.New()
	t := &traversal{
		id:        runID,
		g:         g,
		source:    source,
		target:    target,
		frontier:  source,
		workers:   c.cfg.Workers,
		rv:        rv,
		observer:  c.cfg.Observer,
		relaxHook: c.relaxHook,
		logger: c.cfg.Logger.WithFields(logrus.Fields{
			"run_id":  runID.String(),
			"workers": c.cfg.Workers,
			"source":  source,
			"target":  target,
		}),
	}

	res, err := t.run(ctx)
	if err != nil {
		return nil, err
	}
	if c.cfg.CollectTable {
		res.Table = g.DistanceTable()
	}
	return res, nil
}
