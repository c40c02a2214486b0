package shortestpath

import (
	"context"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/rendezvous"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// traversal holds the state shared by the coordinator and the workers for
// the duration of a single Run.
//
// frontier and round are written by the coordinator only while the
// rendezvous is in its selecting phase; workers read them after being
// released, so the rendezvous provides the required happens-before edges.
type traversal struct {
	id     uuid.UUID
	g      *graph.Graph
	source graph.NodeID
	target graph.NodeID

	frontier graph.NodeID
	round    int

	workers   int
	rv        *rendezvous.Rendezvous
	observer  Observer
	logger    *logrus.Entry
	relaxHook func(worker int, edge graph.EdgeID)
}

// run executes the coordinator loop on the calling goroutine.
func (t *traversal) run(ctx context.Context) (*Result, error) {
	// The pool context is detached from ctx: a round always runs to
	// completion and ctx is only consulted between rounds. It is cancelled
	// when a worker fails.
	pool, poolCtx := errgroup.WithContext(context.Background())
	poolStarted := false

	for {
		if err := ensureContextNotExpired(ctx); err != nil {
			t.logger.WithError(err).Warn("traversal aborted")
			_ = t.shutdown(pool)
			return nil, xerrors.Errorf("after %d rounds: %w", t.round, ErrAborted)
		}

		frontier, found := t.selectFrontier()
		if !found {
			t.logger.WithField("rounds", t.round).Warn("target is unreachable from source")
			if err := t.shutdown(pool); err != nil {
				return nil, xerrors.Errorf("shutting down worker pool: %w", err)
			}
			return t.result(false), nil
		}

		t.round++
		t.frontier = frontier
		dist := t.g.Node(frontier).Distance()
		t.observer.FrontierSelected(t.round, frontier, dist)

		if _, err := t.rv.Release(); err != nil {
			_ = t.shutdown(pool)
			return nil, xerrors.Errorf("round %d: publishing frontier %d: %w", t.round, frontier, err)
		}

		// The pool is created lazily so that the first round's frontier is
		// already published when the workers start.
		if !poolStarted {
			poolStarted = true
			for i := 0; i < t.workers; i++ {
				w := newWorker(t, i)
				pool.Go(func() error { return w.run(poolCtx) })
			}
		}

		if err := t.rv.AwaitCompletion(poolCtx); err != nil {
			t.rv.Stop()
			if poolErr := pool.Wait(); poolErr != nil {
				err = poolErr
			}
			return nil, xerrors.Errorf("round %d: relaxing frontier %d: %w", t.round, frontier, err)
		}

		t.g.Settle(frontier)
		t.observer.FrontierSettled(t.round, frontier, dist)

		if frontier == t.target {
			break
		}
	}

	// every worker observed the target round and exits on its own
	if err := pool.Wait(); err != nil {
		return nil, xerrors.Errorf("joining worker pool: %w", err)
	}

	res := t.result(true)
	t.logger.WithFields(logrus.Fields{
		"rounds":   res.Rounds,
		"distance": res.Distance,
	}).Info("shortest path found")
	return res, nil
}

// selectFrontier scans every node and returns the unsettled, reached node
// with the smallest tentative distance. Ties go to the lowest node ID.
func (t *traversal) selectFrontier() (graph.NodeID, bool) {
	best, bestDist := graph.NodeID(-1), graph.Unreached
	for i := 0; i < t.g.NodeCount(); i++ {
		n := t.g.Node(graph.NodeID(i))
		if n.IsSettled() {
			continue
		}

		dist := n.Distance()
		if dist == graph.Unreached {
			continue
		}
		if best < 0 || dist < bestDist {
			best, bestDist = n.ID(), dist
		}
	}
	return best, best >= 0
}

// shutdown wakes any parked workers and waits for the pool to exit.
func (t *traversal) shutdown(pool *errgroup.Group) error {
	t.rv.Stop()
	return pool.Wait()
}

func (t *traversal) result(reachable bool) *Result {
	res := &Result{
		RunID:     t.id,
		Source:    t.source,
		Target:    t.target,
		Reachable: reachable,
		Distance:  graph.Unreached,
		Rounds:    t.round,
		Workers:   t.workers,
	}
	if reachable {
		res.Distance = t.g.Node(t.target).Distance()
	}
	return res
}

func ensureContextNotExpired(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
