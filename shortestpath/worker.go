package shortestpath

import (
	"context"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/rendezvous"
	"golang.org/x/xerrors"
)

// worker relaxes a fixed stripe of the published frontier node's incident
// edges each round.
type worker struct {
	t      *traversal
	index  int
	stride int
}

func newWorker(t *traversal, index int) *worker {
	return &worker{t: t, index: index, stride: t.workers}
}

// run blocks until released, relaxes its share of the frontier's edges,
// reports completion and parks again. It returns nil once it has relaxed the
// target node or the rendezvous is stopped.
func (w *worker) run(ctx context.Context) error {
	var seen uint64
	for {
		gen, err := w.t.rv.Await(ctx, seen)
		if xerrors.Is(err, rendezvous.ErrStopped) {
			return nil
		} else if err != nil {
			return xerrors.Errorf("worker %d: %w", w.index, err)
		}
		seen = gen

		// the frontier is copied before Arrive because the coordinator is
		// free to publish the next one as soon as the last worker arrives
		frontier := w.t.frontier
		w.relax(frontier)

		if err = w.t.rv.Arrive(w.index); err != nil {
			return xerrors.Errorf("worker %d: %w", w.index, err)
		}
		if frontier == w.t.target {
			return nil
		}
	}
}

// relax applies the relaxation rule to every incident edge of frontier
// assigned to this worker.
func (w *worker) relax(frontier graph.NodeID) {
	g := w.t.g
	base := g.Node(frontier).Distance()
	incident := g.Incident(frontier)

	forEachAssigned(w.index, w.stride, len(incident), func(i int) {
		eid := incident[i]
		e := g.Edge(eid)
		if w.t.relaxHook != nil {
			w.t.relaxHook(w.index, eid)
		}

		neighbor := g.Node(e.Other(frontier))
		if neighbor.IsSettled() {
			return
		}
		neighbor.Relax(base + e.Weight)
	})
}

// forEachAssigned invokes fn for the indices index, index+stride,
// index+2*stride, ... below n. Workers 0..stride-1 thus cover [0, n)
// exactly once between them.
func forEachAssigned(index, stride, n int, fn func(i int)) {
	for i := index; i < n; i += stride {
		fn(i)
	}
}
