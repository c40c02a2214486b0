// Package report renders traversal results, distance tables and graph
// dumps in a plain-text form suitable for terminals and golden files.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/shortestpath"
	"github.com/brandonshearin/frontier/sweep"
	"golang.org/x/xerrors"
)

// ErrNoTable is returned by WriteTable for results that were computed
// without collecting the distance table.
var ErrNoTable = xerrors.New("result does not include a distance table")

// FormatDistance renders a tentative distance, spelling out the unreached
// sentinel.
func FormatDistance(dist int64) string {
	if dist == graph.Unreached {
		return "unreached"
	}
	return strconv.FormatInt(dist, 10)
}

// WriteResult prints a one-line summary of res.
func WriteResult(w io.Writer, res *shortestpath.Result) error {
	var err error
	if res.Reachable {
		_, err = fmt.Fprintf(w, "run %s: shortest path %d -> %d = %d (%d rounds, %d workers)\n",
			res.RunID, res.Source, res.Target, res.Distance, res.Rounds, res.Workers)
	} else {
		_, err = fmt.Fprintf(w, "run %s: no path %d -> %d (%d rounds, %d workers)\n",
			res.RunID, res.Source, res.Target, res.Rounds, res.Workers)
	}
	return err
}

// WriteTable prints the per-node distance table of res.
func WriteTable(w io.Writer, res *shortestpath.Result) error {
	if res.Table == nil {
		return ErrNoTable
	}

	if _, err := io.WriteString(w, "node  distance\n"); err != nil {
		return err
	}
	for node, dist := range res.Table {
		if _, err := fmt.Fprintf(w, "%4d  %s\n", node, FormatDistance(dist)); err != nil {
			return err
		}
	}
	return nil
}

// WriteGraph dumps every incidence of every node as
// "node -> neighbor = distance + weight", with a blank line after each node.
func WriteGraph(w io.Writer, g *graph.Graph) error {
	for i := 0; i < g.NodeCount(); i++ {
		n := g.Node(graph.NodeID(i))
		for _, eid := range n.Incident() {
			e := g.Edge(eid)
			if _, err := fmt.Fprintf(w, "%d -> %d = %s + %d\n", n.ID(), e.Other(n.ID()), FormatDistance(n.Distance()), e.Weight); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrials prints one line per sweep trial.
func WriteTrials(w io.Writer, trials []sweep.Trial) error {
	for _, t := range trials {
		workers := make([]string, len(t.WorkerCounts))
		for i, count := range t.WorkerCounts {
			workers[i] = strconv.Itoa(count)
		}

		if _, err := fmt.Fprintf(w, "seed=%d nodes=%d edges=%d source=%d target=%d distance=%s rounds=%d workers=%s\n",
			t.Seed, t.Nodes, t.Edges, t.Source, t.Target, FormatDistance(t.Distance), t.Rounds, strings.Join(workers, ",")); err != nil {
			return err
		}
	}
	return nil
}
