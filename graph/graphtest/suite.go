package graphtest

import (
	"sync"

	"github.com/brandonshearin/frontier/graph"
	gc "gopkg.in/check.v1"
)

/*SuiteBase defines a re-usable set of tests that verify the structural
invariants of a graph. Embedding suites decide how the graph under test is
built (hand-wired, generated with different seeds, ...) by calling SetGraph
from their SetUpTest hook.*/
type SuiteBase struct {
	g *graph.Graph
}

func (s *SuiteBase) SetGraph(g *graph.Graph) {
	s.g = g
}

// TestIncidenceIsSymmetric verifies that every edge handle stored by a node
// is also stored by the other endpoint and that both resolve to the same
// arena entry.
func (s *SuiteBase) TestIncidenceIsSymmetric(c *gc.C) {
	for i := 0; i < s.g.NodeCount(); i++ {
		id := graph.NodeID(i)
		for _, eid := range s.g.Incident(id) {
			e := s.g.Edge(eid)
			c.Assert(e.Touches(id), gc.Equals, true, gc.Commentf("edge %d listed by node %d does not touch it", eid, id))

			other := e.Other(id)
			c.Assert(containsEdge(s.g.Incident(other), eid), gc.Equals, true,
				gc.Commentf("edge %d missing from the incidence list of node %d", eid, other))
		}
	}
}

// TestEachEdgeListedTwice verifies that the incidence lists reference every
// arena edge exactly once per endpoint.
func (s *SuiteBase) TestEachEdgeListedTwice(c *gc.C) {
	seen := make(map[graph.EdgeID]int)
	for i := 0; i < s.g.NodeCount(); i++ {
		for _, eid := range s.g.Incident(graph.NodeID(i)) {
			seen[eid]++
		}
	}

	c.Assert(seen, gc.HasLen, s.g.EdgeCount())
	for eid, count := range seen {
		c.Assert(count, gc.Equals, 2, gc.Commentf("edge %d referenced %d times", eid, count))
	}
}

// TestNoSelfLoopsOrDuplicates walks the edge arena and checks that no edge
// connects a node to itself and that no pair is connected twice.
func (s *SuiteBase) TestNoSelfLoopsOrDuplicates(c *gc.C) {
	pairs := make(map[[2]graph.NodeID]bool)
	it := s.g.Edges()
	defer func() { c.Assert(it.Close(), gc.IsNil) }()

	for it.Next() {
		e := it.Edge()
		c.Assert(e.A, gc.Not(gc.Equals), e.B)
		c.Assert(e.Weight >= 0, gc.Equals, true)

		key := [2]graph.NodeID{e.A, e.B}
		if e.A > e.B {
			key = [2]graph.NodeID{e.B, e.A}
		}
		c.Assert(pairs[key], gc.Equals, false, gc.Commentf("pair %v connected twice", key))
		pairs[key] = true

		connected, ok := s.g.Connected(e.B, e.A)
		c.Assert(ok, gc.Equals, true)
		c.Assert(connected, gc.Equals, it.ID())
	}
	c.Assert(it.Error(), gc.IsNil)
}

// TestReset verifies that Reset leaves only the source reached.
func (s *SuiteBase) TestReset(c *gc.C) {
	source := graph.NodeID(s.g.NodeCount() - 1)
	c.Assert(s.g.Reset(source), gc.IsNil)

	for i, dist := range s.g.DistanceTable() {
		n := s.g.Node(graph.NodeID(i))
		c.Assert(n.IsSettled(), gc.Equals, false)
		if graph.NodeID(i) == source {
			c.Assert(dist, gc.Equals, int64(0))
			continue
		}
		c.Assert(dist, gc.Equals, graph.Unreached)
		c.Assert(n.IsReached(), gc.Equals, false)
	}

	c.Assert(s.g.Reset(graph.NodeID(s.g.NodeCount())), gc.NotNil)
}

// TestConcurrentRelax hammers a single node with relaxations from many
// goroutines and checks that the smallest candidate always wins.
func (s *SuiteBase) TestConcurrentRelax(c *gc.C) {
	c.Assert(s.g.Reset(0), gc.IsNil)
	n := s.g.Node(graph.NodeID(s.g.NodeCount() - 1))
	if n.ID() == 0 {
		c.Skip("graph has a single node")
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(candidate int64) {
			defer wg.Done()
			n.Relax(candidate)
		}(int64(1000 - i))
	}
	wg.Wait()

	c.Assert(n.Distance(), gc.Equals, int64(1000-63))
	c.Assert(n.Relax(5000), gc.Equals, false)
	c.Assert(n.Relax(1), gc.Equals, true)
	c.Assert(n.Distance(), gc.Equals, int64(1))
}

func containsEdge(list []graph.EdgeID, id graph.EdgeID) bool {
	for _, eid := range list {
		if eid == id {
			return true
		}
	}
	return false
}
