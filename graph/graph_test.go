package graph_test

import (
	"math"
	"testing"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/graph/graphtest"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var (
	_ = gc.Suite(new(HandBuiltGraphTestSuite))
	_ = gc.Suite(new(GeneratedGraphTestSuite))
	_ = gc.Suite(new(GraphTestSuite))
)

func Test(t *testing.T) { gc.TestingT(t) }

type HandBuiltGraphTestSuite struct {
	graphtest.SuiteBase
}

func (s *HandBuiltGraphTestSuite) SetUpTest(c *gc.C) {
	g, err := graph.New(4)
	c.Assert(err, gc.IsNil)
	for _, e := range []graph.Edge{{A: 0, B: 1, Weight: 5}, {A: 1, B: 2, Weight: 3}, {A: 0, B: 2, Weight: 9}} {
		_, err = g.AddEdge(e.A, e.B, e.Weight)
		c.Assert(err, gc.IsNil)
	}
	s.SetGraph(g)
}

type GeneratedGraphTestSuite struct {
	graphtest.SuiteBase
}

func (s *GeneratedGraphTestSuite) SetUpTest(c *gc.C) {
	g, err := graph.Generate(graph.GeneratorConfig{Nodes: 40, Seed: graph.DefaultSeed})
	c.Assert(err, gc.IsNil)
	s.SetGraph(g)
}

type GraphTestSuite struct{}

func (s *GraphTestSuite) TestNewRejectsEmptyGraph(c *gc.C) {
	_, err := graph.New(0)
	c.Assert(xerrors.Is(err, graph.ErrInvalidNodeCount), gc.Equals, true)

	_, err = graph.New(-3)
	c.Assert(xerrors.Is(err, graph.ErrInvalidNodeCount), gc.Equals, true)
}

func (s *GraphTestSuite) TestAddEdgeErrors(c *gc.C) {
	g, err := graph.New(3)
	c.Assert(err, gc.IsNil)

	id, err := g.AddEdge(0, 1, 7)
	c.Assert(err, gc.IsNil)
	c.Assert(id, gc.Equals, graph.EdgeID(0))

	specs := []struct {
		a, b   graph.NodeID
		weight int64
		expErr error
	}{
		{a: 0, b: 3, weight: 1, expErr: graph.ErrUnknownNode},
		{a: -1, b: 2, weight: 1, expErr: graph.ErrUnknownNode},
		{a: 2, b: 2, weight: 1, expErr: graph.ErrSelfLoop},
		{a: 1, b: 2, weight: -4, expErr: graph.ErrNegativeWeight},
		{a: 1, b: 0, weight: 2, expErr: graph.ErrDuplicateEdge},
		{a: 1, b: 2, weight: math.MaxInt64, expErr: graph.ErrWeightTooLarge},
		{a: 1, b: 2, weight: graph.MaxEdgeWeight(3) + 1, expErr: graph.ErrWeightTooLarge},
	}
	for specIndex, spec := range specs {
		c.Logf("[spec %d] add edge %d-%d", specIndex, spec.a, spec.b)
		_, err = g.AddEdge(spec.a, spec.b, spec.weight)
		c.Assert(xerrors.Is(err, spec.expErr), gc.Equals, true, gc.Commentf("got %v", err))
	}
	c.Assert(g.EdgeCount(), gc.Equals, 1)
}

func (s *GraphTestSuite) TestMaxEdgeWeightBoundsPathSums(c *gc.C) {
	for _, nodes := range []int{2, 3, 17, 1000} {
		limit := graph.MaxEdgeWeight(nodes)

		// a relaxation candidate never spans more than nodes edges
		var sum int64
		for i := 0; i < nodes; i++ {
			sum += limit
			c.Assert(sum > 0, gc.Equals, true, gc.Commentf("nodes=%d edges=%d", nodes, i+1))
		}
	}

	g, err := graph.New(3)
	c.Assert(err, gc.IsNil)
	_, err = g.AddEdge(0, 1, graph.MaxEdgeWeight(3))
	c.Assert(err, gc.IsNil)
}

func (s *GraphTestSuite) TestEdgeIsSharedByBothEndpoints(c *gc.C) {
	g, err := graph.New(2)
	c.Assert(err, gc.IsNil)
	id, err := g.AddEdge(1, 0, 12)
	c.Assert(err, gc.IsNil)

	c.Assert(g.Incident(0), gc.DeepEquals, []graph.EdgeID{id})
	c.Assert(g.Incident(1), gc.DeepEquals, []graph.EdgeID{id})
	c.Assert(g.Edge(id).Other(0), gc.Equals, graph.NodeID(1))
	c.Assert(g.Edge(id).Other(1), gc.Equals, graph.NodeID(0))
}

func (s *GraphTestSuite) TestRelaxKeepsMinimum(c *gc.C) {
	g, err := graph.New(2)
	c.Assert(err, gc.IsNil)
	n := g.Node(1)

	c.Assert(n.IsReached(), gc.Equals, false)
	c.Assert(n.Relax(20), gc.Equals, true)
	c.Assert(n.Relax(25), gc.Equals, false)
	c.Assert(n.Relax(20), gc.Equals, false)
	c.Assert(n.Relax(3), gc.Equals, true)
	c.Assert(n.Distance(), gc.Equals, int64(3))
}

func (s *GraphTestSuite) TestGenerateIsDeterministic(c *gc.C) {
	cfg := graph.GeneratorConfig{Nodes: 60, Seed: 99}
	g1, err := graph.Generate(cfg)
	c.Assert(err, gc.IsNil)
	g2, err := graph.Generate(cfg)
	c.Assert(err, gc.IsNil)

	c.Assert(collectEdges(c, g1), gc.DeepEquals, collectEdges(c, g2))
	for i := 0; i < g1.NodeCount(); i++ {
		c.Assert(g1.Incident(graph.NodeID(i)), gc.DeepEquals, g2.Incident(graph.NodeID(i)))
	}

	g3, err := graph.Generate(graph.GeneratorConfig{Nodes: 60, Seed: 100})
	c.Assert(err, gc.IsNil)
	c.Assert(collectEdges(c, g3), gc.Not(gc.DeepEquals), collectEdges(c, g1))
}

func (s *GraphTestSuite) TestGenerateRespectsWeightBoundAndProbability(c *gc.C) {
	g, err := graph.Generate(graph.GeneratorConfig{Nodes: 30, Seed: 1, EdgeProbability: 1, MaxWeight: 5})
	c.Assert(err, gc.IsNil)
	c.Assert(g.EdgeCount(), gc.Equals, 30*29/2)
	for _, e := range collectEdges(c, g) {
		c.Assert(e.Weight >= 0 && e.Weight < 5, gc.Equals, true, gc.Commentf("weight %d out of range", e.Weight))
	}
}

func (s *GraphTestSuite) TestGenerateConfigValidation(c *gc.C) {
	_, err := graph.Generate(graph.GeneratorConfig{Nodes: 0, EdgeProbability: 1.5, MaxWeight: -1})
	c.Assert(err, gc.ErrorMatches, "(?s)graph generator config validation failed.*node count.*edge probability.*max weight.*")

	_, err = graph.Generate(graph.GeneratorConfig{Nodes: 5, EdgeProbability: math.NaN()})
	c.Assert(err, gc.ErrorMatches, "(?s).*edge probability NaN is outside.*")

	_, err = graph.Generate(graph.GeneratorConfig{Nodes: 4, MaxWeight: math.MaxInt64})
	c.Assert(err, gc.ErrorMatches, "(?s).*max weight 9223372036854775807 exceeds 2305843009213693951 for 4 nodes.*")
}

func (s *GraphTestSuite) TestPickSourceAndTarget(c *gc.C) {
	g, err := graph.Generate(graph.GeneratorConfig{Nodes: 10, Seed: 3})
	c.Assert(err, gc.IsNil)

	for seed := int64(0); seed < 50; seed++ {
		src, dst, err := graph.PickSourceAndTarget(g, seed)
		c.Assert(err, gc.IsNil)
		c.Assert(src, gc.Not(gc.Equals), dst)
		c.Assert(g.Node(src).Distance(), gc.Equals, int64(0))
		c.Assert(g.Node(dst).Distance(), gc.Equals, graph.Unreached)

		again, againDst, err := graph.PickSourceAndTarget(g, seed)
		c.Assert(err, gc.IsNil)
		c.Assert([]graph.NodeID{again, againDst}, gc.DeepEquals, []graph.NodeID{src, dst})
	}

	single, err := graph.New(1)
	c.Assert(err, gc.IsNil)
	_, _, err = graph.PickSourceAndTarget(single, 1)
	c.Assert(xerrors.Is(err, graph.ErrTooFewNodes), gc.Equals, true)
}

func collectEdges(c *gc.C, g *graph.Graph) []graph.Edge {
	var edges []graph.Edge
	it := g.Edges()
	for it.Next() {
		edges = append(edges, it.Edge())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	return edges
}
