package graph

import (
	"math"
	"sync"

	"golang.org/x/xerrors"
)

var (
	// ErrInvalidNodeCount is returned by New when asked for a graph with
	// no nodes.
	ErrInvalidNodeCount = xerrors.New("node count must be positive")

	// ErrUnknownNode is returned when a node ID does not resolve to a node
	// of the graph.
	ErrUnknownNode = xerrors.New("node is not part of the graph")

	// ErrSelfLoop is returned by AddEdge when both endpoints are the same node.
	ErrSelfLoop = xerrors.New("self loops are not allowed")

	// ErrDuplicateEdge is returned by AddEdge when the two nodes are already
	// connected.
	ErrDuplicateEdge = xerrors.New("nodes are already connected")

	// ErrNegativeWeight is returned by AddEdge for weights below zero.
	ErrNegativeWeight = xerrors.New("edge weight must be non-negative")

	// ErrWeightTooLarge is returned by AddEdge for weights above
	// MaxEdgeWeight of the graph's node count.
	ErrWeightTooLarge = xerrors.New("edge weight is too large")
)

type pairKey struct {
	lo, hi NodeID
}

func keyFor(a, b NodeID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Graph is a fixed-size undirected weighted graph. Edges live once in an
// arena and both endpoints reference them by EdgeID.
//
// AddEdge may be called concurrently while the graph is being built. Once a
// traversal starts the topology is treated as read-only and only the
// per-node distance and settled state changes.
type Graph struct {
	mu sync.RWMutex

	nodes []Node
	edges []Edge
	pairs map[pairKey]EdgeID
}

// New returns a graph with nodeCount unconnected, unreached nodes.
func New(nodeCount int) (*Graph, error) {
	if nodeCount <= 0 {
		return nil, xerrors.Errorf("new graph with %d nodes: %w", nodeCount, ErrInvalidNodeCount)
	}

	g := &Graph{
		nodes: make([]Node, nodeCount),
		pairs: make(map[pairKey]EdgeID),
	}
	for i := range g.nodes {
		g.nodes[i].id = NodeID(i)
		g.nodes[i].dist.Store(Unreached)
	}
	return g, nil
}

// AddEdge connects a and b with an edge of the given weight and appends the
// new handle to the incidence lists of both endpoints.
func (g *Graph) AddEdge(a, b NodeID, weight int64) (EdgeID, error) {
	if !g.Contains(a) || !g.Contains(b) {
		return -1, xerrors.Errorf("add edge %d-%d: %w", a, b, ErrUnknownNode)
	}
	if a == b {
		return -1, xerrors.Errorf("add edge %d-%d: %w", a, b, ErrSelfLoop)
	}
	if weight < 0 {
		return -1, xerrors.Errorf("add edge %d-%d with weight %d: %w", a, b, weight, ErrNegativeWeight)
	}
	if limit := MaxEdgeWeight(len(g.nodes)); weight > limit {
		return -1, xerrors.Errorf("add edge %d-%d with weight %d above %d: %w", a, b, weight, limit, ErrWeightTooLarge)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := keyFor(a, b)
	if _, exists := g.pairs[key]; exists {
		return -1, xerrors.Errorf("add edge %d-%d: %w", a, b, ErrDuplicateEdge)
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{A: a, B: b, Weight: weight})
	g.pairs[key] = id
	g.nodes[a].incident = append(g.nodes[a].incident, id)
	g.nodes[b].incident = append(g.nodes[b].incident, id)
	return id, nil
}

// MaxEdgeWeight returns the largest edge weight accepted by a graph with
// nodeCount nodes. A relaxation candidate spans at most nodeCount edges, so
// with this bound no distance sum can overflow int64.
func MaxEdgeWeight(nodeCount int) int64 {
	if nodeCount <= 1 {
		return math.MaxInt64
	}
	return math.MaxInt64 / int64(nodeCount)
}

// Contains reports whether id names a node of g.
func (g *Graph) Contains(id NodeID) bool { return id >= 0 && int(id) < len(g.nodes) }

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Node returns the node with the given id. It panics if id is out of range;
// use Contains to validate untrusted IDs.
func (g *Graph) Node(id NodeID) *Node { return &g.nodes[id] }

// Edge resolves an edge handle.
func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// Incident is a shorthand for g.Node(id).Incident().
func (g *Graph) Incident(id NodeID) []EdgeID { return g.nodes[id].incident }

// Connected returns the handle of the edge between a and b, if any.
func (g *Graph) Connected(a, b NodeID) (EdgeID, bool) {
	g.mu.RLock()
	id, ok := g.pairs[keyFor(a, b)]
	g.mu.RUnlock()
	return id, ok
}

// Reset clears all traversal state: every node becomes unreached and
// unsettled, then the source distance is set to zero.
func (g *Graph) Reset(source NodeID) error {
	if !g.Contains(source) {
		return xerrors.Errorf("reset from source %d: %w", source, ErrUnknownNode)
	}
	for i := range g.nodes {
		g.nodes[i].settled = false
		g.nodes[i].dist.Store(Unreached)
	}
	g.nodes[source].dist.Store(0)
	return nil
}

// Settle marks a node as permanently removed from the frontier.
func (g *Graph) Settle(id NodeID) { g.nodes[id].settled = true }

// DistanceTable returns a copy of the tentative distance of every node,
// indexed by NodeID.
func (g *Graph) DistanceTable() []int64 {
	table := make([]int64, len(g.nodes))
	for i := range g.nodes {
		table[i] = g.nodes[i].dist.Load()
	}
	return table
}

// Edges returns an iterator over a snapshot of the edge arena in EdgeID
// order.
func (g *Graph) Edges() EdgeIterator {
	g.mu.RLock()
	snapshot := make([]Edge, len(g.edges))
	copy(snapshot, g.edges)
	g.mu.RUnlock()

	return &edgeIterator{list: snapshot}
}
