package graph

import (
	"math"
	"math/rand"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

const (
	// DefaultSeed is the seed used by the CLI when none is supplied.
	DefaultSeed int64 = 46540

	// DefaultEdgeProbability is the chance that any pair of distinct nodes
	// gets connected.
	DefaultEdgeProbability = 0.5

	// DefaultMaxWeight is the exclusive upper bound for edge weights.
	DefaultMaxWeight int64 = 100
)

// ErrTooFewNodes is returned by PickSourceAndTarget when the graph cannot
// provide two distinct nodes.
var ErrTooFewNodes = xerrors.New("at least two nodes are required")

// GeneratorConfig describes a random graph. Zero values for EdgeProbability
// and MaxWeight select the package defaults.
type GeneratorConfig struct {
	// Nodes is the number of nodes in the generated graph.
	Nodes int

	// Seed makes the generated topology and weights reproducible.
	Seed int64

	// EdgeProbability is the chance in (0, 1] that a pair is connected.
	EdgeProbability float64

	// MaxWeight is the exclusive upper bound for edge weights; weights are
	// drawn uniformly from [0, MaxWeight).
	MaxWeight int64
}

func (cfg *GeneratorConfig) validate() error {
	var err error
	if cfg.Nodes <= 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for node count: %w", ErrInvalidNodeCount))
	}
	if cfg.EdgeProbability == 0 {
		cfg.EdgeProbability = DefaultEdgeProbability
	} else if math.IsNaN(cfg.EdgeProbability) || cfg.EdgeProbability < 0 || cfg.EdgeProbability > 1 {
		err = multierror.Append(err, xerrors.Errorf("edge probability %v is outside (0, 1]", cfg.EdgeProbability))
	}
	if cfg.MaxWeight == 0 {
		cfg.MaxWeight = DefaultMaxWeight
	} else if cfg.MaxWeight < 0 {
		err = multierror.Append(err, xerrors.Errorf("max weight %d must be positive", cfg.MaxWeight))
	} else if cfg.Nodes > 0 && cfg.MaxWeight > MaxEdgeWeight(cfg.Nodes) {
		err = multierror.Append(err, xerrors.Errorf("max weight %d exceeds %d for %d nodes: %w", cfg.MaxWeight, MaxEdgeWeight(cfg.Nodes), cfg.Nodes, ErrWeightTooLarge))
	}
	return err
}

// Generate builds a random undirected graph. Every unordered pair of
// distinct nodes is visited once, in (i, j) scan order with i < j, and is
// connected independently of the others. The same config always yields the
// same graph.
func Generate(cfg GeneratorConfig) (*Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("graph generator config validation failed: %w", err)
	}

	g, err := New(cfg.Nodes)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Nodes-1; i++ {
		for j := i + 1; j < cfg.Nodes; j++ {
			if rng.Float64() >= cfg.EdgeProbability {
				continue
			}
			weight := rng.Int63n(cfg.MaxWeight)
			if _, err := g.AddEdge(NodeID(i), NodeID(j), weight); err != nil {
				return nil, xerrors.Errorf("generate edge %d-%d: %w", i, j, err)
			}
		}
	}
	return g, nil
}

// PickSourceAndTarget selects two distinct nodes uniformly at random and
// initialises the traversal state of g so that the source sits at distance
// zero and every other node is unreached.
func PickSourceAndTarget(g *Graph, seed int64) (source, target NodeID, err error) {
	if g.NodeCount() < 2 {
		return 0, 0, xerrors.Errorf("pick source and target among %d nodes: %w", g.NodeCount(), ErrTooFewNodes)
	}

	rng := rand.New(rand.NewSource(seed))
	source = NodeID(rng.Intn(g.NodeCount()))
	target = source
	for target == source {
		target = NodeID(rng.Intn(g.NodeCount()))
	}

	if err = g.Reset(source); err != nil {
		return 0, 0, err
	}
	return source, target, nil
}
