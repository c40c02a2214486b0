package shortestpath

import (
	"github.com/brandonshearin/frontier/graph"
	"github.com/google/uuid"
)

// Result describes the outcome of a traversal.
type Result struct {
	// RunID uniquely identifies the traversal in logs.
	RunID uuid.UUID

	Source graph.NodeID
	Target graph.NodeID

	// Reachable is false when the frontier ran dry before the target
	// was settled.
	Reachable bool

	// Distance is the shortest distance from Source to Target, or
	// graph.Unreached.
	Distance int64

	// Rounds is the number of frontier nodes that were settled.
	Rounds int

	// Workers is the size of the pool that performed the relaxations.
	Workers int

	// Table holds the tentative distance of every node when the run ended.
	// It is only populated when Config.CollectTable is set. Entries of
	// nodes settled during the run are final.
	Table []int64
}
