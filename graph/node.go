package graph

import "sync/atomic"

// Unreached is the tentative distance of a node that no relaxation has
// touched yet.
const Unreached int64 = -1

// NodeID is the stable index of a node inside its graph.
type NodeID int

// Node holds the traversal-owned state of a graph vertex: its tentative
// distance from the source and whether that distance is final. Both fields
// are reset by Graph.Reset before each traversal.
type Node struct {
	id       NodeID
	dist     atomic.Int64
	settled  bool
	incident []EdgeID
}

func (n *Node) ID() NodeID { return n.id }

// Distance returns the current tentative distance or Unreached.
func (n *Node) Distance() int64 { return n.dist.Load() }

func (n *Node) IsReached() bool { return n.dist.Load() != Unreached }

// IsSettled reports whether the node has been removed from the frontier.
// Only the coordinator flips this flag, and only while no relaxation is in
// flight.
func (n *Node) IsSettled() bool { return n.settled }

// Incident returns the handles of the edges touching n, in insertion order.
// The returned slice must not be modified.
func (n *Node) Incident() []EdgeID { return n.incident }

// Relax lowers the tentative distance to candidate if the node is
// unreached or candidate is strictly shorter. It is safe to call from
// multiple goroutines: the update is a compare-and-swap loop so concurrent
// relaxations of the same node never lose the smaller value.
func (n *Node) Relax(candidate int64) bool {
	for {
		cur := n.dist.Load()
		if cur != Unreached && candidate >= cur {
			return false
		}
		if n.dist.CompareAndSwap(cur, candidate) {
			return true
		}
	}
}
