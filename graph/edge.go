package graph

// EdgeID is a handle into the edge arena of a graph. Both endpoints of an
// undirected edge store the same handle.
type EdgeID int

// Edge is an undirected weighted connection between nodes A and B.
type Edge struct {
	A, B   NodeID
	Weight int64
}

// Other returns the endpoint of e that is not n. The result is undefined
// if n is not an endpoint of e.
func (e Edge) Other(n NodeID) NodeID {
	if e.A == n {
		return e.B
	}
	return e.A
}

// Touches reports whether n is one of the endpoints of e.
func (e Edge) Touches(n NodeID) bool { return e.A == n || e.B == n }
