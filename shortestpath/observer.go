package shortestpath

//go:generate mockgen -package mocks -destination mocks/mock_observer.go github.com/brandonshearin/frontier/shortestpath Observer

import (
	"github.com/brandonshearin/frontier/graph"
	"github.com/sirupsen/logrus"
)

// Observer is implemented by types that want to follow the progress of a
// traversal. Both methods are invoked from the coordinator goroutine while
// the worker pool is parked, so implementations may inspect the graph
// without additional synchronization.
type Observer interface {
	// FrontierSelected is invoked after the coordinator picks the frontier
	// node for a round and before the workers are released.
	FrontierSelected(round int, frontier graph.NodeID, distance int64)

	// FrontierSettled is invoked after all workers have relaxed the
	// frontier node's edges and the node has been marked settled.
	FrontierSettled(round int, frontier graph.NodeID, distance int64)
}

type nopObserver struct{}

func (nopObserver) FrontierSelected(int, graph.NodeID, int64) {}
func (nopObserver) FrontierSettled(int, graph.NodeID, int64)  {}

type loggingObserver struct {
	logger *logrus.Entry
}

// NewLoggingObserver returns an Observer that reports every round at debug
// level.
func NewLoggingObserver(logger *logrus.Entry) Observer {
	return &loggingObserver{logger: logger}
}

func (o *loggingObserver) FrontierSelected(round int, frontier graph.NodeID, distance int64) {
	o.logger.WithFields(logrus.Fields{
		"round":    round,
		"frontier": frontier,
		"distance": distance,
	}).Debug("frontier selected")
}

func (o *loggingObserver) FrontierSettled(round int, frontier graph.NodeID, distance int64) {
	o.logger.WithFields(logrus.Fields{
		"round":    round,
		"frontier": frontier,
		"distance": distance,
	}).Debug("frontier settled")
}
