package graph

/*Iterator is implemented by objects that lazily walk a collection owned by
a graph.*/
type Iterator interface {
	/*Next advances the iterator. It returns false once the items are
	exhausted or an error occurs*/
	Next() bool

	//Error returns the last error encountered by the iterator
	Error() error

	//Close releases any resources held by the iterator
	Close() error
}

//EdgeIterator is implemented by objects that can iterate graph edges
type EdgeIterator interface {
	Iterator

	//ID returns the handle of the current edge
	ID() EdgeID

	//Edge returns a copy of the current edge
	Edge() Edge
}

type edgeIterator struct {
	list         []Edge
	currentIndex int
}

func (it *edgeIterator) Next() bool {
	if it.currentIndex >= len(it.list) {
		return false
	}
	it.currentIndex++
	return true
}

func (it *edgeIterator) ID() EdgeID   { return EdgeID(it.currentIndex - 1) }
func (it *edgeIterator) Edge() Edge   { return it.list[it.currentIndex-1] }
func (it *edgeIterator) Error() error { return nil }
func (it *edgeIterator) Close() error { return nil }
