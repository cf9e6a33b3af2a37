package searcher

// openSet is a binary min-heap over unexpanded nodes, ordered by
// ascending levinCost with ties broken toward smaller g (shallower node
// first). It deliberately does not implement container/heap to avoid the
// interface overhead on the hot path.
type openSet struct {
	items []*node
}

func newOpenSet(capacity int) *openSet {
	return &openSet{
		items: make([]*node, 0, capacity),
	}
}

// Len returns the number of nodes in the heap.
func (o *openSet) Len() int {
	return len(o.items)
}

// Push inserts a node while maintaining the heap invariant.
func (o *openSet) Push(n *node) {
	o.items = append(o.items, n)
	o.siftUp(len(o.items) - 1)
}

// Pop removes and returns the minimum node.
func (o *openSet) Pop() (*node, bool) {
	n := len(o.items)
	if n == 0 {
		return nil, false
	}

	root := o.items[0]
	o.items[0] = o.items[n-1]
	o.items[n-1] = nil // release for GC
	o.items = o.items[:n-1]
	if len(o.items) > 0 {
		o.siftDown(0)
	}

	return root, true
}

func (o *openSet) less(i, j int) bool {
	a, b := o.items[i], o.items[j]
	if a.levinCost != b.levinCost {
		return a.levinCost < b.levinCost
	}
	return a.g < b.g
}

func (o *openSet) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !o.less(i, parent) {
			break
		}
		o.items[i], o.items[parent] = o.items[parent], o.items[i]
		i = parent
	}
}

func (o *openSet) siftDown(i int) {
	n := len(o.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		best := left
		if right := left + 1; right < n && o.less(right, left) {
			best = right
		}
		if !o.less(best, i) {
			break
		}
		o.items[i], o.items[best] = o.items[best], o.items[i]
		i = best
	}
}
