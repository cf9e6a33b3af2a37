package searcher

import (
	"github.com/hupe1980/phastar/model"
)

// node is one entry in the search tree. Nodes live in the job's arena and
// reference each other by pointer; the arena's address stability keeps
// parent links valid for the job's whole lifetime.
type node struct {
	parent *node
	state  *stateEntry
	// p is the cumulative log-probability of the path from the root.
	p float64
	// g is the path length in steps from the root.
	g float64
	// levinCost is the open-set priority, valid once the node is scored.
	levinCost float64
	// action produced this node from its parent; NoAction for the root.
	action model.Action
	// h is the predicted remaining cost, valid once the node is scored.
	h float64
	// logPolicy is the smoothed per-action log-policy, valid once the
	// node is scored.
	logPolicy []float64
}

// path reconstructs the root-to-node action sequence by walking parent
// back-links.
func (n *node) path() []model.Action {
	depth := int(n.g)
	actions := make([]model.Action, depth)
	for i, cur := depth-1, n; i >= 0; i, cur = i-1, cur.parent {
		actions[i] = cur.action
	}
	return actions
}
