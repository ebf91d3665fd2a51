package montecarlo

import (
	"math"

	"github.com/infexion/infexion/game"
)

// uctConstant balances exploitation against exploration in the tree policy.
var uctConstant = math.Sqrt2

// Node is one explored position in the Monte Carlo tree. It stores the
// action that produced it rather than the position itself; the position is
// reconstructed by replaying the action chain from the root onto the
// shared board.
type Node struct {
	action   game.Action
	parent   *Node
	children []*Node

	visits int
	value  float64
	uct    float64

	// eval is the static normalized evaluation of the node's position,
	// the queue priority until the node has been visited.
	eval  float64
	hash  uint64
	depth int
}

func newNode(parent *Node, action game.Action, hash uint64, depth int, eval float64) *Node {
	n := &Node{
		action: action,
		parent: parent,
		hash:   hash,
		depth:  depth,
		eval:   eval,
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// priority is the queue key: the static evaluation until first visit, the
// UCT score afterward.
func (n *Node) priority() float64 {
	if n.visits == 0 {
		return n.eval
	}
	return n.uct
}

// computeUCT refreshes the node's UCT score from its current statistics:
// accumulated value plus the exploration bonus growing with the log of the
// node's own visits relative to the parent's.
func (n *Node) computeUCT() {
	if n.parent == nil || n.visits == 0 || n.parent.visits == 0 {
		n.uct = n.value
		return
	}
	n.uct = n.value + uctConstant*math.Sqrt(math.Log(float64(n.visits))/float64(n.parent.visits))
}

// chain returns the actions leading from the root to this node, in play
// order.
func (n *Node) chain() []game.Action {
	var rev []game.Action
	for cur := n; cur.parent != nil; cur = cur.parent {
		rev = append(rev, cur.action)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
