package montecarlo

import "container/heap"

// nodeQueue is a mutable max-priority queue over tree nodes. Priorities
// change as backpropagation updates UCT scores, so a reprioritized node is
// re-pushed with a fresh entry and the stale entry is invalidated in place;
// pop discards invalidated entries lazily.
type nodeQueue struct {
	entries entrySlice
	finder  map[*Node]*entry
	counter int
}

type entry struct {
	node     *Node
	priority float64
	seq      int
	index    int
	invalid  bool
}

type entrySlice []*entry

func (s entrySlice) Len() int { return len(s) }
func (s entrySlice) Less(i, j int) bool {
	if s[i].priority != s[j].priority {
		return s[i].priority > s[j].priority
	}
	if s[i].node.depth != s[j].node.depth {
		return s[i].node.depth < s[j].node.depth
	}
	return s[i].seq < s[j].seq
}
func (s entrySlice) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}
func (s *entrySlice) Push(x any) {
	e := x.(*entry)
	e.index = len(*s)
	*s = append(*s, e)
}
func (s *entrySlice) Pop() any {
	old := *s
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return e
}

func newNodeQueue() *nodeQueue {
	return &nodeQueue{finder: make(map[*Node]*entry)}
}

// Add inserts the node, or reprioritizes it if already queued.
func (q *nodeQueue) Add(n *Node, priority float64) {
	if old, ok := q.finder[n]; ok {
		old.invalid = true
	}
	e := &entry{node: n, priority: priority, seq: q.counter}
	q.counter++
	q.finder[n] = e
	heap.Push(&q.entries, e)
}

// Contains reports whether the node is currently queued.
func (q *nodeQueue) Contains(n *Node) bool {
	_, ok := q.finder[n]
	return ok
}

// Pop removes and returns the highest-priority node, skipping entries
// invalidated by reprioritization. The second return is false when the
// queue is empty.
func (q *nodeQueue) Pop() (*Node, bool) {
	for q.entries.Len() > 0 {
		e := heap.Pop(&q.entries).(*entry)
		if e.invalid {
			continue
		}
		delete(q.finder, e.node)
		return e.node, true
	}
	return nil, false
}

func (q *nodeQueue) Len() int {
	return len(q.finder)
}
