package montecarlo

import (
	"testing"

	"github.com/matryer/is"
)

func TestQueuePopsHighestPriority(t *testing.T) {
	is := is.New(t)
	q := newNodeQueue()
	a := &Node{depth: 1}
	b := &Node{depth: 1}
	c := &Node{depth: 1}
	q.Add(a, 0.2)
	q.Add(b, 0.9)
	q.Add(c, 0.5)

	got, ok := q.Pop()
	is.True(ok)
	is.Equal(got, b)
	got, _ = q.Pop()
	is.Equal(got, c)
	got, _ = q.Pop()
	is.Equal(got, a)
	_, ok = q.Pop()
	is.True(!ok)
}

func TestQueueReprioritizesInPlace(t *testing.T) {
	is := is.New(t)
	q := newNodeQueue()
	a := &Node{depth: 1}
	b := &Node{depth: 1}
	q.Add(a, 0.9)
	q.Add(b, 0.5)
	is.Equal(q.Len(), 2)

	// demote a below b; the stale high-priority entry must not resurface
	q.Add(a, 0.1)
	is.Equal(q.Len(), 2)

	got, _ := q.Pop()
	is.Equal(got, b)
	got, _ = q.Pop()
	is.Equal(got, a)
}

func TestQueueBreaksTiesByDepth(t *testing.T) {
	is := is.New(t)
	q := newNodeQueue()
	deep := &Node{depth: 5}
	shallow := &Node{depth: 2}
	q.Add(deep, 0.5)
	q.Add(shallow, 0.5)

	got, _ := q.Pop()
	is.Equal(got, shallow)
}
