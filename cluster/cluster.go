// Package cluster builds maximal connected regions of same-colored pieces
// from a board snapshot. Cluster counts, sizes and the size/power
// relationships between adjacent opposing clusters ("dominance") feed the
// static evaluator. A build is a snapshot: any board mutation stales it,
// and the evaluator simply rebuilds.
package cluster

import (
	"fmt"

	"github.com/infexion/infexion/game"
)

// Cluster is one connected region. It is identified by the index of its
// seed cell, a stable identity that survives merges (the absorbed
// cluster's id is discarded). Opponents maps the seed ids of adjacent
// opposing clusters to their sizes.
type Cluster struct {
	Seed      int
	Color     game.Color
	Power     int
	cells     map[int]struct{}
	Opponents map[int]int
}

func newCluster(pos game.HexPos, cell game.CellState) *Cluster {
	return &Cluster{
		Seed:      pos.Index(),
		Color:     cell.Color,
		Power:     cell.Power,
		cells:     map[int]struct{}{pos.Index(): {}},
		Opponents: make(map[int]int),
	}
}

// Size is the number of cells in the cluster.
func (c *Cluster) Size() int {
	return len(c.cells)
}

// Contains reports whether the cluster holds the cell at pos.
func (c *Cluster) Contains(pos game.HexPos) bool {
	_, ok := c.cells[pos.Index()]
	return ok
}

// absorb merges other into c, discarding other's identity. Dominance
// edges recorded on the absorbed cluster carry over.
func (c *Cluster) absorb(other *Cluster) {
	for idx := range other.cells {
		c.cells[idx] = struct{}{}
	}
	c.Power += other.Power
	for id, size := range other.Opponents {
		c.Opponents[id] = size
	}
}

// Clusters is an arena of cluster records keyed by seed id.
type Clusters struct {
	arena  map[int]*Cluster
	byCell map[int]*Cluster
}

// Get returns the cluster with the given seed id. Looking up an id that
// was never recorded is an internal invariant breach: the dominance edges
// the evaluator walks must always resolve, so this panics rather than
// returning a plausible-looking nil.
func (cs *Clusters) Get(id int) *Cluster {
	c, ok := cs.arena[id]
	if !ok {
		panic(fmt.Sprintf("cluster: lookup of unrecorded cluster id %d", id))
	}
	return c
}

// Len is the number of clusters in the arena.
func (cs *Clusters) Len() int {
	return len(cs.arena)
}

// Each calls f for every cluster in the arena.
func (cs *Clusters) Each(f func(c *Cluster)) {
	for _, c := range cs.arena {
		f(c)
	}
}

// at returns the cluster currently claiming pos, if any.
func (cs *Clusters) at(pos game.HexPos) *Cluster {
	return cs.byCell[pos.Index()]
}

// addColor runs one flood pass for a single color: every piece of that
// color starts as a singleton and is merged by reference into any
// already-built same-color cluster touching one of its six neighbors.
// When recordEdges is set, adjacency to an opposing cluster is recorded as
// a dominance edge holding the opposing cluster's size, which is why the
// opposing color must be fully built first.
func (cs *Clusters) addColor(b *game.Board, color game.Color, recordEdges bool) {
	for _, pos := range b.PlayerCells(color) {
		cur := newCluster(pos, b.CellAt(pos))
		for _, adj := range pos.Neighbors() {
			other := cs.at(adj)
			if other == nil {
				continue
			}
			if other.Color == color {
				if other == cur {
					continue
				}
				cur.absorb(other)
				delete(cs.arena, other.Seed)
				for idx := range other.cells {
					cs.byCell[idx] = cur
				}
			} else if recordEdges {
				cur.Opponents[other.Seed] = other.Size()
			}
		}
		cs.arena[cur.Seed] = cur
		for idx := range cur.cells {
			cs.byCell[idx] = cur
		}
	}
}

// Build constructs the clusters of both colors from a board snapshot.
// Dominance edges are recorded on the ref-colored clusters only, pointing
// at adjacent opposing clusters; the opposing color is built first so the
// recorded sizes are final.
func Build(b *game.Board, ref game.Color) *Clusters {
	cs := &Clusters{arena: make(map[int]*Cluster), byCell: make(map[int]*Cluster)}
	cs.addColor(b, ref.Opponent(), false)
	cs.addColor(b, ref, true)
	return cs
}

// BuildColor constructs the clusters of a single color, with no dominance
// bookkeeping. The endgame detector uses this to measure opposing
// formations cheaply.
func BuildColor(b *game.Board, color game.Color) *Clusters {
	cs := &Clusters{arena: make(map[int]*Cluster), byCell: make(map[int]*Cluster)}
	cs.addColor(b, color, false)
	return cs
}
