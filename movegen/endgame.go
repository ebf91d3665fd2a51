package movegen

import (
	"sort"

	"github.com/infexion/infexion/cluster"
	"github.com/infexion/infexion/game"
)

// rayReach is how far along a ray an endgame capture may originate; on a
// torus nothing is farther than half the board away.
const rayReach = game.BoardN / 2

// capture is one candidate endgame spread, keyed by its source and
// direction, with the number of opposing pieces it can clear.
type capture struct {
	pos      game.HexPos
	dir      game.HexDir
	count    int
	stacked  bool
	srcPower int
}

// checkEndgame detects positions where the mover holds dominant material
// against a few, mostly-unstacked opposing pieces, every opposing cluster
// of which is reachable by an existing friendly stack along some ray this
// ply. When that holds it returns only the capturing spreads, best first
// (stacked-clearing captures ahead of the rest, then by capture count and
// source power); otherwise it returns nil and normal generation proceeds.
//
// Soundness: a non-nil result names only actions whose source can reach
// and absorb its target cluster (power >= ray distance and >= cluster
// size), and is returned only when every member of every opposing cluster
// is covered by such an action.
func checkEndgame(b *game.Board, color game.Color) []game.Action {
	playerPieces, playerPower := b.ColorStats(color)
	opponentPieces, _ := b.ColorStats(color.Opponent())

	if playerPower < game.MaxTotalPower/4 {
		return nil
	}
	if opponentPieces == 0 || opponentPieces > playerPieces/3 {
		return nil
	}
	stackedCount := 0
	for _, pos := range b.PlayerCells(color.Opponent()) {
		if b.CellAt(pos).Power > 1 {
			stackedCount++
		}
	}
	if stackedCount > 1 {
		return nil
	}

	opposing := cluster.BuildColor(b, color.Opponent())
	captures := make(map[[2]int]*capture)
	soundness := true
	opposing.Each(func(c *cluster.Cluster) {
		if !soundness {
			return
		}
		if c.Size() > 2 {
			soundness = false
			return
		}
		if !collectClusterCaptures(b, color, c, captures) {
			soundness = false
		}
	})
	if !soundness || len(captures) == 0 {
		return nil
	}

	ordered := make([]*capture, 0, len(captures))
	for _, c := range captures {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool {
		ci, cj := ordered[i], ordered[j]
		if ci.stacked != cj.stacked {
			return ci.stacked
		}
		if ci.count != cj.count {
			return ci.count > cj.count
		}
		return ci.srcPower > cj.srcPower
	})
	actions := make([]game.Action, len(ordered))
	for i, c := range ordered {
		actions[i] = game.NewSpread(c.pos, c.dir)
	}
	return actions
}

// collectClusterCaptures scans the six rays into every member of an
// opposing cluster for friendly stacks able to reach it, recording each
// (source, direction) candidate. It reports false unless every member of
// the cluster lies on at least one qualifying ray: a partially reachable
// cluster cannot be cleared this ply, so the position is not an endgame.
func collectClusterCaptures(b *game.Board, color game.Color, c *cluster.Cluster, captures map[[2]int]*capture) bool {
	stacked := false
	var members []game.HexPos
	for idx := 0; idx < game.BoardN*game.BoardN; idx++ {
		pos := game.PosFromIndex(idx)
		if !c.Contains(pos) {
			continue
		}
		members = append(members, pos)
		if b.CellAt(pos).Power > 1 {
			stacked = true
		}
	}
	for _, target := range members {
		covered := false
		for _, d := range game.Directions {
			for s := 1; s <= rayReach; s++ {
				src := target.Ray(d, -s)
				cell := b.CellAt(src)
				if cell.Color != color {
					continue
				}
				if cell.Power < s || cell.Power < c.Size() {
					continue
				}
				covered = true
				key := [2]int{src.Index(), dirIndex(d)}
				if cand, ok := captures[key]; ok {
					cand.count++
					cand.stacked = cand.stacked || stacked
				} else {
					captures[key] = &capture{
						pos:      src,
						dir:      d,
						count:    1,
						stacked:  stacked,
						srcPower: cell.Power,
					}
				}
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

func dirIndex(d game.HexDir) int {
	for i, dd := range game.Directions {
		if dd == d {
			return i
		}
	}
	panic("movegen: unknown direction")
}
