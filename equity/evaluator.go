// Package equity scores board positions statically. The zero-sum form
// feeds the alpha-beta family (positive favors red); the normalized form
// feeds Monte Carlo rollouts with a value in [0, 1]. The heuristic weights
// are fixed constants, not tuned parameters.
package equity

import (
	"github.com/infexion/infexion/cluster"
	"github.com/infexion/infexion/game"
)

// Infinity is the saturating terminal value: as soon as either side's
// material hits zero the weighted sum is bypassed entirely.
const Infinity = float64(10000000)

// Heuristic weights. Material first, then formation: how many clusters
// each side holds, how many cells those clusters cover, and how many of
// them out-size or out-power an adjacent opposing cluster.
const (
	numPieceWeight     = 1.8
	powPieceWeight     = 1.7
	numClusterWeight   = 1.2
	sizeClusterWeight  = 1.4
	numDominanceWeight = 1.55
	powDominanceWeight = 0.45
)

// sideTotals accumulates the cluster-derived terms for one side.
type sideTotals struct {
	clusters     int
	clusterCells int
	sizeDoms     int
	powDoms      int
}

// clusterTotals walks the cluster arena built from ref's perspective and
// tallies both sides. Dominance is judged along the edges recorded on
// ref's clusters: each edge contributes one size and one power comparison,
// credited to whichever side wins it (ties credit nobody).
func clusterTotals(b *game.Board, ref game.Color) (own, opp sideTotals) {
	cs := cluster.Build(b, ref)
	cs.Each(func(c *cluster.Cluster) {
		if c.Color != ref {
			opp.clusters++
			opp.clusterCells += c.Size()
			return
		}
		own.clusters++
		own.clusterCells += c.Size()
		for id := range c.Opponents {
			oc := cs.Get(id)
			switch {
			case c.Size() > oc.Size():
				own.sizeDoms++
			case c.Size() < oc.Size():
				opp.sizeDoms++
			}
			switch {
			case c.Power > oc.Power:
				own.powDoms++
			case c.Power < oc.Power:
				opp.powDoms++
			}
		}
	})
	return own, opp
}

// Evaluate is the zero-sum static evaluation. Positive favors red,
// negative favors blue; a side with no material yields a saturating
// +-Infinity immediately.
func Evaluate(b *game.Board) float64 {
	redPieces, redPower := b.ColorStats(game.Red)
	bluePieces, bluePower := b.ColorStats(game.Blue)
	if bluePieces == 0 {
		return Infinity
	}
	if redPieces == 0 {
		return -Infinity
	}

	value := float64(redPieces-bluePieces) * numPieceWeight
	value += float64(redPower-bluePower) * powPieceWeight

	red, blue := clusterTotals(b, game.Red)
	value += float64(red.clusters-blue.clusters) * numClusterWeight
	value += float64(red.clusterCells-blue.clusterCells) * sizeClusterWeight
	value += float64(red.sizeDoms-blue.sizeDoms) * numDominanceWeight
	value += float64(red.powDoms-blue.powDoms) * powDominanceWeight
	return value
}

// strength is the per-side weighted formation strength used by the
// normalized evaluation.
func (s sideTotals) strength() float64 {
	return float64(s.clusters)*numClusterWeight +
		float64(s.clusterCells)*sizeClusterWeight +
		float64(s.sizeDoms)*numDominanceWeight +
		float64(s.powDoms)*powDominanceWeight
}

// WinProb is the normalized evaluation from c's perspective:
// strength(c) / (strength(c) + strength(opponent)), in [0, 1] with 1 a
// certain win. The terminal short-circuit maps to exactly 1 or 0.
func WinProb(b *game.Board, c game.Color) float64 {
	ownPieces, _ := b.ColorStats(c)
	oppPieces, _ := b.ColorStats(c.Opponent())
	if oppPieces == 0 {
		if ownPieces == 0 {
			return 0.5
		}
		return 1
	}
	if ownPieces == 0 {
		return 0
	}
	own, opp := clusterTotals(b, c)
	return own.strength() / (own.strength() + opp.strength())
}
