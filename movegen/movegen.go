// Package movegen enumerates legal Infexion actions. The exhaustive mode
// generates the full legal set; the reduced mode drops "quiet" actions to
// shrink the branching factor inside deep searches, escalating back to
// exhaustive whenever hiding a move could cost the game. Every action
// returned is legal against the board it was generated from; the board
// itself validates nothing.
package movegen

import (
	"github.com/infexion/infexion/game"
)

// MinTotalPower is the combined-power floor below which the reduction
// heuristics stay out of the way: with this little material on the board,
// pruning quiet moves is riskier than searching them.
const MinTotalPower = 10

// GenAll returns every legal action for color: a spawn at each empty cell
// while total power is under capacity, and six spreads per owned cell.
func GenAll(b *game.Board, color game.Color) []game.Action {
	underCap := b.TotalPower() < game.MaxTotalPower
	var actions []game.Action
	b.ForEachCell(func(pos game.HexPos, cell game.CellState) {
		if !cell.Occupied() {
			if underCap {
				actions = append(actions, game.NewSpawn(pos))
			}
			return
		}
		if cell.Color == color {
			for _, d := range game.Directions {
				actions = append(actions, game.NewSpread(pos, d))
			}
		}
	})
	return actions
}

// overwhelmed reports whether the side to move is so far behind on
// material that the reduction heuristics must not hide any legal move.
func overwhelmed(playerPower, opponentPower int) bool {
	return playerPower <= opponentPower/3 &&
		playerPower+opponentPower >= MinTotalPower
}

// GenReduced returns a heuristically reduced action list for color, along
// with a flag reporting whether the endgame shortcut fired (in which case
// the list is already ordered and must not be re-sorted).
//
// Reductions applied, in order:
//   - endgame shortcut: if the opponent is down to a few reachable,
//     mostly-unstacked pieces, return only the maximal capturing spreads;
//   - spawn suppression: spawns are emitted only while the mover's power
//     is under the MinTotalPower floor or not ahead of the opponent's, and
//     then only at cells adjacent to a friendly piece;
//   - quiet-spread suppression: power-1 cells only emit spreads whose
//     single target is opponent-owned; taller stacks emit all six.
//
// The reduction is abandoned wholesale, falling back to exhaustive
// generation, whenever the side to move is materially overwhelmed or owns
// nothing, so a saving move is never hidden. That holds at every search
// node, not just at the committed position.
func GenReduced(b *game.Board, color game.Color) ([]game.Action, bool) {
	playerPower := b.ColorPower(color)
	opponentPower := b.ColorPower(color.Opponent())

	if playerPower == 0 {
		return GenAll(b, color), false
	}
	if color == b.TurnColor() && overwhelmed(playerPower, opponentPower) {
		return GenAll(b, color), false
	}

	if actions := checkEndgame(b, color); len(actions) > 0 {
		return actions, true
	}

	underCap := b.TotalPower() < game.MaxTotalPower
	allowSpawns := playerPower < MinTotalPower || playerPower <= opponentPower
	var actions []game.Action
	b.ForEachCell(func(pos game.HexPos, cell game.CellState) {
		if !cell.Occupied() {
			if !underCap || !allowSpawns {
				return
			}
			for _, adj := range pos.Neighbors() {
				if b.CellAt(adj).Color == color {
					actions = append(actions, game.NewSpawn(pos))
					return
				}
			}
			return
		}
		if cell.Color != color {
			return
		}
		if cell.Power == 1 {
			// power-1 stacks only move when they capture
			for _, d := range game.Directions {
				if b.CellAt(pos.Add(d)).Color == color.Opponent() {
					actions = append(actions, game.NewSpread(pos, d))
				}
			}
			return
		}
		for _, d := range game.Directions {
			actions = append(actions, game.NewSpread(pos, d))
		}
	})
	if len(actions) == 0 {
		// every candidate was filtered out; fall back to the full set
		// rather than break the at-least-one-action contract
		return GenAll(b, color), false
	}
	return actions, false
}

// Gen dispatches on the full flag: exhaustive when set, reduced otherwise.
func Gen(b *game.Board, color game.Color, full bool) ([]game.Action, bool) {
	if full {
		return GenAll(b, color), false
	}
	return GenReduced(b, color)
}
