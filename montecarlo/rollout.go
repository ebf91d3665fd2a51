package montecarlo

import (
	"context"

	"lukechampine.com/frand"

	"github.com/infexion/infexion/equity"
	"github.com/infexion/infexion/game"
	"github.com/infexion/infexion/movegen"
)

// RolloutPolicy selects how playouts pick moves below the tree frontier.
type RolloutPolicy int

const (
	// RolloutRandom plays uniformly random reduced moves.
	RolloutRandom RolloutPolicy = iota
	// RolloutGreedy plays the spread stripping the most opponent power.
	RolloutGreedy
	// RolloutShallow plays a depth-2 negamax move.
	RolloutShallow
)

// RandomAction picks uniformly among the reduced legal actions.
func RandomAction(b *game.Board, color game.Color) game.Action {
	actions, _ := movegen.GenReduced(b, color)
	return actions[frand.Intn(len(actions))]
}

// GreedyAction returns the spread that strips the most power from the
// opponent. When no spread captures anything it prefers a random spawn,
// then any random action.
func GreedyAction(b *game.Board, color game.Color) game.Action {
	actions, _ := movegen.GenReduced(b, color)
	var spawns []game.Action
	minOpponent := b.ColorPower(color.Opponent())
	var greedy game.Action
	found := false
	for _, a := range actions {
		if a.Type == game.ActionSpawn {
			spawns = append(spawns, a)
			continue
		}
		b.ApplyAction(a, true)
		power := b.ColorPower(color.Opponent())
		b.UndoAction()
		if power < minOpponent {
			minOpponent = power
			greedy = a
			found = true
		}
	}
	if found {
		return greedy
	}
	if len(spawns) > 0 {
		return spawns[frand.Intn(len(spawns))]
	}
	return actions[frand.Intn(len(actions))]
}

// rollout plays the position forward under the configured policy, scores
// the reached position for the searching color, and restores the board.
func (s *Searcher) rollout(ctx context.Context) float64 {
	moves := 0
	for moves < s.rolloutLimit && !s.board.GameOver() && !s.expired(ctx) {
		mover := s.board.TurnColor()
		var a game.Action
		switch s.policy {
		case RolloutGreedy:
			a = GreedyAction(s.board, mover)
		case RolloutShallow:
			if _, best, err := s.solver.Solve(ctx, mover, 2); err == nil {
				a = best
			} else {
				a = RandomAction(s.board, mover)
			}
		default:
			a = RandomAction(s.board, mover)
		}
		s.board.ApplyAction(a, true)
		moves++
	}
	score := equity.WinProb(s.board, s.color)
	for i := 0; i < moves; i++ {
		s.board.UndoAction()
	}
	return score
}
