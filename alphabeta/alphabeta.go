// Package alphabeta implements the depth-limited adversarial searches:
// plain minimax with alpha-beta pruning, its negamax formulation, and
// NegaScout (principal variation search). All three share the board's
// apply/undo discipline, the reduced move generator and the capture-first
// move ordering, and return the same value for the same position.
package alphabeta

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/infexion/infexion/equity"
	"github.com/infexion/infexion/game"
	"github.com/infexion/infexion/movegen"
)

// ErrNoSolution is returned when the root position admits no action to
// search, i.e. the game is already over or the depth is not positive.
var ErrNoSolution = errors.New("alphabeta: no action found at root")

// nullWindow is the width of the NegaScout probe window above alpha.
const nullWindow = 1

type Variant int

const (
	Minimax Variant = iota
	Negamax
	NegaScout
)

func (v Variant) String() string {
	switch v {
	case Minimax:
		return "minimax"
	case Negamax:
		return "negamax"
	case NegaScout:
		return "negascout"
	}
	return "unknown"
}

// Solver runs one search at a time over a borrowed board. The search
// applies actions in exploratory mode and undoes every one of them, so the
// board is bit-identical before and after a Solve call.
type Solver struct {
	variant        Variant
	fullGen        bool
	disablePruning bool
	moveTime       time.Duration

	board    *game.Board
	deadline time.Time
	nodes    int
}

// Init points the solver at a board. Variant and knobs keep their previous
// values so a solver can be re-initialized between games.
func (s *Solver) Init(b *game.Board) error {
	if b == nil {
		return errors.New("alphabeta: init with nil board")
	}
	s.board = b
	return nil
}

// SetVariant selects the search algorithm used by Solve.
func (s *Solver) SetVariant(v Variant) {
	s.variant = v
}

// SetFullGeneration switches off the reduced move generator; every node
// then searches the exhaustive legal set.
func (s *Solver) SetFullGeneration(full bool) {
	s.fullGen = full
}

// SetPruningDisabled turns the minimax and negamax searches full-width.
// Only used to verify that pruning preserves the search value.
func (s *Solver) SetPruningDisabled(disabled bool) {
	s.disablePruning = disabled
}

// SetMoveTime bounds one Solve call by wall clock. Zero means unbounded.
func (s *Solver) SetMoveTime(d time.Duration) {
	s.moveTime = d
}

// stopped reports whether the search must unwind: the context was
// cancelled or the move deadline passed. Checked at node entry; overruns
// are not errors, the best action found so far is still returned.
func (s *Solver) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// Solve searches the position to the given depth for the color on move and
// returns the search value (positive favors red, regardless of variant)
// and the best action.
func (s *Solver) Solve(ctx context.Context, color game.Color, depth int) (float64, game.Action, error) {
	if s.board == nil {
		return 0, game.Action{}, errors.New("alphabeta: solve before init")
	}
	if depth < 1 || s.board.GameOver() {
		return 0, game.Action{}, ErrNoSolution
	}
	s.deadline = time.Time{}
	if s.moveTime > 0 {
		s.deadline = time.Now().Add(s.moveTime)
	}
	s.nodes = 0
	tstart := time.Now()
	before := s.board.Fingerprint()
	log.Debug().
		Stringer("variant", s.variant).
		Int("depth", depth).
		Stringer("color", color).
		Msg("alphabeta-solve-config")

	var value float64
	var action game.Action
	var found bool
	switch s.variant {
	case Minimax:
		value, action, found = s.minimax(ctx, color, depth, depth, -equity.Infinity, equity.Infinity)
	case Negamax:
		value, action, found = s.negamax(ctx, color, depth, depth, -equity.Infinity, equity.Infinity)
		value *= sign(color)
	case NegaScout:
		value, action, found = s.negascout(ctx, color, depth, depth, -equity.Infinity, equity.Infinity)
		value *= sign(color)
	}
	if s.board.Fingerprint() != before {
		panic("alphabeta: board changed across a solve")
	}
	if !found {
		return 0, game.Action{}, ErrNoSolution
	}
	log.Debug().
		Float64("value", value).
		Stringer("action", action).
		Int("nodes", s.nodes).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return value, action, nil
}

// sign is the negamax orientation: red maximizes the red-positive eval.
func sign(color game.Color) float64 {
	if color == game.Red {
		return 1
	}
	return -1
}

// genOrdered produces the node's move list: reduced or exhaustive per the
// solver's setting, capture-ordered unless the endgame shortcut already
// ordered it.
func (s *Solver) genOrdered(color game.Color) []game.Action {
	actions, endgame := movegen.Gen(s.board, color, s.fullGen)
	if !endgame {
		movegen.Order(s.board, color, actions)
	}
	return actions
}

// minimax is the explicit two-branch formulation: red maximizes the
// red-positive evaluation, blue minimizes it. The bool return
// distinguishes a leaf (no action searched) from a real choice.
func (s *Solver) minimax(ctx context.Context, color game.Color, depth, ceil int, alpha, beta float64) (float64, game.Action, bool) {
	value, leaf := s.enterNode(ctx, color, depth, false)
	if leaf {
		return value, game.Action{}, false
	}

	var best float64
	var ret game.Action
	found := false
	for _, a := range s.genOrdered(color) {
		s.board.ApplyAction(a, true)
		curr, _, _ := s.minimax(ctx, color.Opponent(), depth-1, ceil, alpha, beta)
		s.board.UndoAction()

		if color == game.Red {
			if !found || curr > best {
				best, ret, found = curr, a, true
			}
			if best > alpha {
				alpha = best
			}
			if s.childStop(ctx, depth, ceil) || (!s.disablePruning && best >= beta) {
				break
			}
		} else {
			if !found || curr < best {
				best, ret, found = curr, a, true
			}
			if best < beta {
				beta = best
			}
			if s.childStop(ctx, depth, ceil) || (!s.disablePruning && best <= alpha) {
				break
			}
		}
	}
	return best, ret, found
}

func (s *Solver) negamax(ctx context.Context, color game.Color, depth, ceil int, alpha, beta float64) (float64, game.Action, bool) {
	value, leaf := s.enterNode(ctx, color, depth, true)
	if leaf {
		return value, game.Action{}, false
	}

	var best float64
	var ret game.Action
	found := false
	for _, a := range s.genOrdered(color) {
		s.board.ApplyAction(a, true)
		curr, _, _ := s.negamax(ctx, color.Opponent(), depth-1, ceil, -beta, -alpha)
		curr = -curr
		s.board.UndoAction()

		if !found || curr > best {
			best, ret, found = curr, a, true
		}
		if best > alpha {
			alpha = best
		}
		if s.childStop(ctx, depth, ceil) || (!s.disablePruning && alpha >= beta) {
			break
		}
	}
	return best, ret, found
}

// negascout searches the first (likeliest best, thanks to move ordering)
// child with the full window, then probes each sibling with the zero-width
// window [alpha, alpha+nullWindow] and re-searches full-width only when
// the probe lands strictly inside (alpha, beta).
//
// Reinefeld, A. (1983). An Improvement to the Scout Tree-Search Algorithm.
func (s *Solver) negascout(ctx context.Context, color game.Color, depth, ceil int, alpha, beta float64) (float64, game.Action, bool) {
	value, leaf := s.enterNode(ctx, color, depth, true)
	if leaf {
		return value, game.Action{}, false
	}

	b := beta
	var ret game.Action
	found := false
	for i, a := range s.genOrdered(color) {
		s.board.ApplyAction(a, true)
		curr, _, _ := s.negascout(ctx, color.Opponent(), depth-1, ceil, -b, -alpha)
		curr = -curr
		if i == 0 {
			ret, found = a, true
		} else if alpha < curr && curr < beta {
			curr, _, _ = s.negascout(ctx, color.Opponent(), depth-1, ceil, -beta, -alpha)
			curr = -curr
		}
		s.board.UndoAction()

		if curr > alpha {
			alpha, ret, found = curr, a, true
		}
		if alpha >= beta || s.childStop(ctx, depth, ceil) {
			break
		}
		b = alpha + nullWindow
	}
	return alpha, ret, found
}

// enterNode handles the shared node preamble: counts the node and detects
// the leaf cases (depth exhausted, terminal position, or time up). For a
// leaf it returns the static evaluation, sign-flipped for the negamax
// convention.
func (s *Solver) enterNode(ctx context.Context, color game.Color, depth int, negate bool) (float64, bool) {
	if depth == 0 || s.board.GameOver() || s.stopped(ctx) {
		v := equity.Evaluate(s.board)
		if negate {
			v *= sign(color)
		}
		return v, true
	}
	s.nodes++
	return 0, false
}

// childStop re-checks the unwind condition after a child returns: the
// ancestors of a timed-out subtree abandon their remaining siblings, and a
// search one ply deep has nothing to gain from a second root move once the
// first is evaluated.
func (s *Solver) childStop(ctx context.Context, depth, ceil int) bool {
	if s.stopped(ctx) {
		return true
	}
	return depth == 1 && ceil == 1
}
