// Package player is the agent facade: it keeps a mirror of the real game
// and produces exactly one legal action per turn with whichever engine the
// config selects.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/infexion/infexion/alphabeta"
	"github.com/infexion/infexion/config"
	"github.com/infexion/infexion/game"
	"github.com/infexion/infexion/montecarlo"
	"github.com/infexion/infexion/zobrist"
)

// Strategy selects the engine behind BestAction.
type Strategy int

const (
	NegaScout Strategy = iota
	Negamax
	Minimax
	MonteCarlo
	Greedy
	Random
)

func (s Strategy) String() string {
	switch s {
	case NegaScout:
		return "negascout"
	case Negamax:
		return "negamax"
	case Minimax:
		return "minimax"
	case MonteCarlo:
		return "montecarlo"
	case Greedy:
		return "greedy"
	case Random:
		return "random"
	}
	return "unknown"
}

// ParseStrategy maps a config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range []Strategy{NegaScout, Negamax, Minimax, MonteCarlo, Greedy, Random} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("player: unknown strategy %q", s)
}

// openingBook is the fixed first move: the board is toroidal, so the
// center spawn is as good as any and skips a pointless root search.
var openingBook = game.NewSpawn(game.HexPos{R: 3, Q: 3})

// AIPlayer mirrors the committed game state and searches it for moves.
// One player serves one game; it is not safe for concurrent use.
type AIPlayer struct {
	color    game.Color
	board    *game.Board
	strategy Strategy
	cfg      *config.Config

	solver  *alphabeta.Solver
	mcts    *montecarlo.Searcher
	zobrist *zobrist.Zobrist

	clock time.Duration
}

// New builds a player for color from the config's strategy and budgets.
func New(color game.Color, cfg *config.Config) (*AIPlayer, error) {
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	p := &AIPlayer{
		color:    color,
		board:    game.NewBoard(),
		strategy: strategy,
		cfg:      cfg,
		clock:    cfg.GameClock,
	}
	p.solver = &alphabeta.Solver{}
	if err := p.solver.Init(p.board); err != nil {
		return nil, err
	}
	switch strategy {
	case NegaScout:
		p.solver.SetVariant(alphabeta.NegaScout)
	case Negamax:
		p.solver.SetVariant(alphabeta.Negamax)
	case Minimax:
		p.solver.SetVariant(alphabeta.Minimax)
	}
	p.solver.SetMoveTime(cfg.MoveTime)

	p.mcts = &montecarlo.Searcher{}
	if err := p.mcts.Init(p.board, color); err != nil {
		return nil, err
	}
	p.mcts.SetIterationLimit(cfg.MCTSIterations)
	p.mcts.SetRolloutLimit(cfg.MCTSRolloutLimit)
	if cfg.MCTSNodeBudget > 0 {
		p.mcts.SetNodeBudget(cfg.MCTSNodeBudget)
	}
	p.mcts.SetMoveTime(cfg.MoveTime)
	policy, err := parseRolloutPolicy(cfg.MCTSRolloutPolicy)
	if err != nil {
		return nil, err
	}
	p.mcts.SetRolloutPolicy(policy)

	p.zobrist = &zobrist.Zobrist{}
	p.zobrist.Initialize()
	return p, nil
}

func parseRolloutPolicy(s string) (montecarlo.RolloutPolicy, error) {
	switch s {
	case "random":
		return montecarlo.RolloutRandom, nil
	case "greedy":
		return montecarlo.RolloutGreedy, nil
	case "shallow":
		return montecarlo.RolloutShallow, nil
	}
	return 0, fmt.Errorf("player: unknown rollout policy %q", s)
}

// Color is the side this player plays.
func (p *AIPlayer) Color() game.Color {
	return p.color
}

// Board exposes the mirror for inspection (display, tests). Callers must
// not mutate it.
func (p *AIPlayer) Board() *game.Board {
	return p.board
}

// Clock is the player's remaining game time.
func (p *AIPlayer) Clock() time.Duration {
	return p.clock
}

// searchDepth shrinks the configured depth as the game clock runs down; a
// deep search that loses on time helps nobody.
func (p *AIPlayer) searchDepth() int {
	depth := p.cfg.Depth
	switch {
	case p.clock <= 10*time.Second:
		if depth > 2 {
			depth = 2
		}
	case p.clock <= 30*time.Second:
		if depth > 3 {
			depth = 3
		}
	}
	if depth < 1 {
		depth = 1
	}
	return depth
}

// BestAction searches the mirror and returns the action to play. The first
// true turn comes from the opening book. The mirror is not advanced; the
// caller commits the chosen action through NotifyAction once the referee
// confirms it.
func (p *AIPlayer) BestAction(ctx context.Context) (game.Action, error) {
	if p.board.GameOver() {
		return game.Action{}, errors.New("player: best action on a finished game")
	}
	if p.board.TurnCount() < 1 {
		return openingBook, nil
	}

	pre := p.zobrist.Hash(p.board)
	tstart := time.Now()
	var action game.Action
	var err error
	switch p.strategy {
	case MonteCarlo:
		action, err = p.mcts.Search(ctx)
	case Greedy:
		action = montecarlo.GreedyAction(p.board, p.color)
	case Random:
		action = montecarlo.RandomAction(p.board, p.color)
	default:
		depth := p.searchDepth()
		_, action, err = p.solver.Solve(ctx, p.color, depth)
	}
	elapsed := time.Since(tstart)
	p.clock -= elapsed
	if p.zobrist.Hash(p.board) != pre {
		panic("player: search mutated the mirror board")
	}
	if err != nil {
		return game.Action{}, err
	}
	log.Debug().
		Stringer("color", p.color).
		Stringer("strategy", p.strategy).
		Stringer("action", action).
		Dur("elapsed", elapsed).
		Dur("clock", p.clock).
		Msg("best-action")
	return action, nil
}

// NotifyAction commits an action (this player's own or the opponent's)
// onto the mirror.
func (p *AIPlayer) NotifyAction(color game.Color, a game.Action) error {
	if color != p.board.TurnColor() {
		return fmt.Errorf("player: action by %s but %s is on turn", color, p.board.TurnColor())
	}
	p.board.ApplyAction(a, false)
	return nil
}
