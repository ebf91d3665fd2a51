// Package montecarlo implements Monte Carlo tree search over the shared
// mutable board. The tree stores actions, not positions; each iteration
// pops the most promising frontier node from a mutable priority queue,
// replays its action chain onto the board, expands and scores its
// children, runs a playout, and backpropagates while unwinding the chain,
// so the board is back at the root state at every loop boundary.
package montecarlo

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/infexion/infexion/alphabeta"
	"github.com/infexion/infexion/equity"
	"github.com/infexion/infexion/game"
	"github.com/infexion/infexion/movegen"
	"github.com/infexion/infexion/zobrist"
)

var ErrNoExpansion = errors.New("montecarlo: no child expanded at root")

const (
	defaultIterationLimit = 200
	defaultRolloutLimit   = 100

	// nodeFootprint is a conservative per-node heap cost used to derive
	// the node budget from physical memory.
	nodeFootprint = 512
	maxNodeBudget = 1 << 21
)

// LogIteration is a struct meant for serializing to a log-file, for debug
// and other purposes.
type LogIteration struct {
	Iteration int       `json:"iteration" yaml:"iteration"`
	Plays     []LogPlay `json:"plays" yaml:"plays"`
}

// LogPlay is one root child's running statistics.
type LogPlay struct {
	Play   string  `json:"play" yaml:"play"`
	Visits int     `json:"visits" yaml:"visits"`
	Value  float64 `json:"value" yaml:"value"`
	UCT    float64 `json:"uct" yaml:"uct"`
}

// Searcher runs one Monte Carlo search at a time over a borrowed board.
type Searcher struct {
	board   *game.Board
	color   game.Color
	zobrist *zobrist.Zobrist
	solver  *alphabeta.Solver

	policy         RolloutPolicy
	iterationLimit int
	rolloutLimit   int
	nodeBudget     int
	moveTime       time.Duration

	deadline  time.Time
	nodeCount int
	logStream io.Writer
}

// Init points the searcher at a board and the color it searches for.
func (s *Searcher) Init(b *game.Board, color game.Color) error {
	if b == nil {
		return errors.New("montecarlo: init with nil board")
	}
	s.board = b
	s.color = color
	s.zobrist = &zobrist.Zobrist{}
	s.zobrist.Initialize()
	s.solver = &alphabeta.Solver{}
	if err := s.solver.Init(b); err != nil {
		return err
	}
	s.solver.SetVariant(alphabeta.Negamax)
	if s.iterationLimit == 0 {
		s.iterationLimit = defaultIterationLimit
	}
	if s.rolloutLimit == 0 {
		s.rolloutLimit = defaultRolloutLimit
	}
	if s.nodeBudget == 0 {
		budget := int(memory.TotalMemory() / (nodeFootprint * 8))
		if budget > maxNodeBudget || budget == 0 {
			budget = maxNodeBudget
		}
		s.nodeBudget = budget
	}
	return nil
}

func (s *Searcher) SetRolloutPolicy(p RolloutPolicy) {
	s.policy = p
}

func (s *Searcher) SetIterationLimit(n int) {
	s.iterationLimit = n
}

func (s *Searcher) SetRolloutLimit(n int) {
	s.rolloutLimit = n
}

func (s *Searcher) SetNodeBudget(n int) {
	s.nodeBudget = n
}

// SetMoveTime bounds one Search call by wall clock. Zero means unbounded.
func (s *Searcher) SetMoveTime(d time.Duration) {
	s.moveTime = d
}

// SetLogStream directs per-iteration YAML logs at l.
func (s *Searcher) SetLogStream(l io.Writer) {
	s.logStream = l
}

func (s *Searcher) expired(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// Search runs the iteration loop and returns the root child with the
// highest UCT score.
func (s *Searcher) Search(ctx context.Context) (game.Action, error) {
	if s.board == nil {
		return game.Action{}, errors.New("montecarlo: search before init")
	}
	if s.board.GameOver() {
		return game.Action{}, ErrNoExpansion
	}
	s.deadline = time.Time{}
	if s.moveTime > 0 {
		s.deadline = time.Now().Add(s.moveTime)
	}
	tstart := time.Now()
	rootPrint := s.board.Fingerprint()
	rootKey := s.zobrist.Hash(s.board)

	root := newNode(nil, game.Action{}, rootKey, s.board.TurnCount(), equity.WinProb(s.board, s.color))
	s.nodeCount = 1
	queue := newNodeQueue()
	queue.Add(root, root.priority())
	discovered := map[uint64]struct{}{rootKey: {}}

	iteration := 0
	for iteration < s.iterationLimit && !s.expired(ctx) {
		node, ok := queue.Pop()
		if !ok {
			break
		}
		delete(discovered, node.hash)

		key := s.replay(node, rootKey)
		if s.board.GameOver() {
			s.unwind(node)
			continue
		}
		if s.nodeCount < s.nodeBudget {
			s.expand(node, key, queue, discovered)
		}
		score := s.rollout(ctx)
		s.backpropagate(node, score, queue)

		if s.board.Fingerprint() != rootPrint {
			panic("montecarlo: board not restored to root state")
		}
		iteration++
		s.logIteration(iteration, root)
	}

	if len(root.children) == 0 {
		return game.Action{}, ErrNoExpansion
	}
	best := lo.MaxBy(root.children, func(a, b *Node) bool {
		return a.uct > b.uct
	})
	log.Debug().
		Int("iterations", iteration).
		Int("nodes", s.nodeCount).
		Stringer("action", best.action).
		Float64("uct", best.uct).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("montecarlo-returning")
	return best.action, nil
}

// replay applies the node's action chain onto the board and returns the
// incrementally patched position key, cross-checked against the hash the
// node was created with.
func (s *Searcher) replay(node *Node, rootKey uint64) uint64 {
	key := rootKey
	for _, a := range node.chain() {
		s.board.ApplyAction(a, true)
		mut, ok := s.board.LastMutation()
		if !ok {
			panic("montecarlo: replayed apply left no mutation")
		}
		key = s.zobrist.AddMutation(key, mut)
	}
	if key != node.hash {
		panic("montecarlo: replayed chain does not reproduce node hash")
	}
	return key
}

// unwind undoes the node's replayed chain without touching statistics.
func (s *Searcher) unwind(node *Node) {
	for cur := node; cur.parent != nil; cur = cur.parent {
		s.board.UndoAction()
	}
}

// expand probes every reduced legal action from the node's position,
// creating a child for each board not already discovered elsewhere in the
// tree. Each probe is undone immediately.
func (s *Searcher) expand(node *Node, key uint64, queue *nodeQueue, discovered map[uint64]struct{}) {
	mover := s.board.TurnColor()
	actions, endgame := movegen.GenReduced(s.board, mover)
	if !endgame {
		movegen.Order(s.board, mover, actions)
	}
	for _, a := range actions {
		s.board.ApplyAction(a, true)
		mut, _ := s.board.LastMutation()
		childKey := s.zobrist.AddMutation(key, mut)
		if _, seen := discovered[childKey]; !seen {
			child := newNode(node, a, childKey, s.board.TurnCount(), equity.WinProb(s.board, s.color))
			s.nodeCount++
			queue.Add(child, child.priority())
			discovered[childKey] = struct{}{}
		}
		s.board.UndoAction()
	}
}

// backpropagate adds the playout score up the ancestor chain, undoing one
// replayed action per edge, and reprioritizes any queued child whose UCT
// changed.
func (s *Searcher) backpropagate(node *Node, score float64, queue *nodeQueue) {
	for cur := node; cur != nil; cur = cur.parent {
		if cur.parent != nil {
			s.board.UndoAction()
		}
		cur.visits++
		cur.value += score
		for _, child := range cur.children {
			child.computeUCT()
			if queue.Contains(child) {
				queue.Add(child, child.priority())
			}
		}
	}
}

func (s *Searcher) logIteration(iteration int, root *Node) {
	if s.logStream == nil {
		return
	}
	logIter := LogIteration{
		Iteration: iteration,
		Plays: lo.Map(root.children, func(n *Node, _ int) LogPlay {
			return LogPlay{
				Play:   n.action.String(),
				Visits: n.visits,
				Value:  n.value,
				UCT:    n.uct,
			}
		}),
	}
	out, err := yaml.Marshal([]LogIteration{logIter})
	if err != nil {
		log.Error().Err(err).Msg("marshalling log")
		return
	}
	s.logStream.Write(out)
}
