// Package shell is the interactive analysis console: set up positions,
// play and undo moves, list generated actions, and ask any engine for its
// evaluation or best move.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/infexion/infexion/alphabeta"
	"github.com/infexion/infexion/automatic"
	"github.com/infexion/infexion/cluster"
	"github.com/infexion/infexion/config"
	"github.com/infexion/infexion/equity"
	"github.com/infexion/infexion/game"
	"github.com/infexion/infexion/montecarlo"
	"github.com/infexion/infexion/movegen"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config
	out io.Writer

	board *game.Board
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31minfexion>\033[0m ",
		HistoryFile:     "/tmp/infexion-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg, out: l.Stderr(), board: game.NewBoard()}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.out)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		quit, err := sc.execute(line)
		if err != nil {
			sc.showError(err)
		}
		if quit {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msg("Exiting readline loop...")
}

// execute dispatches one command line. The bool return requests shell exit.
func (sc *ShellController) execute(line string) (bool, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "show", "s":
		sc.showMessage(sc.board.ToDisplayText())
	case "new":
		sc.board = game.NewBoard()
		sc.showMessage("started a new game")
	case "play":
		return false, sc.play(args)
	case "spread":
		return false, sc.spread(args)
	case "undo":
		if sc.board.HistoryEmpty() {
			return false, fmt.Errorf("nothing to undo")
		}
		sc.board.UndoAction()
		sc.showMessage(sc.board.ToDisplayText())
	case "gen":
		sc.gen(args)
	case "best":
		return false, sc.best(args)
	case "eval":
		sc.eval()
	case "clusters":
		sc.clusters()
	case "set":
		return false, sc.set(args)
	case "selfplay":
		return false, sc.selfplay(args)
	case "help":
		sc.help()
	case "exit", "quit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q; try help", cmd)
	}
	return false, nil
}

func parsePos(args []string) (game.HexPos, error) {
	if len(args) < 2 {
		return game.HexPos{}, fmt.Errorf("expected <r> <q>")
	}
	r, err := strconv.Atoi(args[0])
	if err != nil {
		return game.HexPos{}, err
	}
	q, err := strconv.Atoi(args[1])
	if err != nil {
		return game.HexPos{}, err
	}
	if r < 0 || r >= game.BoardN || q < 0 || q >= game.BoardN {
		return game.HexPos{}, fmt.Errorf("coordinates out of range")
	}
	return game.HexPos{R: r, Q: q}, nil
}

// apply runs an action through the generator's legal set so the shell
// cannot corrupt the board with an illegal move. Shell moves are applied
// exploratorily, which is what makes undo work.
func (sc *ShellController) apply(a game.Action) error {
	mover := sc.board.TurnColor()
	for _, legal := range movegen.GenAll(sc.board, mover) {
		if legal == a {
			sc.board.ApplyAction(a, true)
			sc.showMessage(sc.board.ToDisplayText())
			return nil
		}
	}
	return fmt.Errorf("illegal action %s for %s", a, mover)
}

func (sc *ShellController) play(args []string) error {
	pos, err := parsePos(args)
	if err != nil {
		return err
	}
	return sc.apply(game.NewSpawn(pos))
}

func (sc *ShellController) spread(args []string) error {
	pos, err := parsePos(args)
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return fmt.Errorf("expected <r> <q> <dir: dr|d|dl|ul|u|ur>")
	}
	dir, err := game.ParseDir(args[2])
	if err != nil {
		return err
	}
	return sc.apply(game.NewSpread(pos, dir))
}

func (sc *ShellController) gen(args []string) {
	mover := sc.board.TurnColor()
	full := len(args) > 0 && args[0] == "full"
	actions, endgame := movegen.Gen(sc.board, mover, full)
	if !endgame {
		movegen.Order(sc.board, mover, actions)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d actions for %s (endgame=%v):\n", len(actions), mover, endgame)
	for i, a := range actions {
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, a)
	}
	sc.showMessage(sb.String())
}

func (sc *ShellController) best(args []string) error {
	strategy := sc.cfg.Strategy
	if len(args) > 0 {
		strategy = args[0]
	}
	depth := sc.cfg.Depth
	if len(args) > 1 {
		d, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		depth = d
	}
	mover := sc.board.TurnColor()
	ctx := context.Background()

	switch strategy {
	case "montecarlo":
		searcher := &montecarlo.Searcher{}
		if err := searcher.Init(sc.board, mover); err != nil {
			return err
		}
		searcher.SetIterationLimit(sc.cfg.MCTSIterations)
		searcher.SetRolloutLimit(sc.cfg.MCTSRolloutLimit)
		searcher.SetMoveTime(sc.cfg.MoveTime)
		action, err := searcher.Search(ctx)
		if err != nil {
			return err
		}
		sc.showMessage(fmt.Sprintf("best for %s: %s", mover, action))
	case "greedy":
		sc.showMessage(fmt.Sprintf("best for %s: %s", mover, montecarlo.GreedyAction(sc.board, mover)))
	case "random":
		sc.showMessage(fmt.Sprintf("best for %s: %s", mover, montecarlo.RandomAction(sc.board, mover)))
	case "negascout", "negamax", "minimax":
		solver := &alphabeta.Solver{}
		if err := solver.Init(sc.board); err != nil {
			return err
		}
		switch strategy {
		case "negascout":
			solver.SetVariant(alphabeta.NegaScout)
		case "negamax":
			solver.SetVariant(alphabeta.Negamax)
		case "minimax":
			solver.SetVariant(alphabeta.Minimax)
		}
		solver.SetMoveTime(sc.cfg.MoveTime)
		value, action, err := solver.Solve(ctx, mover, depth)
		if err != nil {
			return err
		}
		sc.showMessage(fmt.Sprintf("best for %s: %s (value %.2f, depth %d)", mover, action, value, depth))
	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}
	return nil
}

func (sc *ShellController) eval() {
	value := equity.Evaluate(sc.board)
	var sb strings.Builder
	fmt.Fprintf(&sb, "eval (red-positive): %.3f\n", value)
	fmt.Fprintf(&sb, "win probability red:  %.3f\n", equity.WinProb(sc.board, game.Red))
	fmt.Fprintf(&sb, "win probability blue: %.3f", equity.WinProb(sc.board, game.Blue))
	sc.showMessage(sb.String())
}

func (sc *ShellController) clusters() {
	var sb strings.Builder
	for _, color := range []game.Color{game.Red, game.Blue} {
		cs := cluster.BuildColor(sc.board, color)
		fmt.Fprintf(&sb, "%s clusters: %d\n", color, cs.Len())
		cs.Each(func(c *cluster.Cluster) {
			fmt.Fprintf(&sb, "  seed %s  size %d  power %d\n",
				game.PosFromIndex(c.Seed), c.Size(), c.Power)
		})
	}
	sc.showMessage(sb.String())
}

func (sc *ShellController) set(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set <strategy|depth> <value>")
	}
	switch args[0] {
	case "strategy":
		sc.cfg.Strategy = args[1]
	case "depth":
		d, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		sc.cfg.Depth = d
	default:
		return fmt.Errorf("unknown setting %q", args[0])
	}
	sc.showMessage("ok")
	return nil
}

func (sc *ShellController) selfplay(args []string) error {
	games := sc.cfg.SelfplayGames
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		games = n
	}
	runner := automatic.NewGameRunner(sc.cfg, sc.cfg)
	stats, err := runner.RunGames(context.Background(), games, sc.cfg.SelfplayThreads)
	if err != nil {
		return err
	}
	sc.showMessage(stats.String())
	return nil
}

func (sc *ShellController) help() {
	sc.showMessage(`commands:
  show | s                 display the board
  new                      reset to an empty board
  play <r> <q>             spawn for the side to move
  spread <r> <q> <dir>     spread (dir: dr d dl ul u ur)
  undo                     take back the last shell move
  gen [full]               list generated actions (reduced by default)
  best [strategy] [depth]  ask an engine for its move
  eval                     static evaluation and win probabilities
  clusters                 cluster census per color
  set strategy|depth <v>   change engine settings
  selfplay [n]             run n engine-vs-engine games
  exit | quit              leave the shell`)
}
