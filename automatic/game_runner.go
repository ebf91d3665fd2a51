// Package automatic hosts engine-vs-engine games: one referee board, two
// AI players keeping their own mirrors, every action committed to all
// three. Used for strategy comparison and regression runs.
package automatic

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/infexion/infexion/ai/player"
	"github.com/infexion/infexion/config"
	"github.com/infexion/infexion/game"
)

// GameResult is the outcome of one self-play game.
type GameResult struct {
	Winner string   `yaml:"winner"`
	Turns  int      `yaml:"turns"`
	Red    string   `yaml:"red"`
	Blue   string   `yaml:"blue"`
	Moves  []string `yaml:"moves,omitempty,flow"`
}

// GameRunner plays games between two configured engines.
type GameRunner struct {
	redCfg  *config.Config
	blueCfg *config.Config

	logMu     sync.Mutex
	logStream io.Writer
	logMoves  bool
}

func NewGameRunner(redCfg, blueCfg *config.Config) *GameRunner {
	return &GameRunner{redCfg: redCfg, blueCfg: blueCfg}
}

// SetLogStream writes one YAML GameResult per finished game to l.
func (r *GameRunner) SetLogStream(l io.Writer, includeMoves bool) {
	r.logStream = l
	r.logMoves = includeMoves
}

// PlayGame runs a single game to completion and returns its result.
func (r *GameRunner) PlayGame(ctx context.Context) (GameResult, error) {
	red, err := player.New(game.Red, r.redCfg)
	if err != nil {
		return GameResult{}, err
	}
	blue, err := player.New(game.Blue, r.blueCfg)
	if err != nil {
		return GameResult{}, err
	}
	players := map[game.Color]*player.AIPlayer{game.Red: red, game.Blue: blue}

	referee := game.NewBoard()
	var moves []string
	for !referee.GameOver() {
		if ctx.Err() != nil {
			return GameResult{}, ctx.Err()
		}
		mover := referee.TurnColor()
		action, err := players[mover].BestAction(ctx)
		if err != nil {
			return GameResult{}, fmt.Errorf("automatic: %s to move: %w", mover, err)
		}
		referee.ApplyAction(action, false)
		for _, p := range players {
			if err := p.NotifyAction(mover, action); err != nil {
				return GameResult{}, err
			}
		}
		if r.logMoves {
			moves = append(moves, fmt.Sprintf("%s %s", mover, action))
		}
	}

	result := GameResult{
		Turns: referee.TurnCount(),
		Red:   r.redCfg.Strategy,
		Blue:  r.blueCfg.Strategy,
		Moves: moves,
	}
	winner, decisive := referee.Winner()
	if decisive {
		result.Winner = winner.String()
	} else {
		result.Winner = "draw"
	}
	if err := r.logResult(result); err != nil {
		return GameResult{}, err
	}
	return result, nil
}

func (r *GameRunner) logResult(result GameResult) error {
	if r.logStream == nil {
		return nil
	}
	out, err := yaml.Marshal([]GameResult{result})
	if err != nil {
		return err
	}
	r.logMu.Lock()
	defer r.logMu.Unlock()
	_, err = r.logStream.Write(out)
	return err
}

// RunGames plays n games across the given number of goroutines and
// aggregates their results. Each goroutine runs whole games; players are
// never shared between goroutines.
func (r *GameRunner) RunGames(ctx context.Context, n, threads int) (*Stats, error) {
	if threads < 1 {
		threads = 1
	}
	stats := NewStats()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			result, err := r.PlayGame(ctx)
			if err != nil {
				return err
			}
			stats.Add(result)
			log.Info().
				Int("game", i).
				Str("winner", result.Winner).
				Int("turns", result.Turns).
				Msg("selfplay-game-done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
