package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/infexion/infexion/game"
)

func TestEndgameShortcutFires(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	// red dominates: 4 pieces, 12 power, against a lone blue single that a
	// red stack can reach along one ray
	b.SetCell(game.HexPos{R: 3, Q: 0}, game.CellState{Color: game.Red, Power: 6})
	b.SetCell(game.HexPos{R: 0, Q: 0}, game.CellState{Color: game.Red, Power: 4})
	b.SetCell(game.HexPos{R: 1, Q: 1}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 5, Q: 5}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 3, Q: 3}, game.CellState{Color: game.Blue, Power: 1})

	actions, endgame := GenReduced(b, game.Red)
	is.True(endgame)
	is.Equal(actions, []game.Action{
		game.NewSpread(game.HexPos{R: 3, Q: 0}, game.DirDownRight),
	})
}

func TestEndgameShortcutOrdersByCaptureCount(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	// one blue cluster of two singles; the tall stack sweeps both along a
	// single ray while the smaller stack only reaches the near member
	b.SetCell(game.HexPos{R: 3, Q: 1}, game.CellState{Color: game.Red, Power: 6})
	b.SetCell(game.HexPos{R: 0, Q: 3}, game.CellState{Color: game.Red, Power: 3})
	b.SetCell(game.HexPos{R: 1, Q: 1}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 5, Q: 5}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 6, Q: 6}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 1, Q: 6}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 3, Q: 3}, game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(game.HexPos{R: 3, Q: 4}, game.CellState{Color: game.Blue, Power: 1})

	actions := checkEndgame(b, game.Red)
	is.Equal(actions, []game.Action{
		game.NewSpread(game.HexPos{R: 3, Q: 1}, game.DirDownRight),
		game.NewSpread(game.HexPos{R: 0, Q: 3}, game.DirUpRight),
	})
}

func TestEndgameShortcutRequiresReachability(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	// dominant red material but no stack sits on any ray into the blue
	// piece: the shortcut must refuse rather than return a partial list
	b.SetCell(game.HexPos{R: 0, Q: 0}, game.CellState{Color: game.Red, Power: 6})
	b.SetCell(game.HexPos{R: 1, Q: 1}, game.CellState{Color: game.Red, Power: 5})
	b.SetCell(game.HexPos{R: 6, Q: 6}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 3, Q: 3}, game.CellState{Color: game.Blue, Power: 2})

	is.Equal(checkEndgame(b, game.Red), nil)
}

func TestEndgameShortcutRequiresFullClusterCoverage(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	// the stack reaches (0,0) three cells up its ur ray, but the second
	// member of the blue pair sits on no qualifying ray at all; clearing
	// half a cluster does not finish the game, so the shortcut must refuse
	// rather than hide every other line
	b.SetCell(game.HexPos{R: 4, Q: 0}, game.CellState{Color: game.Red, Power: 6})
	for _, pos := range []game.HexPos{
		{R: 1, Q: 3}, {R: 2, Q: 5}, {R: 4, Q: 3},
		{R: 5, Q: 6}, {R: 6, Q: 2}, {R: 3, Q: 5},
	} {
		b.SetCell(pos, game.CellState{Color: game.Red, Power: 1})
	}
	b.SetCell(game.HexPos{R: 0, Q: 0}, game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(game.HexPos{R: 0, Q: 1}, game.CellState{Color: game.Blue, Power: 1})

	is.Equal(checkEndgame(b, game.Red), nil)
}

func TestEndgameShortcutRejectsMultipleStacks(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	b.SetCell(game.HexPos{R: 3, Q: 0}, game.CellState{Color: game.Red, Power: 6})
	b.SetCell(game.HexPos{R: 0, Q: 0}, game.CellState{Color: game.Red, Power: 4})
	b.SetCell(game.HexPos{R: 1, Q: 1}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 5, Q: 5}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 5, Q: 1}, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(game.HexPos{R: 5, Q: 2}, game.CellState{Color: game.Red, Power: 1})
	// two separated stacked blue pieces exceed the single-stack allowance
	b.SetCell(game.HexPos{R: 3, Q: 3}, game.CellState{Color: game.Blue, Power: 2})
	b.SetCell(game.HexPos{R: 0, Q: 4}, game.CellState{Color: game.Blue, Power: 2})

	is.Equal(checkEndgame(b, game.Red), nil)
}

func TestEndgameShortcutRejectsLargeClusters(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	for _, pos := range []game.HexPos{
		{R: 3, Q: 0}, {R: 0, Q: 0}, {R: 1, Q: 1},
		{R: 5, Q: 5}, {R: 5, Q: 1}, {R: 6, Q: 3},
		{R: 1, Q: 4}, {R: 6, Q: 5}, {R: 1, Q: 6},
	} {
		b.SetCell(pos, game.CellState{Color: game.Red, Power: 2})
	}
	// a connected blue run of three is beyond what one spread clears
	b.SetCell(game.HexPos{R: 3, Q: 3}, game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(game.HexPos{R: 3, Q: 4}, game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(game.HexPos{R: 3, Q: 5}, game.CellState{Color: game.Blue, Power: 1})

	is.Equal(checkEndgame(b, game.Red), nil)
}

func TestEndgameShortcutRejectsBalancedMaterial(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	b.SetCell(game.HexPos{R: 3, Q: 0}, game.CellState{Color: game.Red, Power: 6})
	b.SetCell(game.HexPos{R: 0, Q: 0}, game.CellState{Color: game.Red, Power: 6})
	b.SetCell(game.HexPos{R: 3, Q: 3}, game.CellState{Color: game.Blue, Power: 1})

	// enough power, but two pieces against one is not a 3:1 piece margin
	is.Equal(checkEndgame(b, game.Red), nil)
}
