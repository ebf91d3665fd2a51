package cluster

import (
	"testing"

	"github.com/matryer/is"

	"github.com/infexion/infexion/game"
)

func TestSingleSpawnCluster(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	b.ApplyAction(game.NewSpawn(game.HexPos{R: 3, Q: 3}), true)

	cs := Build(b, game.Red)
	is.Equal(cs.Len(), 1)
	c := cs.Get(game.HexPos{R: 3, Q: 3}.Index())
	is.Equal(c.Color, game.Red)
	is.Equal(c.Size(), 1)
	is.Equal(c.Power, 1)
	is.Equal(len(c.Opponents), 0)

	// no blue clusters anywhere
	blue := BuildColor(b, game.Blue)
	is.Equal(blue.Len(), 0)
}

func TestAdjacentCellsMerge(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	p := game.HexPos{R: 2, Q: 2}
	b.SetCell(p, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(p.Add(game.DirDownRight), game.CellState{Color: game.Red, Power: 2})
	b.SetCell(p.Add(game.DirDownRight).Add(game.DirDownRight), game.CellState{Color: game.Red, Power: 3})

	cs := BuildColor(b, game.Red)
	is.Equal(cs.Len(), 1)
	var got *Cluster
	cs.Each(func(c *Cluster) { got = c })
	is.Equal(got.Size(), 3)
	is.Equal(got.Power, 6)
}

func TestBridgeMergesTwoClusters(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	// two red singletons two apart, bridged by the middle cell; because
	// PlayerCells walks in index order, the bridge is seen between them
	left := game.HexPos{R: 3, Q: 1}
	mid := game.HexPos{R: 3, Q: 2}
	right := game.HexPos{R: 3, Q: 3}
	b.SetCell(left, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(mid, game.CellState{Color: game.Red, Power: 1})
	b.SetCell(right, game.CellState{Color: game.Red, Power: 1})

	cs := BuildColor(b, game.Red)
	is.Equal(cs.Len(), 1)
	cs.Each(func(c *Cluster) {
		is.Equal(c.Size(), 3)
		is.True(c.Contains(left))
		is.True(c.Contains(mid))
		is.True(c.Contains(right))
	})
}

func TestToroidalAdjacency(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	b.SetCell(game.HexPos{R: 0, Q: 0}, game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(game.HexPos{R: 0, Q: game.BoardN - 1}, game.CellState{Color: game.Blue, Power: 1})

	cs := BuildColor(b, game.Blue)
	is.Equal(cs.Len(), 1) // the q edge wraps around
}

func TestDominanceEdges(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	// a red pair next to a blue triple
	r1 := game.HexPos{R: 2, Q: 2}
	r2 := r1.Add(game.DirUpLeft)
	b.SetCell(r1, game.CellState{Color: game.Red, Power: 2})
	b.SetCell(r2, game.CellState{Color: game.Red, Power: 1})
	b1 := r1.Add(game.DirDownRight)
	b.SetCell(b1, game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(b1.Add(game.DirDownRight), game.CellState{Color: game.Blue, Power: 1})
	b.SetCell(b1.Add(game.DirDown), game.CellState{Color: game.Blue, Power: 1})

	cs := Build(b, game.Red)
	is.Equal(cs.Len(), 2)

	var red *Cluster
	cs.Each(func(c *Cluster) {
		if c.Color == game.Red {
			red = c
		}
	})
	is.True(red != nil)
	is.Equal(red.Size(), 2)
	is.Equal(len(red.Opponents), 1)
	for id, size := range red.Opponents {
		opp := cs.Get(id)
		is.Equal(opp.Color, game.Blue)
		is.Equal(size, 3)
		is.Equal(opp.Size(), 3)
	}
}

func TestUnrecordedLookupPanics(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard()
	cs := Build(b, game.Red)
	defer func() {
		is.True(recover() != nil)
	}()
	cs.Get(17)
}
