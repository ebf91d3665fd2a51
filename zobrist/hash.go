// Package zobrist computes incremental hashes of board positions, used to
// deduplicate transpositions in tree search.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/infexion/infexion/game"
)

const bignum = 1<<63 - 2

// stateSlots is the number of distinct occupied states per cell: two
// colors times MaxCellPower power levels. The empty cell hashes to zero.
const stateSlots = 2 * game.MaxCellPower

// Zobrist holds one random key per (cell, color, power) combination plus a
// key for the side to move. XOR-ing the keys of every occupied cell gives a
// position hash that can be patched incrementally as actions apply and undo.
type Zobrist struct {
	blueTurn uint64
	posTable [][]uint64
}

func (z *Zobrist) Initialize() {
	z.posTable = make([][]uint64, game.BoardN*game.BoardN)
	for i := range z.posTable {
		z.posTable[i] = make([]uint64, stateSlots)
		for j := 0; j < stateSlots; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.blueTurn = frand.Uint64n(bignum) + 1
}

// slot maps an occupied cell state to its table column.
func slot(cell game.CellState) int {
	c := 0
	if cell.Color == game.Blue {
		c = 1
	}
	return c*game.MaxCellPower + cell.Power - 1
}

func (z *Zobrist) cellKey(idx int, cell game.CellState) uint64 {
	if !cell.Occupied() {
		return 0
	}
	return z.posTable[idx][slot(cell)]
}

// Hash computes the position key from scratch.
func (z *Zobrist) Hash(b *game.Board) uint64 {
	key := uint64(0)
	b.ForEachCell(func(pos game.HexPos, cell game.CellState) {
		key ^= z.cellKey(pos.Index(), cell)
	})
	if b.TurnColor() == game.Blue {
		key ^= z.blueTurn
	}
	return key
}

// AddMutation patches key with the cell changes of one applied action and
// flips the side to move. XOR is its own inverse, so passing the same
// mutation again reverts the patch; the caller uses it for apply and undo
// alike.
func (z *Zobrist) AddMutation(key uint64, mut game.BoardMutation) uint64 {
	for _, cm := range mut.Cells {
		idx := cm.Pos.Index()
		key ^= z.cellKey(idx, cm.Prev)
		key ^= z.cellKey(idx, cm.Next)
	}
	return key ^ z.blueTurn
}
