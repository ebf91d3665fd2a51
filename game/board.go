package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// CellState is the occupant of a single cell. Power > 0 iff Color is set;
// the zero value is an empty cell.
type CellState struct {
	Color Color
	Power int
}

// Occupied reports whether the cell holds a piece.
func (c CellState) Occupied() bool {
	return c.Power > 0
}

// normalize enforces the cell invariants: a colorless cell has no power,
// and a stack incremented past MaxCellPower is wiped from the board.
func (c CellState) normalize() CellState {
	if c.Color == NoColor || c.Power > MaxCellPower {
		return CellState{}
	}
	return c
}

// CellMutation is the atomic undo unit: one cell's state before and after
// an action touched it.
type CellMutation struct {
	Pos  HexPos
	Prev CellState
	Next CellState
}

// BoardMutation is the minimal set of cell mutations produced by one action.
type BoardMutation struct {
	Action Action
	Cells  []CellMutation
}

// Board is a dense toroidal hex board. It is created once per game and
// mutated in place: search code applies actions in exploratory mode, which
// records each BoardMutation on a history stack so the exact prior state
// can be restored, while committed (real-game) actions skip the stack and
// advance the true turn.
//
// There is exactly one mutator and no concurrent readers during search, so
// the board carries no locking.
type Board struct {
	cells     [BoardN * BoardN]CellState
	turnColor Color
	trueTurn  Color
	turnCount int
	history   []BoardMutation
}

// NewBoard returns an empty board with red to move.
func NewBoard() *Board {
	return &Board{turnColor: Red, trueTurn: Red}
}

// CellAt returns the state of the cell at pos.
func (b *Board) CellAt(pos HexPos) CellState {
	return b.cells[pos.Index()]
}

// Occupied reports whether pos holds a piece.
func (b *Board) Occupied(pos HexPos) bool {
	return b.cells[pos.Index()].Power > 0
}

// TurnColor is the color whose move it is, including exploratory plies.
func (b *Board) TurnColor() Color {
	return b.turnColor
}

// TrueTurn is the color on move in the committed (real) game, ignoring any
// exploratory plies currently applied.
func (b *Board) TrueTurn() Color {
	return b.trueTurn
}

// TurnCount is the number of plies played, exploratory ones included.
func (b *Board) TurnCount() int {
	return b.turnCount
}

// HistoryEmpty reports whether all exploratory applies have been undone.
func (b *Board) HistoryEmpty() bool {
	return len(b.history) == 0
}

// TotalPower sums the power of every piece on the board.
func (b *Board) TotalPower() int {
	total := 0
	for i := range b.cells {
		total += b.cells[i].Power
	}
	return total
}

// ColorStats returns the piece count and total power for one color in a
// single pass.
func (b *Board) ColorStats(c Color) (pieces, power int) {
	for i := range b.cells {
		if b.cells[i].Color == c {
			pieces++
			power += b.cells[i].Power
		}
	}
	return pieces, power
}

// ColorPower returns the total power for one color.
func (b *Board) ColorPower(c Color) int {
	_, power := b.ColorStats(c)
	return power
}

// ForEachCell calls f for every cell on the board in index order.
func (b *Board) ForEachCell(f func(pos HexPos, cell CellState)) {
	for i := range b.cells {
		f(PosFromIndex(i), b.cells[i])
	}
}

// PlayerCells returns the positions of every piece of the given color.
func (b *Board) PlayerCells(c Color) []HexPos {
	var out []HexPos
	for i := range b.cells {
		if b.cells[i].Color == c {
			out = append(out, PosFromIndex(i))
		}
	}
	return out
}

// MovableCells returns every cell the given color may act from: its own
// pieces, plus all empty cells while the board is under capacity.
func (b *Board) MovableCells(c Color) []HexPos {
	underCap := b.TotalPower() < MaxTotalPower
	var out []HexPos
	for i := range b.cells {
		if b.cells[i].Color == c || (underCap && b.cells[i].Power == 0) {
			out = append(out, PosFromIndex(i))
		}
	}
	return out
}

// spawn computes the single-cell mutation of a spawn action. The caller is
// trusted to pass only generator-produced actions; no legality checks here.
func (b *Board) spawn(a Action) BoardMutation {
	prev := b.CellAt(a.Cell)
	return BoardMutation{
		Action: a,
		Cells: []CellMutation{
			{Pos: a.Cell, Prev: prev, Next: CellState{Color: b.turnColor, Power: 1}},
		},
	}
}

// spread computes the mutations of a spread action: the source empties and
// each of the k cells along the ray gains one power in the mover's color.
func (b *Board) spread(a Action) BoardMutation {
	src := b.CellAt(a.Cell)
	muts := make([]CellMutation, 0, src.Power+1)
	muts = append(muts, CellMutation{Pos: a.Cell, Prev: src, Next: CellState{}})
	for k := 1; k <= src.Power; k++ {
		pos := a.Cell.Ray(a.Dir, k)
		prev := b.CellAt(pos)
		next := CellState{Color: b.turnColor, Power: prev.Power + 1}.normalize()
		muts = append(muts, CellMutation{Pos: pos, Prev: prev, Next: next})
	}
	return BoardMutation{Action: a, Cells: muts}
}

// ApplyAction mutates the board with a generator-produced action. When
// exploratory, the mutation is pushed on the history stack for a later
// UndoAction; otherwise the action is committed and the true turn advances.
func (b *Board) ApplyAction(a Action, exploratory bool) {
	var mut BoardMutation
	switch a.Type {
	case ActionSpawn:
		mut = b.spawn(a)
	case ActionSpread:
		mut = b.spread(a)
	default:
		panic("game: apply of invalid action type")
	}
	for _, cm := range mut.Cells {
		b.cells[cm.Pos.Index()] = cm.Next
	}
	b.turnColor = b.turnColor.Opponent()
	b.turnCount++
	if exploratory {
		b.history = append(b.history, mut)
	} else {
		b.trueTurn = b.turnColor
	}
}

// UndoAction reverts the most recent exploratory apply. Undoing with an
// empty history is a no-op.
func (b *Board) UndoAction() {
	if len(b.history) == 0 {
		return
	}
	mut := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	for _, cm := range mut.Cells {
		b.cells[cm.Pos.Index()] = cm.Prev
	}
	b.turnColor = b.turnColor.Opponent()
	b.turnCount--
}

// LastMutation returns the mutation of the most recent exploratory apply
// still on the history stack, for callers that maintain incremental state
// (hashes) alongside the board. The second return is false when the stack
// is empty.
func (b *Board) LastMutation() (BoardMutation, bool) {
	if len(b.history) == 0 {
		return BoardMutation{}, false
	}
	return b.history[len(b.history)-1], true
}

// Eliminated reports whether the color has no power left on the board.
func (b *Board) Eliminated(c Color) bool {
	return b.ColorPower(c) == 0
}

// GameOver reports whether the game has ended: a minimum of MinMoveWin
// plies must have elapsed, after which the game ends at the turn limit or
// as soon as either color's total power is zero.
func (b *Board) GameOver() bool {
	if b.turnCount < MinMoveWin {
		return false
	}
	return b.turnCount >= MaxTurns || b.Eliminated(Red) || b.Eliminated(Blue)
}

// Winner adjudicates a finished game. The second return is false on a draw.
func (b *Board) Winner() (Color, bool) {
	redPower := b.ColorPower(Red)
	bluePower := b.ColorPower(Blue)
	switch {
	case redPower == 0 && bluePower == 0:
		return NoColor, false
	case bluePower == 0:
		return Red, true
	case redPower == 0:
		return Blue, true
	}
	// Turn-limit adjudication: a sufficient power margin wins.
	if redPower >= bluePower+WinPowerDiff {
		return Red, true
	}
	if bluePower >= redPower+WinPowerDiff {
		return Blue, true
	}
	return NoColor, false
}

// Fingerprint digests the full cell map and turn owner. Search entry
// points compare fingerprints before and after a search to assert the
// apply/undo discipline held.
func (b *Board) Fingerprint() uint64 {
	buf := make([]byte, 0, BoardN*BoardN*2+3)
	for i := range b.cells {
		buf = append(buf, byte(b.cells[i].Color), byte(b.cells[i].Power))
	}
	buf = append(buf, byte(b.turnColor))
	var count [2]byte
	binary.LittleEndian.PutUint16(count[:], uint16(b.turnCount))
	buf = append(buf, count[:]...)
	return xxhash.Sum64(buf)
}
