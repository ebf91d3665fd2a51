package game

import (
	"fmt"
	"strings"
)

// SetCell places a cell state directly, bypassing the action machinery.
// It is meant for position setup in tests and the analysis shell; it does
// not touch the mutation history.
func (b *Board) SetCell(pos HexPos, cell CellState) {
	b.cells[pos.Index()] = cell.normalize()
}

// ToDisplayText returns a plain-text rendering of the board, one row per
// r coordinate, staggered to suggest the hex layout.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn %d, %s to move\n", b.turnCount, b.turnColor)
	for r := BoardN - 1; r >= 0; r-- {
		sb.WriteString(strings.Repeat(" ", r*2))
		for q := 0; q < BoardN; q++ {
			cell := b.cells[HexPos{r, q}.Index()]
			switch cell.Color {
			case Red:
				fmt.Fprintf(&sb, " r%d ", cell.Power)
			case Blue:
				fmt.Fprintf(&sb, " b%d ", cell.Power)
			default:
				sb.WriteString(" .. ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
