// Package game implements the Infexion board: axial hex coordinates with
// toroidal wraparound, the spawn/spread action vocabulary, and a dense
// board representation with reversible (apply/undo) mutations suitable
// for deep search.
package game

import "fmt"

const (
	// BoardN is the side length of the axial board.
	BoardN = 7
	// MaxCellPower is the highest power a single stack can hold. A cell
	// incremented past this is wiped off the board entirely.
	MaxCellPower = BoardN - 1
	// MaxTotalPower caps the combined power of all pieces on the board.
	MaxTotalPower = BoardN * BoardN
	// MaxTurns ends the game in adjudication if neither side has been
	// eliminated by then.
	MaxTurns = BoardN * BoardN * BoardN
	// MinMoveWin is the minimum number of plies before a win can be declared.
	MinMoveWin = 2
	// WinPowerDiff is the power margin needed to win on adjudication.
	WinPowerDiff = 2
)

// HexPos is a position on the board in axial (r, q) coordinates.
// All arithmetic wraps modulo BoardN; the board is a torus.
type HexPos struct {
	R, Q int
}

// HexDir is one of the six axial directions.
type HexDir struct {
	R, Q int
}

var (
	DirDownRight = HexDir{0, 1}
	DirDown      = HexDir{-1, 1}
	DirDownLeft  = HexDir{-1, 0}
	DirUpLeft    = HexDir{0, -1}
	DirUp        = HexDir{1, -1}
	DirUpRight   = HexDir{1, 0}
)

// Directions lists all six hex directions in a stable order.
var Directions = [6]HexDir{DirDownRight, DirDown, DirDownLeft, DirUpLeft, DirUp, DirUpRight}

func (d HexDir) Neg() HexDir {
	return HexDir{-d.R, -d.Q}
}

func (d HexDir) String() string {
	switch d {
	case DirDownRight:
		return "dr"
	case DirDown:
		return "d"
	case DirDownLeft:
		return "dl"
	case DirUpLeft:
		return "ul"
	case DirUp:
		return "u"
	case DirUpRight:
		return "ur"
	}
	return fmt.Sprintf("dir(%d,%d)", d.R, d.Q)
}

// ParseDir is the inverse of HexDir.String.
func ParseDir(s string) (HexDir, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return HexDir{}, fmt.Errorf("unknown direction %q", s)
}

func mod(a int) int {
	m := a % BoardN
	if m < 0 {
		m += BoardN
	}
	return m
}

// Add returns the neighboring position one step along d, wrapping toroidally.
func (p HexPos) Add(d HexDir) HexPos {
	return HexPos{mod(p.R + d.R), mod(p.Q + d.Q)}
}

// Ray returns the position k steps along d from p, wrapping toroidally.
// Negative k walks the opposite ray.
func (p HexPos) Ray(d HexDir, k int) HexPos {
	return HexPos{mod(p.R + d.R*k), mod(p.Q + d.Q*k)}
}

// Index maps the position to a stable [0, BoardN*BoardN) identity.
func (p HexPos) Index() int {
	return p.R*BoardN + p.Q
}

// PosFromIndex is the inverse of Index.
func PosFromIndex(i int) HexPos {
	return HexPos{i / BoardN, i % BoardN}
}

// Neighbors returns the six adjacent positions.
func (p HexPos) Neighbors() [6]HexPos {
	var out [6]HexPos
	for i, d := range Directions {
		out[i] = p.Add(d)
	}
	return out
}

func (p HexPos) String() string {
	return fmt.Sprintf("%d-%d", p.R, p.Q)
}

// Color identifies a player. The zero value is NoColor so that an empty
// CellState is the zero CellState.
type Color int8

const (
	NoColor Color = iota
	Red
	Blue
)

func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "none"
}
