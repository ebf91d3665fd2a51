package game

import "fmt"

// ActionType discriminates the two legal action shapes.
type ActionType int8

const (
	ActionSpawn ActionType = iota
	ActionSpread
)

// Action is the tagged union consumed by the board, the generators and the
// searchers. A spawn places a power-1 piece at Cell; a spread empties the
// mover's stack at Cell and distributes its power along Dir. Dir is
// meaningful only for spreads.
type Action struct {
	Type ActionType
	Cell HexPos
	Dir  HexDir
}

// NewSpawn returns a spawn action at pos.
func NewSpawn(pos HexPos) Action {
	return Action{Type: ActionSpawn, Cell: pos}
}

// NewSpread returns a spread action from pos along dir.
func NewSpread(pos HexPos, dir HexDir) Action {
	return Action{Type: ActionSpread, Cell: pos, Dir: dir}
}

func (a Action) String() string {
	switch a.Type {
	case ActionSpawn:
		return fmt.Sprintf("SPAWN(%d, %d)", a.Cell.R, a.Cell.Q)
	case ActionSpread:
		return fmt.Sprintf("SPREAD(%d, %d, %s)", a.Cell.R, a.Cell.Q, a.Dir)
	}
	return "INVALID"
}
