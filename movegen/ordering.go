package movegen

import (
	"sort"

	"github.com/infexion/infexion/game"
)

// orderKey is the capture-desirability key used to sort actions before
// alpha-beta explores them. One consistent tie-break policy everywhere:
// most opponent power captured first, then fewer pieces captured
// (consolidated captures beat scattered ones), then the taller source
// stack. Spawns rank at the bottom with a nominal power of one.
type orderKey struct {
	capturedPower  int
	capturedPieces int
	srcPower       int
}

func (k orderKey) better(o orderKey) bool {
	if k.capturedPower != o.capturedPower {
		return k.capturedPower > o.capturedPower
	}
	if k.capturedPieces != o.capturedPieces {
		return k.capturedPieces < o.capturedPieces
	}
	return k.srcPower > o.srcPower
}

func keyFor(b *game.Board, color game.Color, a game.Action) orderKey {
	switch a.Type {
	case game.ActionSpawn:
		return orderKey{srcPower: 1}
	case game.ActionSpread:
		src := b.CellAt(a.Cell)
		key := orderKey{srcPower: src.Power}
		for s := 1; s <= src.Power; s++ {
			cell := b.CellAt(a.Cell.Ray(a.Dir, s))
			if cell.Color == color.Opponent() {
				key.capturedPower += cell.Power
				key.capturedPieces++
			}
		}
		return key
	}
	panic("movegen: ordering of invalid action type")
}

type actionSorter struct {
	keys    []orderKey
	actions []game.Action
}

func (s actionSorter) Len() int { return len(s.actions) }
func (s actionSorter) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.actions[i], s.actions[j] = s.actions[j], s.actions[i]
}
func (s actionSorter) Less(i, j int) bool {
	return s.keys[i].better(s.keys[j])
}

// Order sorts actions in place by descending capture desirability and
// returns the same slice.
func Order(b *game.Board, color game.Color, actions []game.Action) []game.Action {
	keys := make([]orderKey, len(actions))
	for i, a := range actions {
		keys[i] = keyFor(b, color, a)
	}
	sort.Stable(actionSorter{keys: keys, actions: actions})
	return actions
}
