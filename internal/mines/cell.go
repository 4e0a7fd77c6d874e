package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellStatus is the mutable per-cell state. Transitions happen only through
// [Board.OpenCell], [Board.ToggleFlag] and the end-of-game bookkeeping.
type CellStatus int8

const (
	Closed CellStatus = iota
	Opened
	Flagged
)

// Point addresses a cell by its row and column.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellInfo is the result of a single-cell query. MineCount is meaningful
// only once the cell is Opened; Mined only once the game has ended.
type CellInfo struct {
	Status    CellStatus
	MineCount int
	Mined     bool
}

// CellState is the renderable projection of a cell:
//
//   - 0 to 8 mean the cell is open with that many neighboring mines;
//   - -1 means the cell carries a flag;
//   - -2 means the cell is still covered;
//   - 65 means the mine that ended the game;
//   - 66 means a flag placed on a cell with no mine under it;
//   - 67 means a mine left uncovered when the game was lost.
type CellState int8

const (
	Covered       CellState = -2
	Flag          CellState = -1
	ExplodedMine  CellState = 65
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
)

func (s CellState) String() string {
	switch {
	case s == Covered:
		return " "
	case s == Flag:
		return "*"
	case s == ExplodedMine:
		return "@"
	case s == WrongFlag:
		return "x"
	case s == UnflaggedMine:
		return "o"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// GridView is a flat row-major projection of the whole board.
type GridView []CellState

func (g GridView) ToString(cols int) string {
	var b strings.Builder
	for row := range len(g) / cols {
		for col := range cols {
			i := row*cols + col
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
