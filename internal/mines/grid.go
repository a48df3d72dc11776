package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player sees of a cell.
type CellState int8

const (
	Closed        CellState = -2
	Flagged       CellState = -1
	Opened        CellState = 0
	OpenedMine    CellState = 64 // post-game-over
	TriggeredMine CellState = 65
	/*
	 * 0 to 8 mean the cell is open and not a mine; the value is the
	 * number of mines around it. 0 is an open blank cell.
	 */
)

func (s CellState) IsNumber() bool {
	return 1 <= s && s <= 8
}

func (s CellState) IsOpen() bool {
	return 0 <= s && s <= 8 || s == OpenedMine || s == TriggeredMine
}

// CellState implements [fmt.Stringer]
func (s CellState) String() string {
	switch {
	case s == Closed:
		return "-"
	case s == Flagged:
		return "F"
	case s == Opened:
		return "."
	case s.IsNumber():
		return strconv.Itoa(int(s))
	case s == OpenedMine:
		return "*"
	case s == TriggeredMine:
		return "X"
	default:
		return "?"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

type CellUpdate struct {
	X     int       `json:"x"`
	Y     int       `json:"y"`
	State CellState `json:"state"`
}
