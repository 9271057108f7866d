package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

// [CellState] implements [encoding.TextMarshaler]
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// [CellState] implements [encoding.TextUnmarshaler]
func (s *CellState) UnmarshalText(text []byte) error {
	for _, v := range []CellState{Hidden, Revealed, Flagged} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown CellState %q", text)
}

type Cell struct {
	IsMine        bool
	AdjacentMines int // meaningless when IsMine
	State         CellState
	exploded      bool
}

// Display is what a presentation layer should draw for a cell: one of the
// Display* constants or an adjacency count "1" to "8".
type Display string

const (
	DisplayMine   Display = "mine"
	DisplayFlag   Display = "flag"
	DisplayHidden Display = "hidden"
	DisplayEmpty  Display = "empty"
)

func (c Cell) Display() Display {
	switch c.State {
	case Flagged:
		return DisplayFlag
	case Hidden:
		return DisplayHidden
	}
	if c.IsMine {
		return DisplayMine
	}
	if c.AdjacentMines == 0 {
		return DisplayEmpty
	}
	return Display(strconv.Itoa(c.AdjacentMines))
}

// Symbol is the one-character form used by [Board.String].
func (d Display) Symbol() string {
	switch d {
	case DisplayMine:
		return "*"
	case DisplayFlag:
		return "F"
	case DisplayHidden:
		return "-"
	case DisplayEmpty:
		return "."
	default:
		return string(d)
	}
}

type Grid []Cell

func (g Grid) ToString(width int, symbol func(Cell) string) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, symbol(g[i])+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
