package mines

import (
	"fmt"
	"strconv"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type GameStatus int8

const (
	InProgress GameStatus = iota
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "GameStatus(" + strconv.Itoa(int(s)) + ")"
	}
}

// [GameStatus] implements [encoding.TextMarshaler]
func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// [GameStatus] implements [encoding.TextUnmarshaler]
func (s *GameStatus) UnmarshalText(text []byte) error {
	for _, v := range []GameStatus{InProgress, Won, Lost} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown GameStatus %q", text)
}

// Board is a single game. It does no locking: callers that share a Board
// between goroutines must serialise every call.
type Board struct {
	GameParams
	cells   Grid
	status  GameStatus
	opened  int // revealed safe cells
	flagged int
}

func (b *Board) Status() GameStatus {
	return b.status
}

func (b *Board) Over() bool {
	return b.status != InProgress
}

// FlagsLeft is the mine count minus the flags placed. It goes negative when
// the player overflags.
func (b *Board) FlagsLeft() int {
	return b.MineCount - b.flagged
}

func (b *Board) Opened() int {
	return b.opened
}

func (b *Board) indexOf(row, col int) (int, error) {
	if !b.PointInBounds(row, col) {
		return 0, fmt.Errorf(
			"%w: (%d, %d) on a %dx%d board", ErrOutOfBounds, row, col, b.Height, b.Width,
		)
	}
	return row*b.Width + col, nil
}

// Reveal opens a hidden cell. Flagged and already revealed cells, as well as
// any cell once the game is over, are left alone.
func (b *Board) Reveal(row, col int) (Outcome, error) {
	i, err := b.indexOf(row, col)
	if err != nil {
		return Outcome{}, err
	}
	if b.status != InProgress || b.cells[i].State != Hidden {
		return Outcome{}, nil
	}
	if b.cells[i].IsMine {
		return b.detonate(i), nil
	}
	return b.settle(b.flood(i), nil), nil
}

// ToggleFlag flips a hidden cell to flagged and back. It never ends the game.
func (b *Board) ToggleFlag(row, col int) (ToggleOutcome, error) {
	i, err := b.indexOf(row, col)
	if err != nil {
		return ToggleOutcome{}, err
	}
	c := &b.cells[i]
	if b.status != InProgress || c.State == Revealed {
		return ToggleOutcome{State: c.State}, nil
	}
	if c.State == Hidden {
		c.State = Flagged
		b.flagged++
	} else {
		c.State = Hidden
		b.flagged--
	}
	return ToggleOutcome{Changed: true, State: c.State}, nil
}

// Chord reveals every hidden neighbour of a revealed numbered cell once the
// number of flagged neighbours matches its count. An unflagged mine among the
// neighbours loses the game whatever the other flags are.
func (b *Board) Chord(row, col int) (Outcome, error) {
	i, err := b.indexOf(row, col)
	if err != nil {
		return Outcome{}, err
	}
	c := b.cells[i]
	if b.status != InProgress || c.State != Revealed || c.IsMine || c.AdjacentMines == 0 {
		return Outcome{}, nil
	}

	var (
		flags      int
		live       []int
		candidates []int
		misflagged []Point
	)
	for _, j := range b.neighborIndices(i) {
		n := b.cells[j]
		switch n.State {
		case Flagged:
			flags++
			if !n.IsMine {
				misflagged = append(misflagged, b.point(j))
			}
		case Hidden:
			if n.IsMine {
				live = append(live, j)
			} else {
				candidates = append(candidates, j)
			}
		}
	}

	if flags != c.AdjacentMines {
		return Outcome{}, nil
	}
	if len(live) > 0 {
		return b.detonate(live...), nil
	}
	return b.settle(b.flood(candidates...), misflagged), nil
}

// Forfeit ends a game in progress as lost without exploding anything.
func (b *Board) Forfeit() Outcome {
	if b.status != InProgress {
		return Outcome{}
	}
	return b.detonate()
}

// flood reveals the starting cells and cascades through zero-count cells. A
// cell is revealed when it is queued, so each cell enters the queue at most
// once. Starting cells must not be mines.
func (b *Board) flood(starts ...int) []Point {
	var (
		queue    deque.Deque[int]
		revealed []Point
	)

	open := func(i int) {
		b.cells[i].State = Revealed
		b.opened++
		revealed = append(revealed, b.point(i))
		queue.PushBack(i)
	}

	for _, i := range starts {
		if b.cells[i].State == Hidden {
			open(i)
		}
	}

	for queue.Len() > 0 {
		i := queue.PopFront()
		if b.cells[i].AdjacentMines > 0 {
			continue
		}
		for _, j := range b.neighborIndices(i) {
			if b.cells[j].State == Hidden {
				open(j)
			}
		}
	}

	return revealed
}

// settle turns freshly revealed cells into an outcome and applies the win
// rule: the game is won once only mines remain unrevealed.
func (b *Board) settle(revealed []Point, misflagged []Point) Outcome {
	if len(revealed) == 0 {
		return Outcome{}
	}

	out := Outcome{
		Kind:       Cascaded,
		Revealed:   revealed,
		Misflagged: misflagged,
	}
	if b.opened != len(b.cells)-b.MineCount {
		return out
	}

	b.status = Won
	out.Kind = Victory
	for i := range b.cells {
		c := &b.cells[i]
		if c.IsMine && c.State == Hidden {
			c.State = Flagged
			b.flagged++
			out.AutoFlagged = append(out.AutoFlagged, b.point(i))
		}
	}

	Log.WithFields(logrus.Fields{
		"params":       b.Seed(),
		"auto_flagged": len(out.AutoFlagged),
	}).Debug("game won")

	return out
}

// detonate loses the game. Every mine is revealed, flags on safe cells are
// kept and reported as misflagged.
func (b *Board) detonate(exploded ...int) Outcome {
	b.status = Lost

	out := Outcome{Kind: Detonated}
	for _, i := range exploded {
		b.cells[i].exploded = true
		out.Exploded = append(out.Exploded, b.point(i))
	}

	for i := range b.cells {
		c := &b.cells[i]
		switch {
		case c.IsMine:
			if c.State == Flagged {
				b.flagged--
			}
			c.State = Revealed
			out.Mines = append(out.Mines, b.point(i))
		case c.State == Flagged:
			out.Misflagged = append(out.Misflagged, b.point(i))
		}
	}

	Log.WithFields(logrus.Fields{
		"params":     b.Seed(),
		"exploded":   out.Exploded,
		"misflagged": len(out.Misflagged),
	}).Debug("game lost")

	return out
}

// [Board] implements [fmt.Stringer]
func (b *Board) String() string {
	return b.cells.ToString(b.Width, func(c Cell) string {
		return c.Display().Symbol()
	})
}

// Layout renders mines and adjacency counts regardless of cell state.
func (b *Board) Layout() string {
	return b.cells.ToString(b.Width, func(c Cell) string {
		switch {
		case c.IsMine:
			return DisplayMine.Symbol()
		case c.AdjacentMines == 0:
			return DisplayEmpty.Symbol()
		default:
			return strconv.Itoa(c.AdjacentMines)
		}
	})
}
