package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, height, width int, mines ...Point) *Board {
	t.Helper()
	b, err := NewWithMines(height, width, mines)
	require.NoError(t, err)
	return b
}

func TestWinOnLastSafeReveal(t *testing.T) {
	b := mustBoard(t, 3, 3, Point{1, 1})

	safe := []Point{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for n, p := range safe {
		out, err := b.Reveal(p.Row, p.Col)
		require.NoError(t, err)
		assert.Equal(t, []Point{p}, out.Revealed)

		if n < len(safe)-1 {
			assert.Equal(t, Cascaded, out.Kind)
			assert.Equal(t, InProgress, b.Status(), "won after %d reveals", n+1)
			continue
		}
		assert.Equal(t, Victory, out.Kind)
		assert.Equal(t, []Point{{1, 1}}, out.AutoFlagged)
	}

	assert.Equal(t, Won, b.Status())
	assert.Equal(t, 8, b.Opened())
	assert.Equal(t, 0, b.FlagsLeft())

	c, err := b.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Flagged, c.State)
	assert.Equal(t, DisplayFlag, c.Display)
}

func TestSingleCellBoard(t *testing.T) {
	b := mustBoard(t, 1, 1)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Victory, out.Kind)
	assert.Equal(t, []Point{{0, 0}}, out.Revealed)
	assert.Empty(t, out.AutoFlagged)
	assert.Equal(t, Won, b.Status())
}

func TestRevealMine(t *testing.T) {
	b := mustBoard(t, 3, 3, Point{0, 0}, Point{2, 2})

	_, err := b.ToggleFlag(2, 2)
	require.NoError(t, err)
	_, err = b.ToggleFlag(0, 2)
	require.NoError(t, err)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Detonated, out.Kind)
	assert.Equal(t, []Point{{0, 0}}, out.Exploded)
	assert.Equal(t, []Point{{0, 2}}, out.Misflagged)
	assert.Equal(t, []Point{{0, 0}, {2, 2}}, out.Mines)
	assert.Equal(t, Lost, b.Status())

	exploded, err := b.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, CellView{
		Row: 0, Col: 0, State: Revealed, Display: DisplayMine, Exploded: true,
	}, exploded)

	flaggedMine, err := b.At(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Revealed, flaggedMine.State)
	assert.False(t, flaggedMine.Exploded)

	wrong, err := b.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, DisplayFlag, wrong.Display)
	assert.True(t, wrong.Misflagged)
}

func TestCascadeStopsAtNumbers(t *testing.T) {
	wall := []Point{{0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2}}
	b := mustBoard(t, 5, 5, wall...)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Cascaded, out.Kind)
	assert.Len(t, out.Revealed, 10)
	assert.Equal(t, InProgress, b.Status())

	for row := range 5 {
		for col := range 5 {
			c, err := b.At(row, col)
			require.NoError(t, err)
			if col < 2 {
				assert.Equal(t, Revealed, c.State, "%d:%d", row, col)
			} else {
				assert.Equal(t, Hidden, c.State, "%d:%d", row, col)
			}
		}
	}
	assert.Equal(t, "empty", string(mustAt(t, b, 2, 0).Display))
	assert.Equal(t, "3", string(mustAt(t, b, 2, 1).Display))
	assert.Equal(t, "2", string(mustAt(t, b, 0, 1).Display))
}

func mustAt(t *testing.T, b *Board, row, col int) CellView {
	t.Helper()
	c, err := b.At(row, col)
	require.NoError(t, err)
	return c
}

func TestCascadeCompleteness(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	rounds := 200
	if testing.Short() {
		rounds = 20
	}

	for range rounds {
		b, err := New(16, 30, 60, r)
		require.NoError(t, err)

		start := -1
		for i, c := range b.cells {
			if !c.IsMine && c.AdjacentMines == 0 {
				start = i
				break
			}
		}
		if start < 0 {
			continue
		}

		p := b.point(start)
		out, err := b.Reveal(p.Row, p.Col)
		require.NoError(t, err)
		require.True(t, out.Changed())

		seen := make(map[Point]bool, len(out.Revealed))
		for _, rp := range out.Revealed {
			require.False(t, seen[rp], "%s revealed twice", rp)
			seen[rp] = true
		}
		assert.Equal(t, b.Opened(), len(out.Revealed))

		for i, c := range b.cells {
			if c.State != Revealed || c.AdjacentMines != 0 {
				continue
			}
			assert.False(t, c.IsMine)
			for _, j := range b.neighborIndices(i) {
				assert.Equal(t, Revealed, b.cells[j].State,
					"hidden neighbour %s of empty cell %s", b.point(j), b.point(i))
			}
		}
	}
}

func TestFlagBlocksCascade(t *testing.T) {
	b := mustBoard(t, 1, 5)

	_, err := b.ToggleFlag(0, 2)
	require.NoError(t, err)

	out, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Cascaded, out.Kind)
	assert.Equal(t, []Point{{0, 0}, {0, 1}}, out.Revealed)
	assert.Equal(t, InProgress, b.Status())
	assert.Equal(t, Flagged, mustAt(t, b, 0, 2).State)
	assert.Equal(t, Hidden, mustAt(t, b, 0, 3).State)
}

func TestRevealNoChange(t *testing.T) {
	b := mustBoard(t, 2, 2, Point{0, 0})

	_, err := b.ToggleFlag(1, 1)
	require.NoError(t, err)
	out, err := b.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, NoChange, out.Kind)
	assert.Equal(t, Flagged, mustAt(t, b, 1, 1).State)

	out, err = b.Reveal(0, 1)
	require.NoError(t, err)
	require.Equal(t, Cascaded, out.Kind)

	out, err = b.Reveal(0, 1)
	require.NoError(t, err)
	assert.Equal(t, NoChange, out.Kind)
	assert.Equal(t, 1, b.Opened())
}

func TestToggleFlagIsItsOwnInverse(t *testing.T) {
	b, err := New(9, 9, 10, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	before := b.Snapshot()

	out, err := b.ToggleFlag(4, 4)
	require.NoError(t, err)
	assert.Equal(t, ToggleOutcome{Changed: true, State: Flagged}, out)
	assert.Equal(t, 9, b.FlagsLeft())

	out, err = b.ToggleFlag(4, 4)
	require.NoError(t, err)
	assert.Equal(t, ToggleOutcome{Changed: true, State: Hidden}, out)

	assert.Equal(t, before, b.Snapshot())
	assert.Equal(t, 10, b.FlagsLeft())
	assert.Equal(t, InProgress, b.Status())
}

func TestToggleFlagOnRevealed(t *testing.T) {
	b := mustBoard(t, 2, 2, Point{0, 0})

	_, err := b.Reveal(1, 1)
	require.NoError(t, err)

	out, err := b.ToggleFlag(1, 1)
	require.NoError(t, err)
	assert.Equal(t, ToggleOutcome{Changed: false, State: Revealed}, out)
}

func TestToggleFlagNeverEndsGame(t *testing.T) {
	b := mustBoard(t, 1, 2, Point{0, 0})

	_, err := b.ToggleFlag(0, 0)
	require.NoError(t, err)
	assert.Equal(t, InProgress, b.Status())
}

func TestFrozenAfterGameOver(t *testing.T) {
	lost := mustBoard(t, 3, 3, Point{0, 0})
	_, err := lost.Reveal(0, 0)
	require.NoError(t, err)
	require.Equal(t, Lost, lost.Status())

	won := mustBoard(t, 3, 3, Point{0, 0})
	_, err = won.Reveal(2, 2)
	require.NoError(t, err)
	require.Equal(t, Won, won.Status())

	for _, b := range []*Board{lost, won} {
		status := b.Status()
		before := b.Snapshot()
		for row := range 3 {
			for col := range 3 {
				out, err := b.Reveal(row, col)
				require.NoError(t, err)
				assert.Equal(t, NoChange, out.Kind)

				out, err = b.Chord(row, col)
				require.NoError(t, err)
				assert.Equal(t, NoChange, out.Kind)

				tog, err := b.ToggleFlag(row, col)
				require.NoError(t, err)
				assert.False(t, tog.Changed)
			}
		}
		assert.Equal(t, NoChange, b.Forfeit().Kind)
		assert.Equal(t, before, b.Snapshot())
		assert.Equal(t, status, b.Status())
	}
}

func TestOutOfBounds(t *testing.T) {
	b := mustBoard(t, 2, 3)

	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 3}} {
		_, err := b.Reveal(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = b.ToggleFlag(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = b.Chord(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = b.At(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
	assert.Equal(t, 0, b.Opened())
}

func TestForfeit(t *testing.T) {
	b := mustBoard(t, 3, 3, Point{1, 1})
	_, err := b.ToggleFlag(0, 0)
	require.NoError(t, err)

	out := b.Forfeit()
	assert.Equal(t, Detonated, out.Kind)
	assert.Empty(t, out.Exploded)
	assert.Equal(t, []Point{{0, 0}}, out.Misflagged)
	assert.Equal(t, []Point{{1, 1}}, out.Mines)
	assert.Equal(t, Lost, b.Status())
}

func TestSnapshotRows(t *testing.T) {
	b := mustBoard(t, 2, 3, Point{0, 0})
	rows := b.Rows()
	require.Len(t, rows, 2)
	for r, row := range rows {
		require.Len(t, row, 3)
		for c, v := range row {
			assert.Equal(t, Point{r, c}, Point{v.Row, v.Col})
			assert.Equal(t, DisplayHidden, v.Display)
		}
	}
}
