package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// New creates a board with mineCount mines placed uniformly at random. A nil r
// falls back to a randomly seeded source.
func New(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	return NewFromParams(GameParams{
		Height: height, Width: width, MineCount: mineCount,
	}, r)
}

func NewFromParams(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := newBoard(params)
	b.placeMines(r)
	b.countAdjacent()
	return b, nil
}

// NewWithMines creates a board with mines at exactly the given positions.
func NewWithMines(height, width int, mines []Point) (*Board, error) {
	params := GameParams{Height: height, Width: width, MineCount: len(mines)}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(params)
	for _, p := range mines {
		if !params.PointInBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: mine at %s", ErrOutOfBounds, p)
		}
		i := params.index(p)
		if b.cells[i].IsMine {
			return nil, fmt.Errorf("%w: duplicate mine at %s", ErrInvalidMineCount, p)
		}
		b.cells[i].IsMine = true
	}
	b.countAdjacent()
	return b, nil
}

func newBoard(params GameParams) *Board {
	return &Board{
		GameParams: params,
		cells:      make(Grid, params.CellCount()),
	}
}

// placeMines uses rejection sampling while at most half of the cells are
// mined, and a partial Fisher-Yates pick from the candidate list above that.
func (b *Board) placeMines(r *rand.Rand) {
	total := len(b.cells)

	if b.MineCount*2 <= total {
		Log.WithFields(logrus.Fields{
			"params": b.Seed(), "strategy": "rejection",
		}).Debug("placing mines")

		for placed := 0; placed < b.MineCount; {
			i := r.IntN(total)
			if b.cells[i].IsMine {
				continue
			}
			b.cells[i].IsMine = true
			placed++
		}
		return
	}

	Log.WithFields(logrus.Fields{
		"params": b.Seed(), "strategy": "subset",
	}).Debug("placing mines")

	candidates := make([]int, total)
	for i := range candidates {
		candidates[i] = i
	}
	k := total
	for range b.MineCount {
		i := r.IntN(k)
		b.cells[candidates[i]].IsMine = true
		k--
		candidates[i] = candidates[k]
	}
}

func (b *Board) countAdjacent() {
	for i := range b.cells {
		if b.cells[i].IsMine {
			continue
		}
		n := 0
		for _, j := range b.neighborIndices(i) {
			if b.cells[j].IsMine {
				n++
			}
		}
		b.cells[i].AdjacentMines = n
	}
}
