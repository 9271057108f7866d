package mines

import (
	"fmt"
	"math"
	"strings"
)

type GameParams struct {
	Height    int `json:"height" schema:"height,required"`
	Width     int `json:"width" schema:"width,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (p GameParams) Unpack() (h int, w int, mc int) {
	return p.Height, p.Width, p.MineCount
}

func (p GameParams) CellCount() int {
	return p.Height * p.Width
}

// Validate reports [ErrInvalidDimensions] or [ErrInvalidMineCount]. At least
// one cell must stay safe.
func (p GameParams) Validate() error {
	if p.Height < 1 || p.Width < 1 {
		return fmt.Errorf(
			"%w (height = %d, width = %d)", ErrInvalidDimensions, p.Height, p.Width,
		)
	}
	if p.Height > math.MaxInt/p.Width {
		return fmt.Errorf(
			"%w (height = %d, width = %d overflows cell count)",
			ErrInvalidDimensions, p.Height, p.Width,
		)
	}
	if p.MineCount < 0 || p.MineCount >= p.CellCount() {
		return fmt.Errorf(
			"%w (mine_count = %d, cells = %d)", ErrInvalidMineCount, p.MineCount, p.CellCount(),
		)
	}
	return nil
}

func (p GameParams) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Height, p.Width, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Height, &p.Width, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}
