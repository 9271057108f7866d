package config

import (
	"errors"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

var presets = map[string]mines.GameParams{
	"easy":      {Height: 9, Width: 9, MineCount: 10},
	"medium":    {Height: 16, Width: 16, MineCount: 40},
	"difficult": {Height: 16, Width: 30, MineCount: 99},
}

var ErrUnknownPreset = errors.New("preset must be one of 'easy', 'medium', 'difficult'")

func Preset(name string) (mines.GameParams, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return mines.GameParams{}, ErrUnknownPreset
	}
	return p, nil
}

// PresetName is the reverse of [Preset]; custom parameters yield "custom".
func PresetName(p mines.GameParams) string {
	for name, preset := range presets {
		if preset == p {
			return name
		}
	}
	return "custom"
}

// DefaultMaxCells is ten times the difficult preset.
const DefaultMaxCells = 4800

// MaxCells caps the size of custom boards players may create.
func MaxCells() (int, error) {
	n, err := intOr("MAX_CELLS", DefaultMaxCells)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("invalid MAX_CELLS: must be positive")
	}
	return n, nil
}
