package mines

import "errors"

var (
	ErrInvalidDimensions = errors.New("height and width must be at least 1")
	ErrInvalidMineCount  = errors.New("mine count must be non-negative and less than the number of cells")
	ErrOutOfBounds       = errors.New("cell position out of bounds")
)
