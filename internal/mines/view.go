package mines

type CellView struct {
	Row        int       `json:"row"`
	Col        int       `json:"col"`
	State      CellState `json:"state"`
	Display    Display   `json:"display"`
	Exploded   bool      `json:"exploded,omitempty"`
	Misflagged bool      `json:"misflagged,omitempty"`
}

func (b *Board) view(i int) CellView {
	c := b.cells[i]
	p := b.point(i)
	return CellView{
		Row:        p.Row,
		Col:        p.Col,
		State:      c.State,
		Display:    c.Display(),
		Exploded:   c.exploded,
		Misflagged: b.status == Lost && c.State == Flagged && !c.IsMine,
	}
}

func (b *Board) At(row, col int) (CellView, error) {
	i, err := b.indexOf(row, col)
	if err != nil {
		return CellView{}, err
	}
	return b.view(i), nil
}

// Snapshot returns every cell in row-major order.
func (b *Board) Snapshot() []CellView {
	views := make([]CellView, len(b.cells))
	for i := range b.cells {
		views[i] = b.view(i)
	}
	return views
}

// Rows is [Board.Snapshot] split into rows.
func (b *Board) Rows() [][]CellView {
	flat := b.Snapshot()
	rows := make([][]CellView, b.Height)
	for r := range rows {
		rows[r] = flat[r*b.Width : (r+1)*b.Width]
	}
	return rows
}

// Mines lists the mine positions. It is meant for tests and debugging tools;
// a presentation layer should only need [Board.Snapshot].
func (b *Board) Mines() []Point {
	ps := make([]Point, 0, b.MineCount)
	for i, c := range b.cells {
		if c.IsMine {
			ps = append(ps, b.point(i))
		}
	}
	return ps
}

// Cell exposes the raw cell, including whether it holds a mine.
func (b *Board) Cell(row, col int) (Cell, error) {
	i, err := b.indexOf(row, col)
	if err != nil {
		return Cell{}, err
	}
	return b.cells[i], nil
}
