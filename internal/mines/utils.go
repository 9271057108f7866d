package mines

import "fmt"

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Moore neighbourhood, clockwise from the top-left corner.
var neighborOffsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, 1},
	{1, 1}, {1, 0}, {1, -1}, {0, -1},
}

// Neighbors returns the in-bounds neighbours of p. Edge and corner cells have
// fewer than eight.
func (p GameParams) Neighbors(pt Point) []Point {
	ns := make([]Point, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		r, c := pt.Row+d.Row, pt.Col+d.Col
		if p.PointInBounds(r, c) {
			ns = append(ns, Point{r, c})
		}
	}
	return ns
}

func (p GameParams) index(pt Point) int {
	return pt.Row*p.Width + pt.Col
}

func (p GameParams) point(i int) Point {
	return Point{Row: i / p.Width, Col: i % p.Width}
}

// neighborIndices is [GameParams.Neighbors] over flat grid indices.
func (p GameParams) neighborIndices(i int) []int {
	pt := p.point(i)
	is := make([]int, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		r, c := pt.Row+d.Row, pt.Col+d.Col
		if p.PointInBounds(r, c) {
			is = append(is, r*p.Width+c)
		}
	}
	return is
}
