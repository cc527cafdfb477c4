package game

import (
	"fmt"
	"slices"
)

type Direction int

const (
	NoDirection Direction = iota
	Vertical              // constant column
	Horizontal            // constant row
	Diagonal              // row and column grow together
)

// Line is an unordered pair of points, stored with A < B.
type Line struct {
	A Point
	B Point
}

// NewLine returns the canonical line between p and q.
func NewLine(p, q Point) Line {
	if q.Less(p) {
		p, q = q, p
	}
	return Line{A: p, B: q}
}

func (l Line) String() string {
	return fmt.Sprintf("%v-%v", l.A, l.B)
}

// Direction classifies the line. Lines that fit none of the three lattice
// directions, or whose endpoints coincide, have NoDirection.
func (l Line) Direction() Direction {
	dr := l.B.Row - l.A.Row
	dc := l.B.Col - l.A.Col
	switch {
	case dr == 0 && dc == 0:
		return NoDirection
	case dc == 0:
		return Vertical
	case dr == 0:
		return Horizontal
	case dr == dc:
		return Diagonal
	}
	return NoDirection
}

// Points walks the line from A to B one lattice step at a time, both ends
// included. A line with NoDirection yields nil.
func (l Line) Points() []Point {
	var step Point
	switch l.Direction() {
	case Vertical:
		step = Point{Row: 1}
	case Horizontal:
		step = Point{Col: 1}
	case Diagonal:
		step = Point{Row: 1, Col: 1}
	default:
		return nil
	}

	points := []Point{l.A}
	for p := l.A; p != l.B; {
		p = Point{Row: p.Row + step.Row, Col: p.Col + step.Col}
		points = append(points, p)
	}
	return points
}

// CompareLines orders lines by their first, then second endpoint.
func CompareLines(a, b Line) int {
	if c := Compare(a.A, b.A); c != 0 {
		return c
	}
	return Compare(a.B, b.B)
}

// Triangle is three mutually adjacent points in sorted order.
type Triangle [3]Point

func NewTriangle(p, q, r Point) Triangle {
	t := Triangle{p, q, r}
	slices.SortFunc(t[:], Compare)
	return t
}

func CompareTriangles(a, b Triangle) int {
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
