package game

import "fmt"

// Point is a lattice vertex identified by its row and column.
type Point struct {
	Row int
	Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Compare orders points by row, then by column.
func Compare(a, b Point) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

func (p Point) Less(other Point) bool {
	return Compare(p, other) < 0
}

// Player identifies a side. Draw doubles as the winner value of a drawn game.
type Player int

const (
	Draw    Player = 0
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) Opponent() Player {
	return 3 - p
}

// diamondPoints returns the valid points of a board of the given size,
// column by column.
func diamondPoints(size int) []Point {
	points := []Point{}
	for col := 0; col < size; col++ {
		for row := 0; row < col+size; row++ {
			points = append(points, Point{Row: row, Col: col})
		}
	}

	maxCol := 2*size - 2
	count := 1
	for col := size; col <= maxCol; col++ {
		for row := count; row <= maxCol; row++ {
			points = append(points, Point{Row: row, Col: col})
		}
		count++
	}
	return points
}
