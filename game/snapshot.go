package game

import (
	"slices"

	"trilines/utils"
)

// State is a read-only snapshot of a board for rendering and inspection.
// Every collection is a copy; mutating it does not affect the board.
type State struct {
	CurrentPlayer  Player
	LineOwners     map[Line]Player
	TriangleOwners map[Triangle]Player
	Triangles      []Triangle // claimed triangles in canonical order
	GameOver       bool
	Winner         Player
	HasWinner      bool
	Scores         map[Player]int
	Adjacency      map[Point][]Point // sorted neighbour lists
	Size           int
}

// State returns a snapshot of the board.
func (b *Board) State() State {
	lineOwners := make(map[Line]Player, len(b.lineOwners))
	for line, owner := range b.lineOwners {
		lineOwners[line] = owner
	}

	triangleOwners := make(map[Triangle]Player, len(b.triangleOwners))
	for t, owner := range b.triangleOwners {
		triangleOwners[t] = owner
	}

	adjacency := make(map[Point][]Point, len(b.adjacency))
	for p, neighbors := range b.adjacency {
		list := make([]Point, 0, len(neighbors))
		for q := range neighbors {
			list = append(list, q)
		}
		slices.SortFunc(list, Compare)
		adjacency[p] = list
	}

	return State{
		CurrentPlayer:  b.currentPlayer,
		LineOwners:     lineOwners,
		TriangleOwners: triangleOwners,
		Triangles:      utils.SortedKeys(b.triangles, CompareTriangles),
		GameOver:       b.gameOver,
		Winner:         b.winner,
		HasWinner:      b.hasWinner,
		Scores:         b.Scores(),
		Adjacency:      adjacency,
		Size:           b.size,
	}
}
