package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"

	"trilines/utils"
)

type StateHash uint64

// Board holds the lattice, the drawn connections and the triangle ownership
// of one game. A Board is not safe for concurrent use; the search works on
// clones.
type Board struct {
	size           int
	currentPlayer  Player
	adjacency      map[Point]map[Point]struct{} // unit hops, symmetric
	lineOwners     map[Line]Player              // keyed by the move as played
	triangleOwners map[Triangle]Player
	triangles      map[Triangle]struct{} // every claimed triangle
	points         []Point
	validPoints    map[Point]struct{}
	validMoves     map[Line]struct{} // lines with no drawn segment yet
	gameOver       bool
	winner         Player
	hasWinner      bool
}

// MoveResult reports the outcome of ApplyMove. An invalid move leaves the
// board untouched and carries the reason in Err.
type MoveResult struct {
	Valid           bool
	Err             error
	TrianglesFormed []Triangle
	GameOver        bool
	Winner          Player
	HasWinner       bool
	CurrentPlayer   Player
}

// NewBoard creates a board of the given size with player 1 to move.
func NewBoard(size int) *Board {
	if size < 2 {
		panic(fmt.Sprintf("board size must be at least 2, got %d", size))
	}
	b := &Board{size: size}
	b.init()
	return b
}

func (b *Board) init() {
	b.currentPlayer = Player1
	b.adjacency = make(map[Point]map[Point]struct{})
	b.lineOwners = make(map[Line]Player)
	b.triangleOwners = make(map[Triangle]Player)
	b.triangles = make(map[Triangle]struct{})
	b.points = diamondPoints(b.size)
	b.validPoints = make(map[Point]struct{}, len(b.points))
	for _, p := range b.points {
		b.validPoints[p] = struct{}{}
	}
	b.validMoves = initValidMoves(b.points)
	b.gameOver = false
	b.winner = Draw
	b.hasWinner = false
}

// initValidMoves pairs every two points lying on a common lattice direction.
func initValidMoves(points []Point) map[Line]struct{} {
	moves := make(map[Line]struct{})
	for i, p := range points {
		for _, q := range points[i+1:] {
			line := NewLine(p, q)
			if line.Direction() != NoDirection {
				moves[line] = struct{}{}
			}
		}
	}
	return moves
}

// Reset returns the board to its freshly constructed state.
func (b *Board) Reset() {
	b.init()
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) CurrentPlayer() Player {
	return b.currentPlayer
}

func (b *Board) GameOver() bool {
	return b.gameOver
}

// Winner returns the winning player, or Draw, once the game is over. The
// second result is false while no result has been declared.
func (b *Board) Winner() (Player, bool) {
	return b.winner, b.hasWinner
}

// Threshold is the per-player triangle count that ends the game when
// exceeded.
func (b *Board) Threshold() int {
	return (3*b.size - 3) * (b.size - 1)
}

// Points returns the valid lattice points in generation order.
func (b *Board) Points() []Point {
	return slices.Clone(b.points)
}

func (b *Board) IsValidPoint(p Point) bool {
	_, ok := b.validPoints[p]
	return ok
}

func (b *Board) IsLegal(p, q Point) bool {
	_, ok := b.validMoves[NewLine(p, q)]
	return ok
}

// ValidMoves returns the legal lines in canonical order.
func (b *Board) ValidMoves() []Line {
	return utils.SortedKeys(b.validMoves, CompareLines)
}

func (b *Board) NumValidMoves() int {
	return len(b.validMoves)
}

func (b *Board) Adjacent(p, q Point) bool {
	_, ok := b.adjacency[p][q]
	return ok
}

// Play is ApplyMove for an existing Line.
func (b *Board) Play(line Line) MoveResult {
	return b.ApplyMove(line.A, line.B)
}

// ApplyMove draws the line between p and q for the current player.
func (b *Board) ApplyMove(p, q Point) MoveResult {
	if b.gameOver {
		return MoveResult{
			Err:           fmt.Errorf("%w: cannot play %v", ErrGameOver, NewLine(p, q)),
			GameOver:      true,
			Winner:        b.winner,
			HasWinner:     b.hasWinner,
			CurrentPlayer: b.currentPlayer,
		}
	}
	if !b.IsLegal(p, q) {
		return MoveResult{
			Err:           fmt.Errorf("%w: %v is not available", ErrIllegalMove, NewLine(p, q)),
			CurrentPlayer: b.currentPlayer,
		}
	}

	line := NewLine(p, q)
	chain := line.Points()
	for i := 1; i < len(chain); i++ {
		b.connect(chain[i-1], chain[i])
	}

	// Every sub-line of the drawn span is now taken
	for i := range chain {
		for j := i + 1; j < len(chain); j++ {
			delete(b.validMoves, NewLine(chain[i], chain[j]))
		}
	}

	b.lineOwners[line] = b.currentPlayer

	formed := []Triangle{}
	for _, t := range b.FindTrianglesForLine(chain) {
		if _, ok := b.triangles[t]; ok {
			continue
		}
		b.triangles[t] = struct{}{}
		b.triangleOwners[t] = b.currentPlayer
		formed = append(formed, t)
	}

	b.checkGameOver()
	b.currentPlayer = b.currentPlayer.Opponent()

	return MoveResult{
		Valid:           true,
		TrianglesFormed: formed,
		GameOver:        b.gameOver,
		Winner:          b.winner,
		HasWinner:       b.hasWinner,
		CurrentPlayer:   b.currentPlayer,
	}
}

func (b *Board) connect(p, q Point) {
	if b.adjacency[p] == nil {
		b.adjacency[p] = make(map[Point]struct{})
	}
	if b.adjacency[q] == nil {
		b.adjacency[q] = make(map[Point]struct{})
	}
	b.adjacency[p][q] = struct{}{}
	b.adjacency[q][p] = struct{}{}
}

// FindTrianglesForLine returns every triangle that has a corner in points,
// in canonical order. Only the neighbourhoods of the given points are
// inspected.
func (b *Board) FindTrianglesForLine(points []Point) []Triangle {
	found := make(map[Triangle]struct{})
	for _, p := range points {
		neighbors := b.adjacency[p]
		for x := range neighbors {
			for y := range neighbors {
				if !x.Less(y) {
					continue
				}
				if _, ok := b.adjacency[x][y]; ok {
					found[NewTriangle(p, x, y)] = struct{}{}
				}
			}
		}
	}
	return utils.SortedKeys(found, CompareTriangles)
}

// checkGameOver applies the termination rule. Crossing the threshold hands
// the win to the other player.
func (b *Board) checkGameOver() {
	threshold := b.Threshold()
	s1, s2 := b.Score(Player1), b.Score(Player2)

	if s1 > threshold || s2 > threshold {
		crossing := Player1
		if s2 > threshold {
			crossing = Player2
		}
		b.gameOver = true
		b.winner = crossing.Opponent()
		b.hasWinner = true
	}

	if s1 == threshold && s2 == threshold {
		b.gameOver = true
		b.winner = Draw
		b.hasWinner = true
	}
}

func (b *Board) Score(p Player) int {
	n := 0
	for _, owner := range b.triangleOwners {
		if owner == p {
			n++
		}
	}
	return n
}

func (b *Board) Scores() map[Player]int {
	return map[Player]int{
		Player1: b.Score(Player1),
		Player2: b.Score(Player2),
	}
}

// Clone returns a fully independent copy, valid-move set included.
func (b *Board) Clone() *Board {
	adjacency := make(map[Point]map[Point]struct{}, len(b.adjacency))
	for p, neighbors := range b.adjacency {
		neighborsCopy := make(map[Point]struct{}, len(neighbors))
		for q := range neighbors {
			neighborsCopy[q] = struct{}{}
		}
		adjacency[p] = neighborsCopy
	}

	lineOwners := make(map[Line]Player, len(b.lineOwners))
	for line, owner := range b.lineOwners {
		lineOwners[line] = owner
	}

	triangleOwners := make(map[Triangle]Player, len(b.triangleOwners))
	for t, owner := range b.triangleOwners {
		triangleOwners[t] = owner
	}

	triangles := make(map[Triangle]struct{}, len(b.triangles))
	for t := range b.triangles {
		triangles[t] = struct{}{}
	}

	validPoints := make(map[Point]struct{}, len(b.validPoints))
	for p := range b.validPoints {
		validPoints[p] = struct{}{}
	}

	validMoves := make(map[Line]struct{}, len(b.validMoves))
	for line := range b.validMoves {
		validMoves[line] = struct{}{}
	}

	return &Board{
		size:           b.size,
		currentPlayer:  b.currentPlayer,
		adjacency:      adjacency,
		lineOwners:     lineOwners,
		triangleOwners: triangleOwners,
		triangles:      triangles,
		points:         slices.Clone(b.points),
		validPoints:    validPoints,
		validMoves:     validMoves,
		gameOver:       b.gameOver,
		winner:         b.winner,
		hasWinner:      b.hasWinner,
	}
}

// Hash identifies a position by its drawn lines, their owners and the
// player to move.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(b.currentPlayer))

	for _, line := range utils.SortedKeys(b.lineOwners, CompareLines) {
		binary.Write(hasher, binary.LittleEndian, [5]int64{
			int64(line.A.Row), int64(line.A.Col),
			int64(line.B.Row), int64(line.B.Col),
			int64(b.lineOwners[line]),
		})
	}

	for _, triangle := range utils.SortedKeys(b.triangleOwners, CompareTriangles) {
		binary.Write(hasher, binary.LittleEndian, [7]int64{
			int64(triangle[0].Row), int64(triangle[0].Col),
			int64(triangle[1].Row), int64(triangle[1].Col),
			int64(triangle[2].Row), int64(triangle[2].Col),
			int64(b.triangleOwners[triangle]),
		})
	}

	return StateHash(hasher.Sum64())
}
