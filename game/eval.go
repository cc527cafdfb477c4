package game

import "math"

// Evaluate scores the board from p's perspective: +Inf for a win, -Inf for a
// loss, 0 for a draw, and otherwise the triangle count difference.
func Evaluate(b *Board, p Player) float64 {
	if winner, ok := b.Winner(); ok {
		switch winner {
		case p:
			return math.Inf(1)
		case p.Opponent():
			return math.Inf(-1)
		default:
			return 0
		}
	}
	return float64(b.Score(p) - b.Score(p.Opponent()))
}

// MaxTriangles is the number of unit triangles on a board of the given size.
func MaxTriangles(size int) int {
	return 6 * (size - 1) * (size - 1)
}
