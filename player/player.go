package player

import (
	"time"

	"trilines/experiments/metrics"
	"trilines/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random player. A zero seed seeds from the clock.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// ChooseMove returns false when the board has no legal moves or the game is
// over.
func (p *Random) ChooseMove(b *game.Board) (game.Line, bool) {
	if b.GameOver() {
		return game.Line{}, false
	}
	moves := b.ValidMoves()
	if len(moves) == 0 {
		return game.Line{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}

func (p *Random) FindMove(b *game.Board) (game.Line, metrics.SearchMetric, bool) {
	move, ok := p.ChooseMove(b)
	return move, metrics.SearchMetric{Candidates: b.NumValidMoves()}, ok
}
