package engine

import (
	"errors"

	"trilines/experiments/metrics"
	"trilines/game"
)

var ErrNoMove = errors.New("agent has no move")

// Agent picks a move for the board's current player.
type Agent interface {
	// FindMove returns a move, the metrics of finding it (zero if not
	// collected), and false when it has no move to offer
	FindMove(b *game.Board) (game.Line, metrics.SearchMetric, bool)
}
