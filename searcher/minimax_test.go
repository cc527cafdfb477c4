package searcher

import (
	"math"
	"testing"

	"trilines/game"

	"github.com/stretchr/testify/require"
)

func pt(row, col int) game.Point {
	return game.Point{Row: row, Col: col}
}

func line(a, b game.Point) game.Line {
	return game.NewLine(a, b)
}

func playAll(t *testing.T, b *game.Board, lines ...game.Line) {
	t.Helper()
	for _, l := range lines {
		result := b.Play(l)
		require.True(t, result.Valid, "Move %v should be legal: %v", l, result.Err)
	}
}

// oneMoveLeft returns a size-2 board where player 1 has a single legal move
// and the game is still running (player 1: 2 triangles, player 2: 3).
func oneMoveLeft(t *testing.T) *game.Board {
	b := game.NewBoard(2)
	playAll(t, b,
		// spokes through the centre, no triangles yet
		line(pt(0, 1), pt(2, 1)),
		line(pt(1, 0), pt(1, 2)),
		line(pt(0, 0), pt(2, 2)),
		// rim, each edge closes one triangle
		line(pt(0, 0), pt(1, 0)),
		line(pt(0, 0), pt(0, 1)),
		line(pt(0, 1), pt(1, 2)),
		line(pt(1, 2), pt(2, 2)),
		line(pt(2, 1), pt(2, 2)),
	)
	require.Equal(t, 1, b.NumValidMoves())
	require.False(t, b.GameOver())
	require.Equal(t, game.Player1, b.CurrentPlayer())
	return b
}

// losingSpoke returns a size-2 board with the rim and two spokes drawn.
// Player 1 is to move with three options: either half of the last spoke
// (two triangles each) or the whole spoke (four triangles, which crosses the
// threshold and loses).
func losingSpoke(t *testing.T) *game.Board {
	b := game.NewBoard(2)
	playAll(t, b,
		line(pt(0, 0), pt(1, 0)),
		line(pt(0, 0), pt(0, 1)),
		line(pt(0, 1), pt(1, 2)),
		line(pt(1, 2), pt(2, 2)),
		line(pt(2, 1), pt(2, 2)),
		line(pt(1, 0), pt(2, 1)),
		line(pt(0, 1), pt(2, 1)),
		line(pt(1, 0), pt(1, 2)),
	)
	require.Equal(t, []game.Line{
		line(pt(0, 0), pt(1, 1)),
		line(pt(0, 0), pt(2, 2)),
		line(pt(1, 1), pt(2, 2)),
	}, b.ValidMoves())
	require.Equal(t, 2, b.Score(game.Player2))
	return b
}

func TestNewMinimax(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMinimax(game.Player2)

		require.Equal(t, game.Player2, m.Player())
		require.Equal(t, 3, m.Depth())
		require.Equal(t, 1, m.goroutines)
		require.False(t, m.pruning)
	})

	t.Run("ignores non-positive options", func(t *testing.T) {
		m := NewMinimax(game.Player1, WithDepth(0), WithGoroutines(-2))

		require.Equal(t, 3, m.Depth())
		require.Equal(t, 1, m.goroutines)
	})

	t.Run("panics for a non-player", func(t *testing.T) {
		require.Panics(t, func() { NewMinimax(game.Draw) })
	})
}

func TestChooseMove(t *testing.T) {
	t.Run("single legal move is returned regardless of score", func(t *testing.T) {
		for _, depth := range []int{1, 2, 3} {
			b := oneMoveLeft(t)
			m := NewMinimax(game.Player1, WithDepth(depth), WithSeed(1))

			move, ok := m.ChooseMove(b)

			require.True(t, ok)
			require.Equal(t, line(pt(1, 0), pt(2, 1)), move, "depth %d", depth)
		}
	})

	t.Run("no move on a finished board", func(t *testing.T) {
		b := oneMoveLeft(t)
		playAll(t, b, line(pt(1, 0), pt(2, 1)))
		require.True(t, b.GameOver())
		require.Equal(t, 0, b.NumValidMoves())

		_, ok := NewMinimax(game.Player2, WithDepth(1)).ChooseMove(b)

		require.False(t, ok)
	})

	t.Run("no move once the game is decided even with lines left", func(t *testing.T) {
		b := losingSpoke(t)
		playAll(t, b,
			line(pt(0, 0), pt(1, 1)),
			line(pt(1, 1), pt(2, 2)), // player 2 crosses the threshold
		)
		require.True(t, b.GameOver())
		require.True(t, b.IsLegal(pt(0, 0), pt(2, 2)))

		_, ok := NewMinimax(game.Player1, WithDepth(1)).ChooseMove(b)

		require.False(t, ok)
	})

	t.Run("takes a triangle when one is on offer", func(t *testing.T) {
		b := game.NewBoard(3)
		playAll(t, b,
			line(pt(0, 0), pt(1, 0)),
			line(pt(0, 0), pt(1, 1)),
		)

		for seed := uint64(1); seed <= 5; seed++ {
			m := NewMinimax(game.Player1, WithDepth(1), WithSeed(seed))

			move, ok := m.ChooseMove(b)

			require.True(t, ok)
			result := b.Clone().Play(move)
			require.Len(t, result.TrianglesFormed, 1, "Move %v should close the open triangle", move)
		}
	})

	t.Run("avoids crossing the threshold", func(t *testing.T) {
		b := losingSpoke(t)

		for seed := uint64(1); seed <= 20; seed++ {
			m := NewMinimax(game.Player1, WithDepth(1), WithSeed(seed))

			move, ok := m.ChooseMove(b)

			require.True(t, ok)
			require.NotEqual(t, line(pt(0, 0), pt(2, 2)), move)
		}
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := losingSpoke(t)
		before := b.State()
		moves := b.ValidMoves()

		NewMinimax(game.Player1, WithDepth(2)).ChooseMove(b)

		require.Equal(t, before, b.State())
		require.Equal(t, moves, b.ValidMoves())
	})
}

func TestFindMove(t *testing.T) {
	t.Run("depth 2 sees the opponent forced over the threshold", func(t *testing.T) {
		b := losingSpoke(t)
		m := NewMinimax(game.Player1, WithDepth(2), WithSeed(3), WithMetrics())

		move, metric, ok := m.FindMove(b)

		require.True(t, ok)
		require.NotEqual(t, line(pt(0, 0), pt(2, 2)), move)
		require.True(t, math.IsInf(metric.Score, 1), "Either half spoke leaves player 2 a losing reply")
		require.Equal(t, 3, metric.Candidates)
		// The whole spoke stays legal under a half spoke, so each live child
		// has two replies
		require.Equal(t, 7, metric.Nodes)
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("metrics are zero without a collector", func(t *testing.T) {
		b := losingSpoke(t)

		_, metric, ok := NewMinimax(game.Player1, WithDepth(1)).FindMove(b)

		require.True(t, ok)
		require.Zero(t, metric.Nodes)
	})
}

func TestPruningAndParallelAgree(t *testing.T) {
	b := game.NewBoard(3)
	playAll(t, b,
		line(pt(0, 0), pt(1, 0)),
		line(pt(0, 0), pt(1, 1)),
		line(pt(2, 0), pt(2, 4)),
		line(pt(0, 2), pt(4, 2)),
		line(pt(1, 0), pt(3, 2)),
	)

	for seed := uint64(1); seed <= 3; seed++ {
		plain, plainMetric, ok := NewMinimax(game.Player2, WithDepth(2), WithSeed(seed), WithMetrics()).FindMove(b)
		require.True(t, ok)

		pruned, prunedMetric, ok := NewMinimax(game.Player2, WithDepth(2), WithSeed(seed), WithPruning(), WithMetrics()).FindMove(b)
		require.True(t, ok)

		parallel, parallelMetric, ok := NewMinimax(game.Player2, WithDepth(2), WithSeed(seed), WithGoroutines(4), WithMetrics()).FindMove(b)
		require.True(t, ok)

		require.Equal(t, plain, pruned, "Pruning should not change the chosen move")
		require.Equal(t, plain, parallel, "Parallel root scoring should not change the chosen move")
		require.Equal(t, plainMetric.Score, prunedMetric.Score)
		require.Equal(t, plainMetric.Nodes, parallelMetric.Nodes)
		require.LessOrEqual(t, prunedMetric.Nodes, plainMetric.Nodes)
	}
}

func TestMinimaxLeaves(t *testing.T) {
	m := NewMinimax(game.Player1, WithDepth(3))

	t.Run("won and lost positions are infinite", func(t *testing.T) {
		b := losingSpoke(t)
		playAll(t, b, line(pt(0, 0), pt(2, 2))) // player 1 crosses, player 2 wins

		require.True(t, math.IsInf(m.minimax(b, 3, true), -1))
		require.True(t, math.IsInf(NewMinimax(game.Player2).minimax(b, 3, true), 1))
		require.True(t, math.IsInf(m.alphabeta(b, 3, math.Inf(-1), math.Inf(1), true), -1))
	})

	t.Run("drawn position is zero", func(t *testing.T) {
		b := oneMoveLeft(t)
		playAll(t, b, line(pt(1, 0), pt(2, 1)))

		require.Equal(t, 0.0, m.minimax(b, 2, false))
	})

	t.Run("depth zero is the triangle difference", func(t *testing.T) {
		b := oneMoveLeft(t)

		require.Equal(t, -1.0, m.minimax(b, 0, true))
		require.Equal(t, -1.0, m.alphabeta(b, 0, math.Inf(-1), math.Inf(1), true))
	})
}

func TestPickBest(t *testing.T) {
	moves := []game.Line{
		line(pt(0, 0), pt(1, 0)),
		line(pt(0, 0), pt(0, 1)),
		line(pt(0, 0), pt(1, 1)),
	}
	all := []bool{true, true, true}

	t.Run("strict maximum wins", func(t *testing.T) {
		m := NewMinimax(game.Player1, WithSeed(1))

		move, score := m.pickBest(moves, []float64{1, 3, 2}, all)

		require.Equal(t, moves[1], move)
		require.Equal(t, 3.0, score)
	})

	t.Run("unplayed moves are skipped", func(t *testing.T) {
		m := NewMinimax(game.Player1, WithSeed(1))

		move, _ := m.pickBest(moves, []float64{1, 3, 2}, []bool{true, false, true})

		require.Equal(t, moves[2], move)
	})

	t.Run("all losing falls back to a random move", func(t *testing.T) {
		m := NewMinimax(game.Player1, WithSeed(1))
		lost := []float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

		seen := map[game.Line]bool{}
		for i := 0; i < 200; i++ {
			move, score := m.pickBest(moves, lost, all)
			require.True(t, math.IsInf(score, -1))
			seen[move] = true
		}
		require.Len(t, seen, 3, "Fallback should reach every move")
	})

	t.Run("ties favour later moves", func(t *testing.T) {
		m := NewMinimax(game.Player1, WithSeed(7))
		tied := []float64{0, 0, 0}

		counts := map[game.Line]int{}
		for i := 0; i < 4000; i++ {
			move, _ := m.pickBest(moves, tied, all)
			counts[move]++
		}
		// Expected shares are 1/4, 1/4 and 1/2
		require.InDelta(t, 1000, counts[moves[0]], 200)
		require.InDelta(t, 1000, counts[moves[1]], 200)
		require.InDelta(t, 2000, counts[moves[2]], 200)
	})
}
