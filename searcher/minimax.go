package searcher

import (
	"fmt"
	"math"
	"sync"
	"time"

	"trilines/experiments/metrics"
	"trilines/game"
	"trilines/meta"

	"golang.org/x/exp/rand"
)

type Option func(m *Minimax)

// Minimax picks moves by fixed-depth game-tree search over cloned boards.
type Minimax struct {
	player     game.Player
	depth      int
	goroutines int
	pruning    bool
	rng        *rand.Rand
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines scores the root moves on a pool of goroutines.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithPruning enables alpha-beta pruning below the root.
func WithPruning() Option {
	return func(m *Minimax) {
		m.pruning = true
	}
}

func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(player game.Player, options ...Option) *Minimax {
	if player != game.Player1 && player != game.Player2 {
		panic(fmt.Sprintf("minimax must play as player 1 or 2, got %d", player))
	}
	m := &Minimax{ // Default values
		player:     player,
		depth:      meta.DEPTH,
		goroutines: meta.GOROUTINES,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Player() game.Player {
	return m.player
}

func (m *Minimax) Depth() int {
	return m.depth
}

// ChooseMove returns the best scoring legal move. It returns false when the
// board has no legal moves or the game is already over.
func (m *Minimax) ChooseMove(b *game.Board) (game.Line, bool) {
	move, _, ok := m.search(b)
	return move, ok
}

// FindMove is ChooseMove plus the metrics of the search, which are zero
// unless the agent was built WithMetrics.
func (m *Minimax) FindMove(b *game.Board) (game.Line, metrics.SearchMetric, bool) {
	m.metrics.Start(m.depth, m.goroutines, m.pruning)
	move, score, ok := m.search(b)
	m.metrics.SetScore(score)
	return move, m.metrics.Complete(), ok
}

func (m *Minimax) search(b *game.Board) (game.Line, float64, bool) {
	moves := b.ValidMoves()
	if len(moves) == 0 || b.GameOver() {
		return game.Line{}, 0, false
	}
	m.metrics.SetCandidates(len(moves))

	scores, played := m.scoreMoves(b, moves)
	move, score := m.pickBest(moves, scores, played)
	return move, score, true
}

// pickBest scans the moves in order. A tie replaces the incumbent on a coin
// flip, so later ties are favoured over earlier ones. With no scored move
// better than -Inf it falls back to a uniformly random move.
func (m *Minimax) pickBest(moves []game.Line, scores []float64, played []bool) (game.Line, float64) {
	best := -1
	bestScore := math.Inf(-1)
	for i := range moves {
		if !played[i] {
			continue
		}
		switch {
		case scores[i] > bestScore:
			best = i
			bestScore = scores[i]
		case best >= 0 && scores[i] == bestScore && m.rng.Intn(2) == 1:
			best = i
		}
	}

	if best < 0 {
		return moves[m.rng.Intn(len(moves))], bestScore
	}
	return moves[best], bestScore
}

// scoreMoves evaluates each root move on its own clone. played[i] is false
// for a move the board refused.
func (m *Minimax) scoreMoves(b *game.Board, moves []game.Line) (scores []float64, played []bool) {
	scores = make([]float64, len(moves))
	played = make([]bool, len(moves))

	score := func(i int) {
		child := b.Clone()
		if !child.Play(moves[i]).Valid {
			return
		}
		m.metrics.AddNode()
		played[i] = true
		if m.pruning {
			scores[i] = m.alphabeta(child, m.depth-1, math.Inf(-1), math.Inf(1), false)
		} else {
			scores[i] = m.minimax(child, m.depth-1, false)
		}
	}

	if m.goroutines <= 1 {
		for i := range moves {
			score(i)
		}
		return scores, played
	}

	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range task {
				score(idx)
			}
		}()
	}

	wg.Wait()
	return scores, played
}

func (m *Minimax) minimax(b *game.Board, depth int, maximizing bool) float64 {
	if b.GameOver() || depth <= 0 {
		return game.Evaluate(b, m.player)
	}

	moves := b.ValidMoves()
	if len(moves) == 0 { // Stuck without a result
		return game.Evaluate(b, m.player)
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, move := range moves {
		child := b.Clone()
		if !child.Play(move).Valid {
			continue
		}
		m.metrics.AddNode()

		score := m.minimax(child, depth-1, !maximizing)
		if maximizing {
			best = math.Max(best, score)
		} else {
			best = math.Min(best, score)
		}
	}
	return best
}

func (m *Minimax) alphabeta(b *game.Board, depth int, alpha, beta float64, maximizing bool) float64 {
	if b.GameOver() || depth <= 0 {
		return game.Evaluate(b, m.player)
	}

	moves := b.ValidMoves()
	if len(moves) == 0 {
		return game.Evaluate(b, m.player)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range moves {
			child := b.Clone()
			if !child.Play(move).Valid {
				continue
			}
			m.metrics.AddNode()

			best = math.Max(best, m.alphabeta(child, depth-1, alpha, beta, false))
			alpha = math.Max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		child := b.Clone()
		if !child.Play(move).Valid {
			continue
		}
		m.metrics.AddNode()

		best = math.Min(best, m.alphabeta(child, depth-1, alpha, beta, true))
		beta = math.Min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
