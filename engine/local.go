package engine

import (
	"fmt"
	"time"

	"trilines/experiments/metrics"
	"trilines/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Engine struct {
	Board  *game.Board
	Agents []Agent // Agents[0] plays player 1
}

// Result is the outcome of one game.
type Result struct {
	Winner      game.Player
	HasWinner   bool
	Game        metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}

func LocalEngine(agents []Agent, size int) *Engine {
	if len(agents) != 2 {
		panic(fmt.Sprintf("need exactly two agents, got %d", len(agents)))
	}

	return &Engine{
		Board:  game.NewBoard(size),
		Agents: agents,
	}
}

// Run plays the game until it is over. It stops early with an error when an
// agent has no move or offers an illegal one.
func (e *Engine) Run() (Result, error) {
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: e.Board.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: player %d is starting", gameMetric.ID, gameMetric.StartingPlayer)

	var err error
	step := 1
	for !e.Board.GameOver() {
		current := e.Board.CurrentPlayer()
		agent := e.Agents[current-1]

		move, searchMetric, ok := agent.FindMove(e.Board)
		if !ok {
			err = fmt.Errorf("player %d at step %d: %w", current, step, ErrNoMove)
			break
		}

		result := e.Board.Play(move)
		if !result.Valid {
			log.Warn().Err(result.Err).Msgf("player %d offered %v", current, move)
			err = fmt.Errorf("player %d at step %d: %w", current, step, result.Err)
			break
		}

		log.Debug().
			Int("step", step).
			Int("player", int(current)).
			Stringer("move", move).
			Int("triangles", len(result.TrianglesFormed)).
			Int("nodes", searchMetric.Nodes).
			Msg("move played")

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:            step,
			Player:          current,
			Move:            move,
			TrianglesFormed: len(result.TrianglesFormed),
			Hash:            e.Board.Hash(),
			SearchMetric:    searchMetric,
		})
		step++
	}

	winner, hasWinner := e.Board.Winner()
	gameMetric.Winner = winner
	gameMetric.HasWinner = hasWinner
	gameMetric.Score1 = e.Board.Score(game.Player1)
	gameMetric.Score2 = e.Board.Score(game.Player2)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if err == nil {
		log.Info().Msgf("game %s over after %d moves: winner %d, scores %d-%d",
			gameMetric.ID, gameMetric.TotalMoves, winner, gameMetric.Score1, gameMetric.Score2)
	}

	return Result{
		Winner:      winner,
		HasWinner:   hasWinner,
		Game:        gameMetric,
		MoveMetrics: moveMetrics,
	}, err
}
