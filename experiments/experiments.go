package experiments

import (
	"fmt"

	"trilines/config"
	"trilines/engine"
	"trilines/experiments/metrics"
	"trilines/game"
	"trilines/player"
	"trilines/searcher"

	"github.com/rs/zerolog/log"
)

const (
	KindMinimax = "minimax"
	KindRandom  = "random"
)

// MatchUp pairs the agent playing first with the agent playing second.
type MatchUp [2]metrics.AgentConfig

type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Dir   string // where the records were written, empty if not stored
}

// Wins counts wins per seat over all games. Draws are not counted.
func (r Results) Wins() map[game.Player]int {
	wins := map[game.Player]int{}
	for _, record := range r.Games {
		if record.HasWinner {
			wins[record.Winner]++
		}
	}
	return wins
}

// DefaultMatchUps pits the configured minimax agent against a random player
// from both seats, then against itself.
func DefaultMatchUps(cfg config.Config) []MatchUp {
	mm := metrics.AgentConfig{
		ID:         1,
		Kind:       KindMinimax,
		Depth:      cfg.Depth,
		Goroutines: cfg.Goroutines,
		Pruning:    cfg.Pruning,
		Seed:       cfg.Seed,
	}
	random := metrics.AgentConfig{ID: 2, Kind: KindRandom, Seed: cfg.Seed}
	return []MatchUp{
		{mm, random},
		{random, mm},
		{mm, mm},
	}
}

// Run plays cfg.Games games per match-up and stores the records under
// cfg.OutputDir when it is set.
func Run(name string, cfg config.Config, matchUps []MatchUp) (Results, error) {
	count := 0
	results := Results{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1 := matchUp[0]
		config2 := matchUp[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < cfg.Games; i++ {
			count++
			result, err := runGame(cfg.BoardSize, config1, config2, uint64(count))
			if err != nil {
				return results, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			results.Games = append(results.Games, metrics.GameRecord{
				Game:       count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.MoveMetrics {
				results.Moves = append(results.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	if cfg.OutputDir == "" {
		return results, nil
	}

	dir, err := store(name, cfg.OutputDir, matchUps, results)
	if err != nil {
		return results, err
	}
	results.Dir = dir
	return results, nil
}

func store(name, root string, matchUps []MatchUp, results Results) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	seen := map[int]bool{}
	configs := []metrics.AgentConfig{}
	for _, matchUp := range matchUps {
		for _, config := range matchUp {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(results.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(results.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents
func runGame(size int, config1, config2 metrics.AgentConfig, gameNumber uint64) (engine.Result, error) {
	agents := []engine.Agent{
		createAgent(config1, 1, gameNumber),
		createAgent(config2, 2, gameNumber),
	}
	e := engine.LocalEngine(agents, size)
	return e.Run()
}

// createAgent builds the agent for a seat. Seeded agents get a distinct,
// reproducible seed per game and seat.
func createAgent(config metrics.AgentConfig, seat int, gameNumber uint64) engine.Agent {
	var seed uint64
	if config.Seed != 0 {
		seed = config.Seed + 2*gameNumber + uint64(seat)
	}

	if config.Kind == KindRandom {
		return player.NewRandom(seed)
	}

	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	}
	if config.Pruning {
		options = append(options, searcher.WithPruning())
	}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}
	return searcher.NewMinimax(game.Player(seat), options...)
}
