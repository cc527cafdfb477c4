package main

import (
	"flag"
	"os"
	"time"

	"trilines/config"
	"trilines/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a config file (.env, .yaml, .json)")
	name := flag.String("name", "matchups", "Experiment name, used as the output subdirectory")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("unknown log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	results, err := experiments.Run(*name, *cfg, experiments.DefaultMatchUps(*cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	wins := results.Wins()
	log.Info().Msgf("played %d games: player 1 won %d, player 2 won %d", len(results.Games), wins[1], wins[2])
	if results.Dir != "" {
		log.Info().Msgf("records written to %s", results.Dir)
	}
}
