package config

import (
	"errors"
	"fmt"

	"trilines/meta"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	BoardSize  int    `mapstructure:"BOARD_SIZE"`
	Depth      int    `mapstructure:"DEPTH"`
	Games      int    `mapstructure:"GAMES"`
	Goroutines int    `mapstructure:"GOROUTINES"`
	Pruning    bool   `mapstructure:"PRUNING"`
	Seed       uint64 `mapstructure:"SEED"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	OutputDir  string `mapstructure:"OUTPUT_DIR"`
}

// Load reads the config file at path, if any, on top of the defaults.
// Environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("BOARD_SIZE", meta.BOARD_SIZE)
	v.SetDefault("DEPTH", meta.DEPTH)
	v.SetDefault("GAMES", meta.GAMES)
	v.SetDefault("GOROUTINES", meta.GOROUTINES)
	v.SetDefault("PRUNING", false)
	v.SetDefault("SEED", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OUTPUT_DIR", meta.OUTPUT_DIR)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		err := v.ReadInConfig()
		if err != nil {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.BoardSize < 2:
		return fmt.Errorf("%w: BOARD_SIZE must be at least 2, got %d", ErrInvalidConfig, c.BoardSize)
	case c.Depth < 1:
		return fmt.Errorf("%w: DEPTH must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	case c.Games < 1:
		return fmt.Errorf("%w: GAMES must be at least 1, got %d", ErrInvalidConfig, c.Games)
	case c.Goroutines < 1:
		return fmt.Errorf("%w: GOROUTINES must be at least 1, got %d", ErrInvalidConfig, c.Goroutines)
	}
	return nil
}
