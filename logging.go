package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"term-snake/config"
)

// newLogger opens the log file. The terminal belongs to the game, so
// nothing is ever logged to stdout or stderr. An empty file disables logging.
func newLogger(cfg config.LogConfig) (zerolog.Logger, func() error, error) {
	if cfg.File == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f.Close, nil
}
