package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"term-snake/audio"
	"term-snake/config"
	"term-snake/game/manager"
	"term-snake/session"
	"term-snake/ui"
)

func main() {
	configPath := flag.String("config", "", "YAML config file merged over the defaults")
	scoresPath := flag.String("scores", "", "High-score file (overrides scores.file)")
	seed := flag.Int64("seed", 0, "Random seed for food and the computer snake (0 = time based)")
	exportScores := flag.Bool("export-scores", false, "Print the ranked scores as CSV and exit")
	writeConfig := flag.String("write-config", "", "Write the effective config to this file and exit")
	flag.Parse()

	if err := run(*configPath, *scoresPath, *seed, *exportScores, *writeConfig); err != nil {
		fmt.Fprintln(os.Stderr, "snake:", err)
		os.Exit(1)
	}
}

func run(configPath, scoresPath string, seed int64, exportScores bool, writeConfig string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if scoresPath != "" {
		cfg.Scores.File = scoresPath
	}
	if writeConfig != "" {
		return cfg.WriteYAML(writeConfig)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	scores := manager.NewScoreManager(cfg.Scores.File, logger)
	if exportScores {
		return scores.ExportCSV(os.Stdout)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int64("seed", seed).Str("scores", cfg.Scores.File).Msg("starting")
	rng := rand.New(rand.NewSource(uint64(seed)))

	sound := audio.New(audio.Options{
		Backend:     cfg.Audio.Backend,
		AssetsDir:   cfg.Audio.AssetsDir,
		Eat:         cfg.Audio.Eat,
		GameOver:    cfg.Audio.GameOver,
		Theme:       cfg.Audio.Theme,
		EatVolume:   cfg.Audio.EatVolume,
		ThemeVolume: cfg.Audio.ThemeVolume,
	}, logger)
	defer sound.Close()
	if w := sound.Warning(); w != "" {
		fmt.Fprintln(os.Stderr, w)
	}

	screen, err := ui.NewRenderer()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	err = session.New(cfg, screen, sound, scores, rng, logger).Run()
	screen.Close()
	if err != nil {
		logger.Error().Err(err).Msg("session ended with an error")
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
