// Package session drives the menus and games of one program run.
package session

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"term-snake/config"
	"term-snake/game"
	"term-snake/game/manager"
	"term-snake/game/types"
)

// Display is the terminal: a game canvas plus the menu screens.
type Display interface {
	game.Canvas
	game.Input
	Size() (width, height int)
	MainMenu() types.MenuChoice
	SelectDifficulty() string
	ShowHighScores(ranked []int, summary manager.ScoreSummary)
	ShowGameOver(out game.Outcome) bool
}

// Audio plays the theme between games and the effects inside them.
type Audio interface {
	game.EffectPlayer
	PlayTheme()
	StopTheme()
}

type Session struct {
	cfg     *config.Config
	display Display
	audio   Audio
	scores  *manager.ScoreManager
	rng     *rand.Rand
	base    zerolog.Logger
	logger  zerolog.Logger
}

func New(cfg *config.Config, display Display, audio Audio, scores *manager.ScoreManager, rng *rand.Rand, logger zerolog.Logger) *Session {
	return &Session{
		cfg:     cfg,
		display: display,
		audio:   audio,
		scores:  scores,
		rng:     rng,
		base:    logger,
		logger:  logger.With().Str("component", "session").Logger(),
	}
}

// Run shows the main menu until the player quits. Every finished game is
// recorded in the score file before the game-over screen.
func (s *Session) Run() error {
	s.audio.PlayTheme()
	defer s.audio.StopTheme()

	for {
		choice := s.display.MainMenu()
		s.logger.Debug().Int("choice", int(choice)).Msg("menu")

		var (
			mode types.Mode
			diff types.Difficulty
			err  error
		)
		switch choice {
		case types.MenuFree:
			mode = types.ModeFree
			diff, err = s.cfg.Difficulty(config.Free)
		case types.MenuVsComputer:
			mode = types.ModeVsComputer
			diff, err = s.cfg.Difficulty(s.display.SelectDifficulty())
		case types.MenuHighScores:
			s.showHighScores()
			continue
		case types.MenuQuit:
			s.logger.Info().Msg("quit")
			return nil
		default:
			continue
		}
		if err != nil {
			return err
		}

		out, err := s.play(mode, diff)
		if err != nil {
			return err
		}
		if err := s.scores.Append(out.Score); err != nil {
			return fmt.Errorf("saving score: %w", err)
		}

		if !s.display.ShowGameOver(out) {
			s.logger.Info().Msg("quit after game over")
			return nil
		}
		s.audio.PlayTheme()
	}
}

func (s *Session) play(mode types.Mode, diff types.Difficulty) (game.Outcome, error) {
	w, h := s.display.Size()
	g, err := game.New(game.Options{
		Grid:           types.Grid{Width: w, Height: h},
		Mode:           mode,
		Difficulty:     diff,
		InitialLength:  s.cfg.Game.InitialLength,
		EatEffectLimit: s.cfg.Game.EatEffectLimit,
		Glyphs: game.Glyphs{
			Head: s.cfg.Derived.Head,
			Body: s.cfg.Derived.Body,
			Food: s.cfg.Derived.Food,
		},
		Rand:   s.rng,
		Canvas: s.display,
		Input:  s.display,
		Sounds: s.audio,
		Logger: s.base,
	})
	if err != nil {
		return game.Outcome{}, fmt.Errorf("starting %s game on a %dx%d terminal: %w", mode, w, h, err)
	}
	return g.Run(), nil
}

func (s *Session) showHighScores() {
	all, err := s.scores.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading high scores")
	}
	s.display.ShowHighScores(manager.Rank(all, s.cfg.Scores.Top), manager.Summarize(all))
}
