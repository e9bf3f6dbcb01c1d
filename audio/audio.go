// Package audio plays the game's sound cues and looping theme.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"term-snake/game/types"
)

// MissingAssetsWarning is shown once when the sound files cannot be loaded.
const MissingAssetsWarning = "Warning: Sound files not found. Game will run without sound."

// Backend names.
const (
	BackendRaylib = "raylib"
	BackendEbiten = "ebiten"
	BackendNone   = "none"
)

// Options locates the sound assets and sets their volumes.
type Options struct {
	Backend     string
	AssetsDir   string
	Eat         string
	GameOver    string
	Theme       string
	EatVolume   float64
	ThemeVolume float64
}

type assets struct {
	eat, gameOver, theme string
}

func (o Options) assets() assets {
	return assets{
		eat:      filepath.Join(o.AssetsDir, o.Eat),
		gameOver: filepath.Join(o.AssetsDir, o.GameOver),
		theme:    filepath.Join(o.AssetsDir, o.Theme),
	}
}

func (a assets) missing() []string {
	var missing []string
	for _, p := range []string{a.eat, a.gameOver, a.theme} {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// backend is one sound library. Calls are serialized by Service.
type backend interface {
	playEffect(effect types.Effect, limit time.Duration)
	playTheme()
	stopTheme()
	close()
}

// Service is the audio front the game talks to. When disabled every
// method is a no-op.
type Service struct {
	mu      sync.Mutex
	backend backend
	warning string
	logger  zerolog.Logger
}

// Disabled returns a silent service.
func Disabled() *Service {
	return &Service{logger: zerolog.Nop()}
}

// New loads every asset with the configured backend. Any failure disables
// sound for the whole run; Warning then returns the message to show.
func New(opts Options, logger zerolog.Logger) *Service {
	s := &Service{logger: logger.With().Str("component", "audio").Logger()}

	if opts.Backend == BackendNone {
		s.logger.Info().Msg("sound disabled by configuration")
		return s
	}

	a := opts.assets()
	if missing := a.missing(); len(missing) > 0 {
		s.disable(fmt.Errorf("missing assets %v", missing))
		return s
	}

	var (
		b   backend
		err error
	)
	switch opts.Backend {
	case BackendRaylib:
		b, err = newRaylibBackend(a, opts)
	case BackendEbiten:
		b, err = newEbitenBackend(a, opts)
	default:
		err = fmt.Errorf("unknown backend %q", opts.Backend)
	}
	if err != nil {
		s.disable(err)
		return s
	}

	s.backend = b
	s.logger.Info().Str("backend", opts.Backend).Msg("sound enabled")
	return s
}

func (s *Service) disable(err error) {
	s.warning = MissingAssetsWarning
	s.logger.Warn().Err(err).Msg("running without sound")
}

var errNoDevice = errors.New("audio device not available")

// Enabled reports whether sounds will actually be heard.
func (s *Service) Enabled() bool {
	return s.backend != nil
}

// Warning returns the message to show the player, or "" when sound loaded
// or was turned off on purpose.
func (s *Service) Warning() string {
	return s.warning
}

// PlayEffect starts a sound cue. A positive limit cuts it off after that long.
func (s *Service) PlayEffect(effect types.Effect, limit time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend == nil {
		return
	}
	s.logger.Debug().Stringer("effect", effect).Dur("limit", limit).Msg("play effect")
	s.backend.playEffect(effect, limit)
}

// PlayTheme starts the looping theme unless it is already playing.
func (s *Service) PlayTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend != nil {
		s.backend.playTheme()
	}
}

func (s *Service) StopTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend != nil {
		s.backend.stopTheme()
	}
}

// Close releases the audio device. The service is silent afterwards.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend != nil {
		s.backend.close()
		s.backend = nil
	}
}
