package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"term-snake/game/types"
)

const sampleRate = 44100

// ebitenBackend plays through ebiten's audio context without opening a
// window.
type ebitenBackend struct {
	mu      sync.Mutex
	effects map[types.Effect]*audio.Player
	cutoffs map[types.Effect]*time.Timer
	theme   *audio.Player
}

func newEbitenBackend(a assets, opts Options) (*ebitenBackend, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}

	eat, err := decodeWAV(a.eat)
	if err != nil {
		return nil, err
	}
	over, err := decodeWAV(a.gameOver)
	if err != nil {
		return nil, err
	}
	music, err := decodeWAV(a.theme)
	if err != nil {
		return nil, err
	}

	eatPlayer := ctx.NewPlayerFromBytes(eat)
	eatPlayer.SetVolume(opts.EatVolume)

	loop := audio.NewInfiniteLoop(bytes.NewReader(music), int64(len(music)))
	theme, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("creating theme player: %w", err)
	}
	theme.SetVolume(opts.ThemeVolume)

	return &ebitenBackend{
		effects: map[types.Effect]*audio.Player{
			types.EffectEat:      eatPlayer,
			types.EffectGameOver: ctx.NewPlayerFromBytes(over),
		},
		cutoffs: make(map[types.Effect]*time.Timer),
		theme:   theme,
	}, nil
}

// decodeWAV returns the PCM data of a WAV file resampled to sampleRate.
func decodeWAV(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, err := wav.DecodeWithSampleRate(sampleRate, f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (b *ebitenBackend) playEffect(effect types.Effect, limit time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.effects[effect]
	if !ok {
		return
	}
	if t := b.cutoffs[effect]; t != nil {
		t.Stop()
		delete(b.cutoffs, effect)
	}
	_ = p.Rewind()
	p.Play()
	if limit > 0 {
		b.cutoffs[effect] = time.AfterFunc(limit, p.Pause)
	}
}

func (b *ebitenBackend) playTheme() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.theme.IsPlaying() {
		b.theme.Play()
	}
}

func (b *ebitenBackend) stopTheme() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.theme.Pause()
	_ = b.theme.Rewind()
}

func (b *ebitenBackend) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.cutoffs {
		t.Stop()
	}
	for _, p := range b.effects {
		p.Close()
	}
	b.theme.Close()
}
