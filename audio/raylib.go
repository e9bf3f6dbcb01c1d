package audio

import (
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"term-snake/game/types"
)

const musicUpdateInterval = 20 * time.Millisecond

// raylibBackend plays through raylib's audio module. raylib streams music
// only while UpdateMusicStream is called, so a goroutine keeps feeding it.
type raylibBackend struct {
	mu      sync.Mutex
	effects map[types.Effect]rl.Sound
	cutoffs map[types.Effect]*time.Timer
	theme   rl.Music
	playing bool

	stop chan struct{}
	wg   sync.WaitGroup
}

func newRaylibBackend(a assets, opts Options) (*raylibBackend, error) {
	// raylib logs to stdout, which would corrupt the terminal UI.
	rl.SetTraceLogLevel(rl.LogNone)
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
		return nil, errNoDevice
	}

	eat := rl.LoadSound(a.eat)
	rl.SetSoundVolume(eat, float32(opts.EatVolume))
	over := rl.LoadSound(a.gameOver)

	theme := rl.LoadMusicStream(a.theme)
	theme.Looping = true
	rl.SetMusicVolume(theme, float32(opts.ThemeVolume))

	b := &raylibBackend{
		effects: map[types.Effect]rl.Sound{
			types.EffectEat:      eat,
			types.EffectGameOver: over,
		},
		cutoffs: make(map[types.Effect]*time.Timer),
		theme:   theme,
		stop:    make(chan struct{}),
	}
	b.wg.Add(1)
	go b.streamMusic()
	return b, nil
}

func (b *raylibBackend) streamMusic() {
	defer b.wg.Done()
	ticker := time.NewTicker(musicUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.mu.Lock()
			if b.playing {
				rl.UpdateMusicStream(b.theme)
			}
			b.mu.Unlock()
		}
	}
}

func (b *raylibBackend) playEffect(effect types.Effect, limit time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snd, ok := b.effects[effect]
	if !ok {
		return
	}
	if t := b.cutoffs[effect]; t != nil {
		t.Stop()
		delete(b.cutoffs, effect)
	}
	rl.PlaySound(snd)
	if limit > 0 {
		b.cutoffs[effect] = time.AfterFunc(limit, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.effects != nil {
				rl.StopSound(snd)
			}
		})
	}
}

func (b *raylibBackend) playTheme() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.playing {
		rl.PlayMusicStream(b.theme)
		b.playing = true
	}
}

func (b *raylibBackend) stopTheme() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.playing {
		rl.StopMusicStream(b.theme)
		b.playing = false
	}
}

func (b *raylibBackend) close() {
	close(b.stop)
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.cutoffs {
		t.Stop()
	}
	if b.playing {
		rl.StopMusicStream(b.theme)
		b.playing = false
	}
	for _, snd := range b.effects {
		rl.UnloadSound(snd)
	}
	b.effects = nil
	rl.UnloadMusicStream(b.theme)
	rl.CloseAudioDevice()
}
