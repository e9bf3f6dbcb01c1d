// Package ui draws the game and its menus on a terminal through tcell.
package ui

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"term-snake/game/types"
)

// Border characters of the play area.
const (
	borderSide   = '║'
	borderEdge   = '-'
	borderCorner = '+'
)

var (
	background = tcell.StyleDefault.Background(tcell.ColorBlack)

	roleStyles = map[types.Role]tcell.Style{
		types.RoleSnake:    background.Foreground(tcell.ColorGreen),
		types.RoleFood:     background.Foreground(tcell.ColorRed),
		types.RoleBorder:   background.Foreground(tcell.ColorWhite),
		types.RoleScore:    background.Foreground(tcell.ColorYellow).Bold(true),
		types.RoleOpponent: background.Foreground(tcell.ColorDarkCyan),
	}

	titleStyle  = background.Foreground(tcell.ColorWhite).Bold(true)
	optionStyle = background.Foreground(tcell.ColorYellow)
	reasonStyle = background.Foreground(tcell.ColorDarkCyan).Bold(true)
)

// Renderer owns the terminal. It implements game.Canvas and game.Input.
type Renderer struct {
	screen tcell.Screen
	events chan tcell.Event
	done   atomic.Bool
}

// NewRenderer takes over the terminal.
func NewRenderer() (*Renderer, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewRendererWithScreen(s)
}

// NewRendererWithScreen wraps an uninitialized screen, such as a
// tcell.SimulationScreen.
func NewRendererWithScreen(s tcell.Screen) (*Renderer, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(background)
	s.HideCursor()
	s.Clear()

	r := &Renderer{
		screen: s,
		events: make(chan tcell.Event, 32),
	}
	go r.pump()
	return r, nil
}

func (r *Renderer) pump() {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			r.done.Store(true)
			close(r.events)
			return
		}
		r.events <- ev
	}
}

// Close restores the terminal.
func (r *Renderer) Close() {
	r.screen.Fini()
}

func (r *Renderer) closed() bool {
	return r.done.Load()
}

// Size returns the terminal size in cells.
func (r *Renderer) Size() (width, height int) {
	return r.screen.Size()
}

func (r *Renderer) Clear() {
	r.screen.Clear()
}

func (r *Renderer) Show() {
	r.screen.Show()
}

// DrawBorder outlines the whole terminal.
func (r *Renderer) DrawBorder() {
	r.drawFrame(borderCorner, borderCorner)
}

func (r *Renderer) drawFrame(topCorner, bottomCorner rune) {
	w, h := r.screen.Size()
	if w < 2 || h < 2 {
		return
	}
	style := roleStyles[types.RoleBorder]
	for x := 1; x < w-1; x++ {
		r.screen.SetContent(x, 0, borderEdge, nil, style)
		r.screen.SetContent(x, h-1, borderEdge, nil, style)
	}
	for y := 1; y < h-1; y++ {
		r.screen.SetContent(0, y, borderSide, nil, style)
		r.screen.SetContent(w-1, y, borderSide, nil, style)
	}
	r.screen.SetContent(0, 0, topCorner, nil, style)
	r.screen.SetContent(w-1, 0, topCorner, nil, style)
	r.screen.SetContent(0, h-1, bottomCorner, nil, style)
	r.screen.SetContent(w-1, h-1, bottomCorner, nil, style)
}

func (r *Renderer) DrawText(p types.Point, text string, role types.Role) {
	r.drawString(p.X, p.Y, text, roleStyles[role])
}

func (r *Renderer) DrawGlyph(p types.Point, glyph rune, role types.Role) {
	r.screen.SetContent(p.X, p.Y, glyph, nil, roleStyles[role])
}

func (r *Renderer) ClearCell(p types.Point) {
	r.screen.SetContent(p.X, p.Y, ' ', nil, background)
}

func (r *Renderer) drawString(x, y int, text string, style tcell.Style) {
	for _, c := range text {
		r.screen.SetContent(x, y, c, nil, style)
		x += runewidth.RuneWidth(c)
	}
}

// drawCentered writes text horizontally centered on row y.
func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	r.drawString(w/2-runewidth.StringWidth(text)/2, y, text, style)
}

// ReadKey waits at most timeout for a key. A negative timeout waits forever.
func (r *Renderer) ReadKey(timeout time.Duration) types.Key {
	key, _ := r.readKey(timeout)
	return key
}

// readKey also reports whether any key was pressed, including keys that
// have no types.Key equivalent.
func (r *Renderer) readKey(timeout time.Duration) (types.Key, bool) {
	var deadline <-chan time.Time
	if timeout >= 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				return types.NoKey, false
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				return translateKey(ev), true
			case *tcell.EventResize:
				r.screen.Sync()
			}
		case <-deadline:
			return types.NoKey, false
		}
	}
}

func translateKey(ev *tcell.EventKey) types.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return types.Key{Code: types.KeyUp}
	case tcell.KeyDown:
		return types.Key{Code: types.KeyDown}
	case tcell.KeyLeft:
		return types.Key{Code: types.KeyLeft}
	case tcell.KeyRight:
		return types.Key{Code: types.KeyRight}
	case tcell.KeyRune:
		return types.RuneKey(ev.Rune())
	default:
		return types.NoKey
	}
}
