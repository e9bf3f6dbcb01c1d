package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrBoardTooSmall is returned when a grid has no inner cell to place food on.
var ErrBoardTooSmall = errors.New("board too small")

// Point is a cell on the board. X is the column and Y the row.
type Point struct {
	X, Y int
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Validate checks that the grid leaves at least one inner cell inside the outer ring.
func (g Grid) Validate() error {
	if g.Width < 3 || g.Height < 3 {
		return fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, g.Width, g.Height)
	}
	return nil
}

// Wrap steps p one cell in direction d, wrapping around both edges.
func (g Grid) Wrap(p Point, d Direction) Point {
	delta := d.Delta()
	return Point{
		X: mod(p.X+delta.X, g.Width),
		Y: mod(p.Y+delta.Y, g.Height),
	}
}

// Inner reports whether p lies inside the outer ring, i.e. row in [1, H-2] and
// column in [1, W-2].
func (g Grid) Inner(p Point) bool {
	return p.Y >= 1 && p.Y <= g.Height-2 && p.X >= 1 && p.X <= g.Width-2
}

// Center returns the middle cell of the grid.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// mod is a modulo whose result always has the sign of m.
func mod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

// Manhattan returns the non-wrapped Manhattan distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.Y-b.Y) + abs(a.X-b.X)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Mode selects who steers the snake.
type Mode int

const (
	ModeFree Mode = iota
	ModeVsComputer
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeVsComputer:
		return "vs_computer"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Difficulty is fixed for the whole game. Tick is both the game speed and the
// longest time a key read may block.
type Difficulty struct {
	Name      string
	Tick      time.Duration
	HasBorder bool
}

// Role names what a drawn cell is so the renderer can pick its colour.
type Role int

const (
	RoleSnake Role = iota
	RoleFood
	RoleBorder
	RoleScore
	RoleOpponent
)

// Effect identifies a short sound cue.
type Effect int

const (
	EffectEat Effect = iota
	EffectGameOver
)

func (e Effect) String() string {
	switch e {
	case EffectEat:
		return "eat"
	case EffectGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Effect(%d)", int(e))
	}
}

// MenuChoice is a top-level menu entry.
type MenuChoice int

const (
	MenuFree MenuChoice = iota + 1
	MenuVsComputer
	MenuHighScores
	MenuQuit
)
