package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"term-snake/ai"
	"term-snake/game/entity"
	"term-snake/game/manager"
	"term-snake/game/types"
)

// CrashReason is the reason text reported for every crash.
const CrashReason = "GAME OVER - YOU CRASHED"

const (
	defaultInitialLength  = 3
	defaultEatEffectLimit = 1500 * time.Millisecond
)

// Canvas receives the draw commands of one game.
type Canvas interface {
	Clear()
	DrawBorder()
	DrawText(p types.Point, text string, role types.Role)
	DrawGlyph(p types.Point, glyph rune, role types.Role)
	ClearCell(p types.Point)
	Show()
}

// Input reads one key, waiting at most timeout. It returns types.NoKey when
// nothing was pressed in time.
type Input interface {
	ReadKey(timeout time.Duration) types.Key
}

// EffectPlayer plays short sound cues. A zero limit plays the whole effect.
type EffectPlayer interface {
	PlayEffect(effect types.Effect, limit time.Duration)
}

// Glyphs are the characters used to draw the board.
type Glyphs struct {
	Head rune
	Body rune
	Food rune
}

// DefaultGlyphs draws a filled head, hollow body segments and a round food.
var DefaultGlyphs = Glyphs{Head: '■', Body: '□', Food: '●'}

// State is the phase of a game.
type State int

const (
	StateRunning State = iota
	StateCrashed
)

// Outcome is what a finished game reports back.
type Outcome struct {
	GameID  uuid.UUID
	Mode    types.Mode
	Score   int
	Reason  string
	Elapsed int // seconds
	Cause   manager.CollisionType
	Length  int
}

// Options configures a game. Canvas and Input are required.
type Options struct {
	Grid           types.Grid
	Mode           types.Mode
	Difficulty     types.Difficulty
	InitialLength  int
	EatEffectLimit time.Duration
	Glyphs         Glyphs
	Rand           *rand.Rand
	Canvas         Canvas
	Input          Input
	Sounds         EffectPlayer
	Logger         zerolog.Logger
	Now            func() time.Time
}

type Game struct {
	ID         uuid.UUID
	grid       types.Grid
	mode       types.Mode
	difficulty types.Difficulty
	glyphs     Glyphs
	eatLimit   time.Duration

	snake *entity.Snake
	food  types.Point
	score int
	state State
	out   Outcome

	collisions *manager.CollisionManager
	foods      *manager.FoodManager
	policy     ai.Policy

	canvas    Canvas
	input     Input
	sounds    EffectPlayer
	logger    zerolog.Logger
	now       func() time.Time
	startTime time.Time
}

type silentPlayer struct{}

func (silentPlayer) PlayEffect(types.Effect, time.Duration) {}

// New sets up a game with a snake in the middle of the board heading right
// and the first food placed.
func New(opts Options) (*Game, error) {
	if err := opts.Grid.Validate(); err != nil {
		return nil, err
	}
	if opts.Canvas == nil || opts.Input == nil {
		return nil, errors.New("game: canvas and input are required")
	}

	length := opts.InitialLength
	if length <= 0 {
		length = defaultInitialLength
	}
	eatLimit := opts.EatEffectLimit
	if eatLimit == 0 {
		eatLimit = defaultEatEffectLimit
	}
	glyphs := opts.Glyphs
	if glyphs == (Glyphs{}) {
		glyphs = DefaultGlyphs
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	var sounds EffectPlayer = silentPlayer{}
	if opts.Sounds != nil {
		sounds = opts.Sounds
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	id := uuid.New()
	g := &Game{
		ID:         id,
		grid:       opts.Grid,
		mode:       opts.Mode,
		difficulty: opts.Difficulty,
		glyphs:     glyphs,
		eatLimit:   eatLimit,
		snake:      entity.NewSnake(opts.Grid.Center(), types.Right, length),
		collisions: manager.NewCollisionManager(opts.Grid, opts.Difficulty.HasBorder),
		foods:      manager.NewFoodManager(opts.Grid, rng),
		canvas:     opts.Canvas,
		input:      opts.Input,
		sounds:     sounds,
		logger:     opts.Logger.With().Str("component", "game").Str("game_id", id.String()).Logger(),
		now:        now,
	}
	if g.mode == types.ModeVsComputer {
		g.policy = ai.NewGreedy(g.grid, g.collisions, rng)
	}
	g.food = g.foods.PlaceFood(g.snake)
	g.startTime = now()
	return g, nil
}

// Run plays ticks until the snake crashes. Each tick waits for a key for at
// most the difficulty's tick interval; that wait is the game clock.
func (g *Game) Run() Outcome {
	g.startTime = g.now()
	g.logger.Info().
		Str("mode", g.mode.String()).
		Str("difficulty", g.difficulty.Name).
		Dur("tick", g.difficulty.Tick).
		Bool("border", g.difficulty.HasBorder).
		Int("width", g.grid.Width).
		Int("height", g.grid.Height).
		Msg("game started")

	g.canvas.Clear()
	for {
		g.drawHUD()
		g.canvas.Show()

		key := g.input.ReadKey(g.difficulty.Tick)
		if out, over := g.Step(key); over {
			g.logger.Info().
				Int("score", out.Score).
				Int("elapsed", out.Elapsed).
				Int("length", out.Length).
				Str("cause", out.Cause.String()).
				Msg("game over")
			return out
		}
	}
}

// Step advances the game by one tick using key as the latest input. It
// reports true once the snake has crashed; further calls return the same
// outcome.
func (g *Game) Step(key types.Key) (Outcome, bool) {
	if g.state == StateCrashed {
		return g.out, true
	}

	if g.policy != nil {
		g.snake.Direction = g.policy.ChooseMove(g.snake, g.food)
	} else if dir, ok := key.Direction(); ok {
		g.snake.Direction = dir
	}

	newHead := g.grid.Wrap(g.snake.GetHead(), g.snake.Direction)
	if cause := g.collisions.CheckCollision(g.snake, newHead); cause != manager.NoCollision {
		g.sounds.PlayEffect(types.EffectGameOver, 0)
		g.state = StateCrashed
		g.out = Outcome{
			GameID:  g.ID,
			Mode:    g.mode,
			Score:   g.score,
			Reason:  CrashReason,
			Elapsed: g.elapsed(),
			Cause:   cause,
			Length:  g.snake.Len(),
		}
		return g.out, true
	}

	g.snake.Move(newHead)

	if newHead == g.food {
		g.sounds.PlayEffect(types.EffectEat, g.eatLimit)
		g.score++
		g.food = g.foods.PlaceFood(g.snake)
		g.logger.Debug().Int("score", g.score).Int("length", g.snake.Len()).Msg("food eaten")
	} else if tail, ok := g.snake.RemoveTail(); ok {
		g.canvas.ClearCell(tail)
	}

	g.drawSnake()
	g.canvas.DrawGlyph(g.food, g.glyphs.Food, types.RoleFood)
	return Outcome{}, false
}

func (g *Game) elapsed() int {
	return int(g.now().Sub(g.startTime).Seconds())
}

func (g *Game) drawHUD() {
	g.canvas.DrawBorder()

	score := fmt.Sprintf("SCORE %04d", g.score)
	g.canvas.DrawText(types.Point{X: g.grid.Width/2 - len(score)/2, Y: 0}, score, types.RoleScore)

	clock := fmt.Sprintf("TIME %04d", g.elapsed())
	g.canvas.DrawText(types.Point{X: g.grid.Width - len(clock) - 1, Y: 0}, clock, types.RoleScore)
}

func (g *Game) drawSnake() {
	role := types.RoleSnake
	if g.mode == types.ModeVsComputer {
		role = types.RoleOpponent
	}
	g.canvas.DrawGlyph(g.snake.GetHead(), g.glyphs.Head, role)
	for _, part := range g.snake.Body[1:] {
		g.canvas.DrawGlyph(part, g.glyphs.Body, role)
	}
}

// State returns the current phase.
func (g *Game) State() State {
	return g.state
}

// Score returns the food eaten so far.
func (g *Game) Score() int {
	return g.score
}

// GetSnake returns the snake being played.
func (g *Game) GetSnake() *entity.Snake {
	return g.snake
}

// GetFood returns the current food cell.
func (g *Game) GetFood() types.Point {
	return g.food
}
