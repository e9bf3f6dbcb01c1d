package game

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"term-snake/game/manager"
	"term-snake/game/types"
)

type fakeCanvas struct {
	cells   map[types.Point]rune
	roles   map[types.Point]types.Role
	texts   map[types.Point]string
	cleared []types.Point
	borders int
	shows   int
}

func newFakeCanvas() *fakeCanvas {
	c := &fakeCanvas{}
	c.Clear()
	return c
}

func (c *fakeCanvas) Clear() {
	c.cells = make(map[types.Point]rune)
	c.roles = make(map[types.Point]types.Role)
	c.texts = make(map[types.Point]string)
}

func (c *fakeCanvas) DrawBorder() { c.borders++ }

func (c *fakeCanvas) DrawText(p types.Point, text string, role types.Role) {
	c.texts[p] = text
}

func (c *fakeCanvas) DrawGlyph(p types.Point, glyph rune, role types.Role) {
	c.cells[p] = glyph
	c.roles[p] = role
}

func (c *fakeCanvas) ClearCell(p types.Point) {
	delete(c.cells, p)
	c.cleared = append(c.cleared, p)
}

func (c *fakeCanvas) Show() { c.shows++ }

// scriptedInput replays keys and then reports timeouts. Every read advances
// the clock by one second.
type scriptedInput struct {
	keys     []types.Key
	timeouts []time.Duration
	clock    *fakeClock
}

func (in *scriptedInput) ReadKey(timeout time.Duration) types.Key {
	in.timeouts = append(in.timeouts, timeout)
	if in.clock != nil {
		in.clock.t = in.clock.t.Add(time.Second)
	}
	if len(in.keys) == 0 {
		return types.NoKey
	}
	k := in.keys[0]
	in.keys = in.keys[1:]
	return k
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

type playedEffect struct {
	effect types.Effect
	limit  time.Duration
}

type recordingSounds struct {
	played []playedEffect
}

func (r *recordingSounds) PlayEffect(effect types.Effect, limit time.Duration) {
	r.played = append(r.played, playedEffect{effect, limit})
}

var (
	freeDifficulty = types.Difficulty{Name: "free", Tick: 150 * time.Millisecond}
	hardDifficulty = types.Difficulty{Name: "hard", Tick: time.Millisecond, HasBorder: true}
)

func newTestGame(t *testing.T, grid types.Grid, mode types.Mode, diff types.Difficulty, input Input) (*Game, *fakeCanvas, *recordingSounds, *fakeClock) {
	t.Helper()
	canvas := newFakeCanvas()
	sounds := &recordingSounds{}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	if in, ok := input.(*scriptedInput); ok {
		in.clock = clock
	}
	if input == nil {
		input = &scriptedInput{clock: clock}
	}

	g, err := New(Options{
		Grid:       grid,
		Mode:       mode,
		Difficulty: diff,
		Rand:       rand.New(rand.NewSource(42)),
		Canvas:     canvas,
		Input:      input,
		Sounds:     sounds,
		Logger:     zerolog.Nop(),
		Now:        clock.Now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, canvas, sounds, clock
}

func TestNewGameLayout(t *testing.T) {
	grid := types.Grid{Width: 20, Height: 20}
	g, _, _, _ := newTestGame(t, grid, types.ModeFree, freeDifficulty, nil)

	snake := g.GetSnake()
	want := []types.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	for i, p := range want {
		if snake.Body[i] != p {
			t.Errorf("Body[%d] = %v, want %v", i, snake.Body[i], p)
		}
	}
	if snake.Direction != types.Right {
		t.Errorf("Direction = %v, want right", snake.Direction)
	}
	if snake.Contains(g.GetFood()) || !grid.Inner(g.GetFood()) {
		t.Errorf("food %v misplaced", g.GetFood())
	}
	if g.State() != StateRunning {
		t.Errorf("State() = %v, want running", g.State())
	}
}

func TestNewGameRejectsTinyBoard(t *testing.T) {
	_, err := New(Options{
		Grid:   types.Grid{Width: 2, Height: 2},
		Canvas: newFakeCanvas(),
		Input:  &scriptedInput{},
	})
	if err == nil {
		t.Fatal("New accepted a 2x2 board")
	}
}

func TestStepEatsFood(t *testing.T) {
	g, canvas, sounds, _ := newTestGame(t, types.Grid{Width: 20, Height: 20}, types.ModeFree, freeDifficulty, nil)
	g.food = types.Point{X: 11, Y: 10}

	if _, over := g.Step(types.NoKey); over {
		t.Fatal("game ended after eating")
	}

	if g.Score() != 1 {
		t.Errorf("Score() = %d, want 1", g.Score())
	}
	if g.GetSnake().Len() != 4 {
		t.Errorf("snake length = %d, want 4", g.GetSnake().Len())
	}
	if g.GetSnake().GetHead() != (types.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want {11 10}", g.GetSnake().GetHead())
	}
	if g.GetSnake().Contains(g.GetFood()) {
		t.Errorf("new food %v is on the snake", g.GetFood())
	}
	if len(canvas.cleared) != 0 {
		t.Errorf("growing tick cleared cells %v", canvas.cleared)
	}
	if len(sounds.played) != 1 || sounds.played[0] != (playedEffect{types.EffectEat, 1500 * time.Millisecond}) {
		t.Errorf("sounds played = %v, want one capped eat effect", sounds.played)
	}
	if canvas.cells[types.Point{X: 11, Y: 10}] != DefaultGlyphs.Head {
		t.Error("head glyph not drawn")
	}
	if canvas.cells[g.GetFood()] != DefaultGlyphs.Food {
		t.Error("food glyph not drawn")
	}
}

func TestStepMovesAndClearsTail(t *testing.T) {
	g, canvas, _, _ := newTestGame(t, types.Grid{Width: 10, Height: 10}, types.ModeFree, freeDifficulty, nil)
	g.food = types.Point{X: 1, Y: 1}

	// Five steps right from column 5 wrap onto column 0.
	for i := 0; i < 5; i++ {
		if _, over := g.Step(types.NoKey); over {
			t.Fatalf("step %d: unexpected crash", i)
		}
	}

	if got := g.GetSnake().GetHead(); got != (types.Point{X: 0, Y: 5}) {
		t.Errorf("head = %v, want {0 5}", got)
	}
	if g.GetSnake().Len() != 3 {
		t.Errorf("length = %d, want 3", g.GetSnake().Len())
	}
	wantCleared := []types.Point{{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}, {X: 6, Y: 5}, {X: 7, Y: 5}}
	if len(canvas.cleared) != len(wantCleared) {
		t.Fatalf("cleared %v, want %v", canvas.cleared, wantCleared)
	}
	for i, p := range wantCleared {
		if canvas.cleared[i] != p {
			t.Errorf("cleared[%d] = %v, want %v", i, canvas.cleared[i], p)
		}
	}
	if canvas.roles[g.GetSnake().GetHead()] != types.RoleSnake {
		t.Error("free mode snake not drawn with the snake role")
	}
}

func TestStepFollowsArrowKeys(t *testing.T) {
	g, _, _, _ := newTestGame(t, types.Grid{Width: 20, Height: 20}, types.ModeFree, freeDifficulty, nil)
	g.food = types.Point{X: 1, Y: 1}

	g.Step(types.Key{Code: types.KeyUp})
	g.Step(types.RuneKey('x'))
	g.Step(types.NoKey)

	if got := g.GetSnake().GetHead(); got != (types.Point{X: 10, Y: 7}) {
		t.Errorf("head = %v, want {10 7}", got)
	}
	if g.GetSnake().Direction != types.Up {
		t.Errorf("direction = %v, want up", g.GetSnake().Direction)
	}
}

func TestStepCrashIntoOwnBody(t *testing.T) {
	g, _, sounds, _ := newTestGame(t, types.Grid{Width: 20, Height: 20}, types.ModeFree, hardDifficulty, nil)
	g.food = types.Point{X: 1, Y: 1}

	out, over := g.Step(types.Key{Code: types.KeyLeft})
	if !over {
		t.Fatal("reversing into the neck did not crash")
	}
	if out.Score != 0 {
		t.Errorf("Score = %d, want 0", out.Score)
	}
	if out.Reason != CrashReason {
		t.Errorf("Reason = %q, want %q", out.Reason, CrashReason)
	}
	if out.Cause != manager.SelfCollision {
		t.Errorf("Cause = %v, want self-collision", out.Cause)
	}
	if out.GameID != g.ID {
		t.Errorf("GameID = %v, want %v", out.GameID, g.ID)
	}
	if g.State() != StateCrashed {
		t.Errorf("State() = %v, want crashed", g.State())
	}
	if len(sounds.played) != 1 || sounds.played[0].effect != types.EffectGameOver {
		t.Errorf("sounds played = %v, want game over", sounds.played)
	}

	again, over := g.Step(types.Key{Code: types.KeyUp})
	if !over || again != out {
		t.Errorf("Step after crash = %+v, %v; want the stored outcome", again, over)
	}
}

// A snake that curls back onto itself on a bordered board crashes without
// changing the score.
func TestStepCrashIntoTail(t *testing.T) {
	g, _, _, _ := newTestGame(t, types.Grid{Width: 20, Height: 20}, types.ModeFree, hardDifficulty, nil)
	g.food = types.Point{X: 1, Y: 1}
	g.score = 4
	g.snake.Body = []types.Point{
		{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 11, Y: 11}, {X: 11, Y: 10}, {X: 11, Y: 9},
	}
	g.snake.Direction = types.Up

	out, over := g.Step(types.Key{Code: types.KeyRight})
	if !over {
		t.Fatal("turning into the body did not crash")
	}
	if out.Score != 4 || out.Cause != manager.SelfCollision || out.Length != 5 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestStepWallCrash(t *testing.T) {
	g, _, _, _ := newTestGame(t, types.Grid{Width: 10, Height: 10}, types.ModeFree, hardDifficulty, nil)
	g.food = types.Point{X: 1, Y: 1}

	// Head starts at column 5; columns 6, 7 and 8 are inner, 9 is the wall.
	for i := 0; i < 3; i++ {
		if _, over := g.Step(types.NoKey); over {
			t.Fatalf("step %d: unexpected crash", i)
		}
	}
	out, over := g.Step(types.NoKey)
	if !over {
		t.Fatal("snake passed through the wall")
	}
	if out.Cause != manager.WallCollision {
		t.Errorf("Cause = %v, want wall-collision", out.Cause)
	}
}

func TestStepVsComputerIgnoresKeys(t *testing.T) {
	g, canvas, _, _ := newTestGame(t, types.Grid{Width: 20, Height: 20}, types.ModeVsComputer, freeDifficulty, nil)
	g.food = types.Point{X: 10, Y: 4}

	g.Step(types.Key{Code: types.KeyDown})

	if got := g.GetSnake().GetHead(); got != (types.Point{X: 10, Y: 9}) {
		t.Errorf("head = %v, want {10 9}", got)
	}
	if canvas.roles[g.GetSnake().GetHead()] != types.RoleOpponent {
		t.Error("computer snake not drawn with the opponent role")
	}
}

func TestRunUntilCrash(t *testing.T) {
	input := &scriptedInput{keys: []types.Key{types.NoKey, {Code: types.KeyLeft}}}
	g, canvas, _, _ := newTestGame(t, types.Grid{Width: 20, Height: 20}, types.ModeFree, hardDifficulty, input)
	g.food = types.Point{X: 1, Y: 1}

	out := g.Run()

	if out.Reason != CrashReason || out.Score != 0 {
		t.Errorf("outcome = %+v", out)
	}
	if out.Elapsed != 2 {
		t.Errorf("Elapsed = %d, want 2", out.Elapsed)
	}
	if len(input.timeouts) != 2 {
		t.Fatalf("ReadKey called %d times, want 2", len(input.timeouts))
	}
	for _, timeout := range input.timeouts {
		if timeout != hardDifficulty.Tick {
			t.Errorf("ReadKey timeout = %v, want %v", timeout, hardDifficulty.Tick)
		}
	}
	if canvas.borders != 2 || canvas.shows != 2 {
		t.Errorf("borders %d shows %d, want 2 each", canvas.borders, canvas.shows)
	}
	if got := canvas.texts[types.Point{X: 5, Y: 0}]; got != "SCORE 0000" {
		t.Errorf("score readout = %q", got)
	}
	if got := canvas.texts[types.Point{X: 10, Y: 0}]; got != "TIME 0001" {
		t.Errorf("time readout = %q", got)
	}
}
