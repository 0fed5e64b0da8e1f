package game

import (
	"context"
	"testing"

	"snake-duel/ai"
	"snake-duel/clock"
	"snake-duel/game/types"

	"github.com/pkg/errors"
)

// held reports a fixed set of pressed keys.
type held map[types.Direction]bool

func (h held) MoveLeft() bool  { return h[types.Left] }
func (h held) MoveRight() bool { return h[types.Right] }
func (h held) MoveUp() bool    { return h[types.Up] }
func (h held) MoveDown() bool  { return h[types.Down] }

// script presses one key per input sample. The ticker advances it, so
// sample i sees keys[i]. Samples past the end see nothing.
type script struct {
	keys []types.Direction
	i    int
}

func (s *script) pressed(d types.Direction) bool {
	return s.i < len(s.keys) && s.keys[s.i] == d
}

func (s *script) MoveLeft() bool  { return s.pressed(types.Left) }
func (s *script) MoveRight() bool { return s.pressed(types.Right) }
func (s *script) MoveUp() bool    { return s.pressed(types.Up) }
func (s *script) MoveDown() bool  { return s.pressed(types.Down) }

func (s *script) ticker() clock.Ticker {
	return clock.Func(func(int) { s.i++ })
}

type palette []uint8

func (p *palette) SetPalette(v uint8) { *p = append(*p, v) }

type recorder struct {
	results []types.RoundResult
	err     error
}

func (r *recorder) Record(res types.RoundResult) error {
	r.results = append(r.results, res)
	return r.err
}

type write struct {
	x, y int
	a    types.Attribute
}

type sink []write

func (s *sink) Put(x, y int, a types.Attribute) { *s = append(*s, write{x, y, a}) }

func TestResetState(t *testing.T) {
	g := NewGame(Options{})
	g.Reset()

	if g.Phase() != Resetting {
		t.Errorf("phase = %v", g.Phase())
	}
	last := types.GridSize - 1
	for i := 0; i < types.GridSize; i++ {
		for _, p := range []types.Point{{X: i, Y: 0}, {X: i, Y: last}, {X: 0, Y: i}, {X: last, Y: i}} {
			if g.Grid().IsBlank(p) {
				t.Fatalf("border gap at %v", p)
			}
		}
	}
	for i, c := range g.Contestants() {
		if c.Pos != types.Spawns[i].Pos || c.Dir != types.Spawns[i].Dir || c.Collided {
			t.Errorf("contestant %d: %+v", i, c)
		}
		if g.Grid().At(c.Pos) != c.HeadAttr {
			t.Errorf("contestant %d head not drawn", i)
		}
	}
	if g.Round().Number != 1 || g.Round().ID == "" {
		t.Errorf("round = %+v", g.Round())
	}
}

func TestStepTickAccounting(t *testing.T) {
	m := &clock.Manual{}
	g := NewGame(Options{Ticker: m})
	g.Reset()
	g.Step()

	if m.Elapsed() != types.FramesPerMove*types.MoveDelayTicks || m.Calls() != types.FramesPerMove {
		t.Errorf("elapsed %d ticks over %d waits", m.Elapsed(), m.Calls())
	}
	if g.Round().Steps != 1 {
		t.Errorf("steps = %d", g.Round().Steps)
	}
}

func TestReverseInputIgnored(t *testing.T) {
	g := NewGame(Options{Input: held{types.Left: true}})
	g.Reset()
	g.Step()

	human := g.Contestants()[types.HumanSlot]
	if human.Dir != types.Right || human.Pos != (types.Point{X: 7, Y: 6}) {
		t.Errorf("human %v at %v", human.Dir, human.Pos)
	}
}

func TestTwoTurnsWithinOneStep(t *testing.T) {
	s := &script{keys: []types.Direction{types.Up, types.Left}}
	g := NewGame(Options{Input: s, Ticker: s.ticker()})
	g.Reset()
	g.Step()

	// Up is accepted from Right, then Left is accepted from Up.
	human := g.Contestants()[types.HumanSlot]
	if human.Dir != types.Left || human.Pos != (types.Point{X: 5, Y: 6}) {
		t.Errorf("human %v at %v", human.Dir, human.Pos)
	}
}

func TestInputPrecedence(t *testing.T) {
	cases := []struct {
		keys held
		want types.Direction
	}{
		{held{types.Left: true, types.Right: true, types.Up: true, types.Down: true}, types.Down},
		{held{types.Left: true, types.Right: true, types.Up: true}, types.Up},
		{held{types.Left: true, types.Right: true}, types.Right},
		{held{types.Left: true}, types.Left},
	}
	for _, tc := range cases {
		g := NewGame(Options{Input: tc.keys})
		dir, ok := g.sampleInput()
		if !ok || dir != tc.want {
			t.Errorf("%v: got %v %v, want %v", tc.keys, dir, ok, tc.want)
		}
	}
	if _, ok := NewGame(Options{}).sampleInput(); ok {
		t.Error("no keys reported a direction")
	}
}

func TestTrailIsPermanent(t *testing.T) {
	g := NewGame(Options{AI: ai.Idle{}})
	g.Reset()
	for i := 0; i < 5; i++ {
		g.Step()
	}
	for x := 6; x < 11; x++ {
		if g.Grid().Get(x, 6) != types.Trail {
			t.Errorf("(%d,6) = %d", x, g.Grid().Get(x, 6))
		}
	}
	if g.Grid().Get(11, 6) != types.HeadOne {
		t.Error("head not at (11,6)")
	}
}

func TestSharedTargetAIMovesFirst(t *testing.T) {
	g := NewGame(Options{})
	g.Reset()

	human, bot := g.Contestants()[types.HumanSlot], g.Contestants()[types.AISlot]
	g.Grid().Put(human.Pos, types.Blank)
	g.Grid().Put(bot.Pos, types.Blank)
	human.Pos, human.Dir = types.Point{X: 10, Y: 10}, types.Right
	bot.Pos, bot.Dir = types.Point{X: 12, Y: 10}, types.Left
	human.Draw(g.Grid())
	bot.Draw(g.Grid())

	g.Step()
	if bot.Collided || !human.Collided {
		t.Fatalf("collided human=%v ai=%v", human.Collided, bot.Collided)
	}
	if got := g.resolve(); got.Winner != types.AISlot {
		t.Errorf("winner = %d", got.Winner)
	}
}

func TestBoxedInAICollidesAfterTurning(t *testing.T) {
	g := NewGame(Options{})
	g.Reset()

	bot := g.Contestants()[types.AISlot]
	g.Grid().Put(bot.Pos, types.Blank)
	bot.Pos, bot.Dir = types.Point{X: 15, Y: 15}, types.Right
	for _, d := range types.Directions {
		g.Grid().Put(bot.Pos.Add(d.Vector()), types.Trail)
	}

	g.Step()
	if bot.Dir != types.Down || !bot.Collided {
		t.Errorf("ai %v collided=%v", bot.Dir, bot.Collided)
	}
	if bot.Pos != (types.Point{X: 15, Y: 16}) {
		t.Errorf("ai at %v", bot.Pos)
	}
}

func TestBothCollidingIsDraw(t *testing.T) {
	g := NewGame(Options{})
	g.Reset()
	for _, c := range g.Contestants() {
		c.Collided = true
	}
	if got := g.resolve(); got.Winner != types.Draw || got.Collided != [2]bool{true, true} {
		t.Errorf("result = %+v", got)
	}
	if g.Scores().Draws() != 1 {
		t.Error("draw not scored")
	}
}

func TestPlayRoundWithoutInput(t *testing.T) {
	m := &clock.Manual{}
	g := NewGame(Options{Ticker: m})

	got, err := g.PlayRound(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// The human runs straight into the right border from (6,6).
	if got.Steps != types.GridSize-1-6 {
		t.Errorf("steps = %d", got.Steps)
	}
	if got.Collided != [2]bool{true, false} || got.Winner != types.AISlot {
		t.Errorf("result = %+v", got)
	}
	if got.Steps > types.GridSize*types.GridSize {
		t.Error("round did not terminate in time")
	}
	if g.Phase() != Flashing {
		t.Errorf("phase = %v", g.Phase())
	}
	want := got.Steps*types.FramesPerMove*types.MoveDelayTicks + types.FlashFrames*types.FlashDelayTicks
	if m.Elapsed() != want {
		t.Errorf("elapsed = %d, want %d", m.Elapsed(), want)
	}
}

func TestFlash(t *testing.T) {
	var (
		pal palette
		s   sink
		m   = &clock.Manual{}
	)
	g := NewGame(Options{Palette: &pal, Sink: &s, Ticker: m})
	g.Reset()
	human := g.Contestants()[types.HumanSlot]
	human.Collided = true
	s = s[:0]

	g.Flash()

	if len(pal) != types.FlashFrames+1 {
		t.Fatalf("palette writes = %d", len(pal))
	}
	for i := 0; i < types.FlashFrames; i++ {
		if pal[i] != uint8(i) {
			t.Errorf("palette[%d] = %d", i, pal[i])
		}
	}
	if pal[types.FlashFrames] != 0 {
		t.Error("palette not restored")
	}
	if m.Elapsed() != types.FlashFrames*types.FlashDelayTicks {
		t.Errorf("elapsed = %d", m.Elapsed())
	}

	var heads []types.Attribute
	for _, w := range s {
		if w.x == human.Pos.X && w.y == human.Pos.Y {
			heads = append(heads, w.a)
		}
		if w.x == types.Spawns[1].Pos.X && w.y == types.Spawns[1].Pos.Y && w.a&types.MarkerBit != 0 {
			t.Fatal("non-collided head was marked")
		}
	}
	if len(heads) != types.FlashFrames {
		t.Fatalf("head writes = %d", len(heads))
	}
	for i, a := range heads {
		if marked := a&types.MarkerBit != 0; marked != (i%2 == 0) {
			t.Errorf("frame %d marked=%v", i, marked)
		}
	}
	if human.HeadAttr != types.HeadOne {
		t.Errorf("head ends as %d", human.HeadAttr)
	}
}

func TestRunStopsAfterRounds(t *testing.T) {
	rec := &recorder{}
	g := NewGame(Options{Rounds: 2, Journal: rec})

	if err := g.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.Scores().Rounds() != 2 || g.Scores().Wins(types.AISlot) != 2 {
		t.Errorf("scores: %s", g.Scores().Summary())
	}
	if len(rec.results) != 2 || rec.results[0].Number != 1 || rec.results[1].Number != 2 {
		t.Fatalf("journal = %+v", rec.results)
	}
	if rec.results[0].ID == rec.results[1].ID {
		t.Error("round ids repeat")
	}
}

func TestJournalErrorDisablesJournal(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	g := NewGame(Options{Rounds: 3, Journal: rec})

	if err := g.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(rec.results) != 1 {
		t.Errorf("journal called %d times", len(rec.results))
	}
	if g.Scores().Rounds() != 3 {
		t.Errorf("rounds = %d", g.Scores().Rounds())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGame(Options{})

	if err := g.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if g.Scores().Rounds() != 0 {
		t.Error("cancelled round was scored")
	}
}

func TestCancelBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	steps := 0
	ticker := clock.Func(func(int) {
		steps++
		if steps == 3*types.FramesPerMove {
			cancel()
		}
	})
	g := NewGame(Options{Ticker: ticker})

	if _, err := g.PlayRound(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if g.Round().Steps != 3 {
		t.Errorf("steps = %d", g.Round().Steps)
	}
}
