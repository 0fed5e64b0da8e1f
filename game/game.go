package game

import (
	"context"
	"time"

	"snake-duel/ai"
	"snake-duel/clock"
	"snake-duel/game/entity"
	"snake-duel/game/grid"
	"snake-duel/game/manager"
	"snake-duel/game/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Input exposes the human's directional controls. Only the state at the
// moment of the call is visible; nothing is queued.
type Input interface {
	MoveLeft() bool
	MoveRight() bool
	MoveUp() bool
	MoveDown() bool
}

// Palette is the write-only cosmetic channel pulsed while flashing.
type Palette interface {
	SetPalette(v uint8)
}

// Recorder receives every finished round.
type Recorder interface {
	Record(r types.RoundResult) error
}

// Phase is the round state machine position.
type Phase int

const (
	Resetting Phase = iota
	Playing
	Resolving
	Flashing
)

func (p Phase) String() string {
	switch p {
	case Resetting:
		return "resetting"
	case Playing:
		return "playing"
	case Resolving:
		return "resolving"
	case Flashing:
		return "flashing"
	default:
		return "unknown"
	}
}

// Options wires the collaborators of a Game. Nil fields get inert defaults:
// no input, a manual ticker, no palette, the clockwise AI and a nop logger.
type Options struct {
	Input   Input
	Ticker  clock.Ticker
	Palette Palette
	Sink    grid.Sink
	AI      ai.Controller
	Journal Recorder
	Logger  *zap.Logger
	// Rounds stops Run after that many rounds. Zero runs until cancelled.
	Rounds int
}

// Game is the round engine. It owns the grid and both contestants and is
// driven from a single goroutine.
type Game struct {
	grid       *grid.Grid
	players    [2]*entity.Contestant
	phase      Phase
	round      types.RoundResult
	rounds     int
	played     int
	collisions *manager.CollisionManager
	scores     *manager.ScoreManager

	input   Input
	ticker  clock.Ticker
	palette Palette
	ai      ai.Controller
	journal Recorder
	log     *zap.Logger
	now     func() time.Time
}

func NewGame(opts Options) *Game {
	if opts.Input == nil {
		opts.Input = NoInput{}
	}
	if opts.Ticker == nil {
		opts.Ticker = &clock.Manual{}
	}
	if opts.Palette == nil {
		opts.Palette = noPalette{}
	}
	if opts.AI == nil {
		opts.AI = ai.Heuristic{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	g := grid.New()
	g.SetSink(opts.Sink)

	return &Game{
		grid: g,
		players: [2]*entity.Contestant{
			entity.NewContestant(types.HumanSlot, entity.Human, types.HeadOne, types.Trail),
			entity.NewContestant(types.AISlot, entity.AI, types.HeadTwo, types.Trail),
		},
		rounds:     opts.Rounds,
		collisions: manager.NewCollisionManager(g, opts.Logger),
		scores:     manager.NewScoreManager(),
		input:      opts.Input,
		ticker:     opts.Ticker,
		palette:    opts.Palette,
		ai:         opts.AI,
		journal:    opts.Journal,
		log:        opts.Logger,
		now:        time.Now,
	}
}

func (g *Game) Grid() *grid.Grid {
	return g.grid
}

func (g *Game) Contestants() [2]*entity.Contestant {
	return g.players
}

func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the state of the current or last round.
func (g *Game) Round() types.RoundResult {
	return g.round
}

func (g *Game) Scores() *manager.ScoreManager {
	return g.scores
}

func (g *Game) setPhase(p Phase) {
	g.phase = p
	g.log.Debug("phase", zap.Stringer("phase", p), zap.Int("round", g.round.Number))
}

// Reset starts a new round: blank grid, fresh border, contestants on their
// spawns with their heads drawn.
func (g *Game) Reset() {
	g.round = types.RoundResult{
		ID:      uuid.New().String(),
		Number:  g.played + 1,
		Winner:  types.Draw,
		Started: g.now(),
	}
	g.setPhase(Resetting)

	g.grid.Clear()
	g.grid.DrawBorder()
	for i, c := range g.players {
		c.Reset(types.Spawns[i])
		c.Draw(g.grid)
	}
	g.log.Info("round started", zap.String("id", g.round.ID), zap.Int("round", g.round.Number))
}

// Over reports whether any contestant collided this round.
func (g *Game) Over() bool {
	return g.players[0].Collided || g.players[1].Collided
}

// sampleInput reads the controls once. With several keys held the last
// check wins: down over up over right over left.
func (g *Game) sampleInput() (types.Direction, bool) {
	var (
		dir types.Direction
		ok  bool
	)
	if g.input.MoveLeft() {
		dir, ok = types.Left, true
	}
	if g.input.MoveRight() {
		dir, ok = types.Right, true
	}
	if g.input.MoveUp() {
		dir, ok = types.Up, true
	}
	if g.input.MoveDown() {
		dir, ok = types.Down, true
	}
	return dir, ok
}

func (g *Game) steerHuman() {
	if dir, ok := g.sampleInput(); ok {
		g.players[types.HumanSlot].Steer(dir)
	}
}

// Step runs one move step: FramesPerMove input samples with a wait after
// each, the AI decision, then the AI advance followed by the human advance.
// The AI sees the human's new heading but not its new position.
func (g *Game) Step() {
	for i := 0; i < types.FramesPerMove; i++ {
		g.steerHuman()
		g.ticker.Wait(types.MoveDelayTicks)
	}

	human, bot := g.players[types.HumanSlot], g.players[types.AISlot]
	g.ai.Decide(g.grid, bot)

	// On a shared target cell the AI lands first and the human hits its head.
	g.collisions.Advance(bot)
	g.collisions.Advance(human)
	g.round.Steps++
}

// Flash blinks the heads of the contestants that collided. The marker bit
// is toggled an even number of times so heads end up unmarked.
func (g *Game) Flash() {
	g.setPhase(Flashing)
	for i := 0; i < types.FlashFrames; i++ {
		for _, c := range g.players {
			if c.Collided {
				c.ToggleMarker()
			}
		}
		for _, c := range g.players {
			c.Draw(g.grid)
		}
		g.ticker.Wait(types.FlashDelayTicks)
		g.palette.SetPalette(uint8(i))
	}
	g.palette.SetPalette(0)
}

func (g *Game) resolve() types.RoundResult {
	g.setPhase(Resolving)

	g.round.Ended = g.now()
	g.round.Collided = [2]bool{g.players[0].Collided, g.players[1].Collided}
	switch {
	case g.round.Collided[0] && g.round.Collided[1]:
		g.round.Winner = types.Draw
	case g.round.Collided[0]:
		g.round.Winner = 1
	default:
		g.round.Winner = 0
	}
	g.played++
	g.scores.Record(g.round)

	g.log.Info("round over",
		zap.String("id", g.round.ID),
		zap.Int("round", g.round.Number),
		zap.Int("steps", g.round.Steps),
		zap.Int("winner", g.round.Winner),
		zap.Duration("duration", g.round.Duration()),
	)

	if g.journal != nil {
		if err := g.journal.Record(g.round); err != nil {
			g.log.Warn("journal disabled", zap.Error(err))
			g.journal = nil
		}
	}
	return g.round
}

// PlayRound resets, steps until a collision, resolves and flashes. The
// context is checked between move steps only; a cancelled round is not
// scored.
func (g *Game) PlayRound(ctx context.Context) (types.RoundResult, error) {
	g.Reset()
	g.setPhase(Playing)
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return g.round, err
		}
		g.Step()
	}
	result := g.resolve()
	g.Flash()
	return result, nil
}

// Run plays rounds back to back until ctx is cancelled or the configured
// number of rounds was played.
func (g *Game) Run(ctx context.Context) error {
	for g.rounds == 0 || g.played < g.rounds {
		if _, err := g.PlayRound(ctx); err != nil {
			return err
		}
	}
	return nil
}

// NoInput never reports a pressed key.
type NoInput struct{}

func (NoInput) MoveLeft() bool  { return false }
func (NoInput) MoveRight() bool { return false }
func (NoInput) MoveUp() bool    { return false }
func (NoInput) MoveDown() bool  { return false }

type noPalette struct{}

func (noPalette) SetPalette(uint8) {}
