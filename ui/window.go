package ui

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/slices"

	"snake-duel/game/grid"
	"snake-duel/game/types"
)

const (
	statusHeight  = 28
	borderPadding = 10
)

var keyBindings = map[types.Direction][]int32{
	types.Left:  {rl.KeyLeft, rl.KeyA},
	types.Right: {rl.KeyRight, rl.KeyD},
	types.Up:    {rl.KeyUp, rl.KeyW},
	types.Down:  {rl.KeyDown, rl.KeyS},
}

var (
	headColors = map[types.Attribute]rl.Color{
		types.HeadOne: rl.Green,
		types.HeadTwo: rl.Orange,
	}
	trailColor  = rl.LightGray
	borderColor = rl.SkyBlue
)

// Window is the raylib frontend. It is the grid sink, the input, the
// palette and the tick source at once: every Wait draws one frame and
// polls the keyboard, so all raylib calls stay on the calling goroutine,
// which must be the main one.
type Window struct {
	cells   grid.Cells
	cell    int32
	palette uint8
	status  func() string
	period  time.Duration
	cancel  context.CancelFunc
	closed  bool
}

func NewWindow(cellSize int, period time.Duration, cancel context.CancelFunc) *Window {
	w := &Window{
		cell:   int32(cellSize),
		period: period,
		cancel: cancel,
	}
	for x := range w.cells {
		for y := range w.cells[x] {
			w.cells[x][y] = types.Blank
		}
	}
	return w
}

// Open creates the OS window. Frame pacing is left to Wait.
func (w *Window) Open(title string) {
	side := w.cell*types.GridSize + 2*borderPadding
	rl.InitWindow(side, side+statusHeight, title)
	rl.SetTargetFPS(0)
}

func (w *Window) Close() {
	rl.CloseWindow()
}

// SetStatus sets the provider of the text shown under the grid.
func (w *Window) SetStatus(f func() string) {
	w.status = f
}

func (w *Window) Put(x, y int, a types.Attribute) {
	w.cells[x][y] = a
}

func (w *Window) SetPalette(v uint8) {
	w.palette = v
}

func (w *Window) MoveLeft() bool  { return w.held(types.Left) }
func (w *Window) MoveRight() bool { return w.held(types.Right) }
func (w *Window) MoveUp() bool    { return w.held(types.Up) }
func (w *Window) MoveDown() bool  { return w.held(types.Down) }

func (w *Window) held(d types.Direction) bool {
	if w.closed {
		return false
	}
	return slices.ContainsFunc(keyBindings[d], rl.IsKeyDown)
}

// Wait draws a frame, then sleeps out the rest of the ticks. Once the
// window was closed it returns at once so the game reaches its next
// cancellation check quickly.
func (w *Window) Wait(ticks int) {
	if w.closed {
		return
	}
	deadline := time.Now().Add(time.Duration(ticks) * w.period)
	if rl.WindowShouldClose() {
		w.closed = true
		w.cancel()
		return
	}
	w.draw()
	if d := time.Until(deadline); d > 0 {
		time.Sleep(d)
	}
}

func (w *Window) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(tint(w.palette))

	for x := range w.cells {
		for y := range w.cells[x] {
			w.drawCell(int32(x), int32(y), w.cells[x][y])
		}
	}
	if w.status != nil {
		y := borderPadding + w.cell*types.GridSize + 4
		rl.DrawText(w.status(), borderPadding, y, statusHeight-8, rl.White)
	}
	rl.EndDrawing()
}

func (w *Window) drawCell(x, y int32, a types.Attribute) {
	px := borderPadding + x*w.cell
	py := borderPadding + y*w.cell
	switch {
	case a == types.Blank:
	case a == types.Trail:
		inset := w.cell / 6
		rl.DrawRectangle(px+inset, py+inset, w.cell-2*inset, w.cell-2*inset, trailColor)
	case a == types.Wall:
		rl.DrawRectangle(px, py, w.cell, w.cell, borderColor)
	case types.IsBorder(a):
		w.drawArms(px, py, boxArms[a])
	default:
		w.drawGlyph(px, py, a)
	}
}

// drawArms draws line segments from the cell centre towards each side
// named in a. The default raylib font has no box drawing glyphs.
func (w *Window) drawArms(px, py int32, a arms) {
	half := w.cell / 2
	thick := max(w.cell/8, 1)
	cx, cy := px+half-thick/2, py+half-thick/2
	if a&armLeft != 0 {
		rl.DrawRectangle(px, cy, half, thick, borderColor)
	}
	if a&armRight != 0 {
		rl.DrawRectangle(cx, cy, w.cell-half+thick/2, thick, borderColor)
	}
	if a&armUp != 0 {
		rl.DrawRectangle(cx, py, thick, half, borderColor)
	}
	if a&armDown != 0 {
		rl.DrawRectangle(cx, cy, thick, w.cell-half+thick/2, borderColor)
	}
}

func (w *Window) drawGlyph(px, py int32, a types.Attribute) {
	r, inverse := types.Glyph(a)
	color, ok := headColors[a&^types.MarkerBit]
	if !ok {
		color = rl.White
	}
	text := string(r)
	size := w.cell - 2
	tx := px + (w.cell-rl.MeasureText(text, size))/2
	if inverse {
		rl.DrawRectangle(px, py, w.cell, w.cell, color)
		rl.DrawText(text, tx, py+1, size, tint(w.palette))
		return
	}
	rl.DrawText(text, tx, py+1, size, color)
}

// tint maps a palette value to the background colour.
func tint(v uint8) rl.Color {
	return rl.NewColor(v*2, 0, v*3, 255)
}

type arms uint8

const (
	armLeft arms = 1 << iota
	armRight
	armUp
	armDown
)

var boxArms = map[types.Attribute]arms{
	types.BoxChars[types.BoxTopLeft]:     armRight | armDown,
	types.BoxChars[types.BoxTopRight]:    armLeft | armDown,
	types.BoxChars[types.BoxBottomLeft]:  armRight | armUp,
	types.BoxChars[types.BoxBottomRight]: armLeft | armUp,
	types.BoxChars[types.BoxTop]:         armLeft | armRight,
	types.BoxChars[types.BoxLeft]:        armUp | armDown,
}
