package ui

import (
	"context"
	"sync"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"snake-duel/game/grid"
	"snake-duel/game/types"
)

// keyHold is how long a direction key counts as held after its last
// press or auto-repeat. Terminals report presses only, never releases.
const keyHold = 120 * time.Millisecond

// Terminal is the termbox frontend. Key events arrive on the goroutine
// running Poll; drawing happens in Wait on the game goroutine.
type Terminal struct {
	mu      sync.Mutex
	cells   grid.Cells
	palette uint8
	key     types.Direction
	keyAt   time.Time
	hasKey  bool

	status func() string
	period time.Duration
	cancel context.CancelFunc
	now    func() time.Time
}

func NewTerminal(period time.Duration, cancel context.CancelFunc) *Terminal {
	t := &Terminal{
		period: period,
		cancel: cancel,
		now:    time.Now,
	}
	for x := range t.cells {
		for y := range t.cells[x] {
			t.cells[x][y] = types.Blank
		}
	}
	return t
}

func (t *Terminal) Open() error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	return nil
}

func (t *Terminal) Close() {
	termbox.Close()
}

// Interrupt makes Poll return. It blocks until Poll receives it, so it
// must be called exactly once while Poll runs.
func (t *Terminal) Interrupt() {
	termbox.Interrupt()
}

func (t *Terminal) SetStatus(f func() string) {
	t.status = f
}

// Poll reads key events until Interrupt is called. A quit key or a read
// error cancels the game; the first read error is returned.
func (t *Terminal) Poll() error {
	var first error
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return first
		case termbox.EventError:
			if first == nil {
				first = errors.Wrap(ev.Err, "poll terminal")
				t.cancel()
			}
		case termbox.EventKey:
			if isQuit(ev) {
				t.cancel()
			} else if d, ok := keyDirection(ev); ok {
				t.press(d)
			}
		}
	}
}

func (t *Terminal) press(d types.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.key, t.keyAt, t.hasKey = d, t.now(), true
}

func (t *Terminal) held(d types.Direction) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasKey && t.key == d && t.now().Sub(t.keyAt) < keyHold
}

func (t *Terminal) MoveLeft() bool  { return t.held(types.Left) }
func (t *Terminal) MoveRight() bool { return t.held(types.Right) }
func (t *Terminal) MoveUp() bool    { return t.held(types.Up) }
func (t *Terminal) MoveDown() bool  { return t.held(types.Down) }

func (t *Terminal) Put(x, y int, a types.Attribute) {
	t.mu.Lock()
	t.cells[x][y] = a
	t.mu.Unlock()
}

func (t *Terminal) SetPalette(v uint8) {
	t.mu.Lock()
	t.palette = v
	t.mu.Unlock()
}

// Wait redraws the screen, then sleeps out the rest of the ticks.
func (t *Terminal) Wait(ticks int) {
	deadline := t.now().Add(time.Duration(ticks) * t.period)
	t.draw()
	if d := deadline.Sub(t.now()); d > 0 {
		time.Sleep(d)
	}
}

func (t *Terminal) draw() {
	t.mu.Lock()
	cells, pal := t.cells, t.palette
	t.mu.Unlock()

	for x := range cells {
		for y := range cells[x] {
			r, fg := cellStyle(cells[x][y], pal)
			termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		}
	}
	if t.status != nil {
		for i, r := range []rune(t.status()) {
			termbox.SetCell(i, types.GridSize, r, termbox.ColorDefault, termbox.ColorDefault)
		}
	}
	_ = termbox.Flush()
}

// cellStyle returns the rune and foreground attribute for a cell. Marked
// heads are drawn reversed and the palette cycles the foreground colour.
func cellStyle(a types.Attribute, pal uint8) (rune, termbox.Attribute) {
	r, inverse := types.Glyph(a)
	fg := termbox.ColorDefault
	switch a &^ types.MarkerBit {
	case types.HeadOne:
		fg = termbox.ColorGreen
	case types.HeadTwo:
		fg = termbox.ColorYellow
	}
	if pal != 0 {
		fg = termbox.ColorRed + termbox.Attribute(pal%6)
	}
	if inverse {
		fg |= termbox.AttrReverse
	}
	return r, fg
}

func keyDirection(ev termbox.Event) (types.Direction, bool) {
	switch ev.Key {
	case termbox.KeyArrowLeft:
		return types.Left, true
	case termbox.KeyArrowRight:
		return types.Right, true
	case termbox.KeyArrowUp:
		return types.Up, true
	case termbox.KeyArrowDown:
		return types.Down, true
	}
	switch ev.Ch {
	case 'a', 'A':
		return types.Left, true
	case 'd', 'D':
		return types.Right, true
	case 'w', 'W':
		return types.Up, true
	case 's', 'S':
		return types.Down, true
	}
	return 0, false
}

func isQuit(ev termbox.Event) bool {
	return ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' || ev.Ch == 'Q'
}
