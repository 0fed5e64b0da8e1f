package ui

import (
	"time"

	"snake-duel/clock"
	"snake-duel/game/types"
)

// Headless draws nothing and reads no keys. A zero period runs the game
// as fast as it can.
type Headless struct {
	clock.Ticker
}

func NewHeadless(period time.Duration) *Headless {
	if period <= 0 {
		return &Headless{Ticker: &clock.Manual{}}
	}
	return &Headless{Ticker: clock.New(period)}
}

// Stop releases the real-time clock, if any.
func (h *Headless) Stop() {
	if c, ok := h.Ticker.(*clock.Clock); ok {
		c.Stop()
	}
}

func (*Headless) Put(int, int, types.Attribute) {}
func (*Headless) SetPalette(uint8)               {}
func (*Headless) MoveLeft() bool                 { return false }
func (*Headless) MoveRight() bool                { return false }
func (*Headless) MoveUp() bool                   { return false }
func (*Headless) MoveDown() bool                 { return false }
