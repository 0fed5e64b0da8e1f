// Package clock provides the tick source the game waits on.
package clock

import "time"

// Ticker blocks until a number of ticks of a fixed-frequency clock elapsed.
type Ticker interface {
	Wait(ticks int)
}

// Clock is a real-time Ticker.
type Clock struct {
	t *time.Ticker
}

// New starts a clock ticking every period.
func New(period time.Duration) *Clock {
	return &Clock{t: time.NewTicker(period)}
}

func (c *Clock) Wait(ticks int) {
	for i := 0; i < ticks; i++ {
		<-c.t.C
	}
}

func (c *Clock) Stop() {
	c.t.Stop()
}

// Manual counts ticks without sleeping.
type Manual struct {
	elapsed int
	calls   int
}

func (m *Manual) Wait(ticks int) {
	m.elapsed += ticks
	m.calls++
}

// Elapsed returns the total ticks waited for.
func (m *Manual) Elapsed() int {
	return m.elapsed
}

// Calls returns how many times Wait was called.
func (m *Manual) Calls() int {
	return m.calls
}

// Func adapts a function to Ticker.
type Func func(ticks int)

func (f Func) Wait(ticks int) {
	f(ticks)
}
