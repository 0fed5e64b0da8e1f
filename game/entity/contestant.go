package entity

import (
	"snake-duel/game/grid"
	"snake-duel/game/types"
)

// Kind tells who steers a contestant.
type Kind int

const (
	Human Kind = iota
	AI
)

func (k Kind) String() string {
	if k == Human {
		return "human"
	}
	return "ai"
}

// Contestant is one trail-laying player. Its head and tail attributes are
// fixed at creation; position, heading and the collided flag are reset
// every round.
type Contestant struct {
	ID       int
	Kind     Kind
	Pos      types.Point
	Dir      types.Direction
	HeadAttr types.Attribute
	TailAttr types.Attribute
	Collided bool
}

func NewContestant(id int, kind Kind, head, tail types.Attribute) *Contestant {
	return &Contestant{
		ID:       id,
		Kind:     kind,
		HeadAttr: head,
		TailAttr: tail,
	}
}

// Reset puts the contestant back on its spawn. The marker bit is cleared
// so a round cut short mid-flash still starts with a plain head.
func (c *Contestant) Reset(spawn types.Spawn) {
	c.Pos = spawn.Pos
	c.Dir = spawn.Dir
	c.Collided = false
	c.HeadAttr &^= types.MarkerBit
}

// Steer changes heading unless dir is a 180 degree turn. It reports
// whether the heading was accepted.
func (c *Contestant) Steer(dir types.Direction) bool {
	if dir.IsReverseOf(c.Dir) {
		return false
	}
	c.Dir = dir
	return true
}

// Next returns the cell one step ahead.
func (c *Contestant) Next() types.Point {
	return c.Pos.Add(c.Dir.Vector())
}

// ToggleMarker flips the inverse-video bit of the head attribute.
func (c *Contestant) ToggleMarker() {
	c.HeadAttr ^= types.MarkerBit
}

// Draw writes the head at the current position.
func (c *Contestant) Draw(g *grid.Grid) {
	g.Put(c.Pos, c.HeadAttr)
}

// Erase leaves a trail mark at the current position.
func (c *Contestant) Erase(g *grid.Grid) {
	g.Put(c.Pos, c.TailAttr)
}
