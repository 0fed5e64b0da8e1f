package ai

import (
	"snake-duel/game/entity"
	"snake-duel/game/types"
)

// Board is the read side of the grid a controller looks at.
type Board interface {
	At(p types.Point) types.Attribute
}

// Controller picks the heading of a computer contestant once per move step.
type Controller interface {
	Decide(b Board, c *entity.Contestant)
}

// Heuristic looks one cell ahead and, if it is taken, turns a quarter
// clockwise without checking the new heading. It stays beatable on purpose:
// three blocked sides still lead it into a wall.
type Heuristic struct{}

func (Heuristic) Decide(b Board, c *entity.Contestant) {
	if b.At(c.Next()) != types.Blank {
		c.Dir = c.Dir.Clockwise()
	}
}

// Idle never changes heading.
type Idle struct{}

func (Idle) Decide(Board, *entity.Contestant) {}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(b Board, c *entity.Contestant)

func (f ControllerFunc) Decide(b Board, c *entity.Contestant) {
	f(b, c)
}
