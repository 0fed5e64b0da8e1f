package manager

import (
	"snake-duel/game/entity"
	"snake-duel/game/grid"
	"snake-duel/game/types"

	"go.uber.org/zap"
)

// CollisionManager moves contestants across the grid and flags the ones
// that run into something. The grid is the only collision medium: walls,
// trails and the other head are all just non-blank cells.
type CollisionManager struct {
	grid *grid.Grid
	log  *zap.Logger
}

func NewCollisionManager(g *grid.Grid, log *zap.Logger) *CollisionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionManager{
		grid: g,
		log:  log,
	}
}

// Blocked reports whether p is an obstacle.
func (cm *CollisionManager) Blocked(p types.Point) bool {
	return !cm.grid.IsBlank(p)
}

// Advance moves c one cell. The old head becomes trail, the target cell is
// checked before the head is written, and the head is drawn even when it
// crashed so the collision stays visible. It reports whether c collided on
// this move.
func (cm *CollisionManager) Advance(c *entity.Contestant) bool {
	c.Erase(cm.grid)
	c.Pos = c.Next()

	hit := cm.Blocked(c.Pos)
	if hit {
		cm.log.Debug("contestant collided",
			zap.Int("slot", c.ID),
			zap.Int("x", c.Pos.X),
			zap.Int("y", c.Pos.Y),
			zap.Uint8("obstacle", uint8(cm.grid.At(c.Pos))),
		)
		c.Collided = true
	}

	c.Draw(cm.grid)
	return hit
}
