package types

import "time"

// GridSize is the side of the square tile grid, border included.
const GridSize = 28

// Attribute is the tile code stored in one grid cell. It selects the glyph
// a frontend draws and is the only thing collision looks at.
type Attribute uint8

const (
	Blank     Attribute = ' '
	Trail     Attribute = 254 // CP437 small square
	Wall      Attribute = 219 // CP437 full block, returned for out-of-bounds reads
	MarkerBit Attribute = 0x80
)

// Head attributes per contestant slot.
const (
	HeadOne Attribute = '1'
	HeadTwo Attribute = '2'
)

// Box glyph indices into a BoxGlyphs table.
const (
	BoxTopLeft = iota
	BoxTopRight
	BoxBottomLeft
	BoxBottomRight
	BoxTop
	BoxBottom
	BoxLeft
	BoxRight
)

// BoxGlyphs holds the eight attributes used to draw a frame.
type BoxGlyphs [8]Attribute

// BoxChars is the single-line CP437 frame.
var BoxChars = BoxGlyphs{218, 191, 192, 217, 196, 196, 179, 179}

// Timing, in ticks of the 500 Hz clock.
const (
	TickPeriod      = 2 * time.Millisecond
	FramesPerMove   = 10 // input samples per move step
	MoveDelayTicks  = 10 // wait after each input sample
	FlashFrames     = 60
	FlashDelayTicks = 5
)

// Slots of the two contestants.
const (
	HumanSlot = 0
	AISlot    = 1
)

// Spawn is the fixed starting configuration of one contestant.
type Spawn struct {
	Pos Point
	Dir Direction
}

// Spawns are indexed by slot.
var Spawns = [2]Spawn{
	{Pos: Point{X: 6, Y: 6}, Dir: Right},
	{Pos: Point{X: 21, Y: 21}, Dir: Left},
}

// Draw is the Winner value of a round where both contestants collided.
const Draw = -1

// RoundResult summarises one play-to-collision episode.
type RoundResult struct {
	ID       string    `json:"id"`
	Number   int       `json:"number"`
	Steps    int       `json:"steps"`
	Collided [2]bool   `json:"collided"`
	Winner   int       `json:"winner"`
	Started  time.Time `json:"started"`
	Ended    time.Time `json:"ended"`
}

// Duration is how long the round was played, flash excluded.
func (r RoundResult) Duration() time.Duration {
	return r.Ended.Sub(r.Started)
}
