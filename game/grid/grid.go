package grid

import (
	"strings"

	"snake-duel/game/types"
)

// Sink receives every cell write made to a Grid.
type Sink interface {
	Put(x, y int, a types.Attribute)
}

// Cells is a copy of the grid contents, indexed [x][y].
type Cells [types.GridSize][types.GridSize]types.Attribute

// Grid is the tile surface contestants move on. A cell that is not Blank is
// an obstacle. Reads outside the grid report Wall and writes outside it are
// dropped, so a missing border cannot index past the buffer.
type Grid struct {
	cells Cells
	sink  Sink
}

// New returns a cleared grid.
func New() *Grid {
	g := &Grid{}
	g.Clear()
	return g
}

// SetSink attaches a presentation sink. Pass nil to detach.
func (g *Grid) SetSink(s Sink) {
	g.sink = s
}

// Size returns the side of the grid.
func (g *Grid) Size() int {
	return types.GridSize
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < types.GridSize && y >= 0 && y < types.GridSize
}

// Clear sets every cell to Blank.
func (g *Grid) Clear() {
	for x := range g.cells {
		for y := range g.cells[x] {
			g.cells[x][y] = types.Blank
			if g.sink != nil {
				g.sink.Put(x, y, types.Blank)
			}
		}
	}
}

// Get returns the attribute at (x, y).
func (g *Grid) Get(x, y int) types.Attribute {
	if !g.InBounds(x, y) {
		return types.Wall
	}
	return g.cells[x][y]
}

// Set writes a at (x, y) and forwards the write to the sink.
func (g *Grid) Set(x, y int, a types.Attribute) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[x][y] = a
	if g.sink != nil {
		g.sink.Put(x, y, a)
	}
}

func (g *Grid) At(p types.Point) types.Attribute {
	return g.Get(p.X, p.Y)
}

func (g *Grid) Put(p types.Point, a types.Attribute) {
	g.Set(p.X, p.Y, a)
}

func (g *Grid) IsBlank(p types.Point) bool {
	return g.At(p) == types.Blank
}

// DrawBox frames the rectangle (x1,y1)-(x2,y2), corners included.
func (g *Grid) DrawBox(x1, y1, x2, y2 int, chars types.BoxGlyphs) {
	g.Set(x1, y1, chars[types.BoxTopLeft])
	g.Set(x2, y1, chars[types.BoxTopRight])
	g.Set(x1, y2, chars[types.BoxBottomLeft])
	g.Set(x2, y2, chars[types.BoxBottomRight])
	for x := x1 + 1; x < x2; x++ {
		g.Set(x, y1, chars[types.BoxTop])
		g.Set(x, y2, chars[types.BoxBottom])
	}
	for y := y1 + 1; y < y2; y++ {
		g.Set(x1, y, chars[types.BoxLeft])
		g.Set(x2, y, chars[types.BoxRight])
	}
}

// DrawBorder frames the playfield along the grid perimeter. It must run
// before every round: movement relies on it to stop contestants.
func (g *Grid) DrawBorder() {
	last := types.GridSize - 1
	g.DrawBox(0, 0, last, last, types.BoxChars)
}

// Snapshot returns a copy of all cells.
func (g *Grid) Snapshot() Cells {
	return g.cells
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < types.GridSize; y++ {
		for x := 0; x < types.GridSize; x++ {
			r, _ := types.Glyph(g.cells[x][y])
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
