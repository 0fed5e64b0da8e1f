package types

// Point is a cell coordinate. Y grows downward.
type Point struct {
	X, Y int
}

// Add returns p moved by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Direction is a cardinal heading. Values are ordered clockwise so that
// d^2 is the opposite heading and (d+1)&3 is a quarter turn clockwise.
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

// Directions lists every heading in clockwise order.
var Directions = [4]Direction{Right, Down, Left, Up}

var vectors = [4]Point{
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Up:    {X: 0, Y: -1},
}

// Vector converts a Direction into its unit displacement.
func (d Direction) Vector() Point {
	return vectors[d&3]
}

// Reverse returns the opposite heading.
func (d Direction) Reverse() Direction {
	return d ^ 2
}

// IsReverseOf reports whether d points exactly opposite to e.
func (d Direction) IsReverseOf(e Direction) bool {
	return d == e.Reverse()
}

// Clockwise returns the heading a quarter turn to the right.
func (d Direction) Clockwise() Direction {
	return (d + 1) & 3
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	default:
		return "invalid"
	}
}
