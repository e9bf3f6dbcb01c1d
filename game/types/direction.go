package types

// Direction is one of the four cardinal directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in enumeration order. The greedy policy
// breaks ties by this order.
var Directions = [...]Direction{Up, Down, Left, Right}

var deltas = [...]Point{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Delta returns the unit step for d.
func (d Direction) Delta() Point {
	if d < Up || d > Right {
		return Point{}
	}
	return deltas[d]
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}
