package components

// NumDirections is the size of the compass.
const NumDirections = 8

// Direction is one of the eight compass points, numbered clockwise from north.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var unitVectors = [NumDirections]Position{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

// Unit returns the one-cell step in direction d.
func (d Direction) Unit() Position {
	return unitVectors[d%NumDirections]
}

// Rotate turns d clockwise by delta eighths. Negative deltas turn
// counter-clockwise; the result is always a valid direction.
func (d Direction) Rotate(delta int) Direction {
	r := (int(d) + delta) % NumDirections
	if r < 0 {
		r += NumDirections
	}
	return Direction(r)
}

// Opposite is d rotated by half a turn.
func (d Direction) Opposite() Direction {
	return d.Rotate(NumDirections / 2)
}

// Degrees is the clockwise angle from north.
func (d Direction) Degrees() float32 {
	return float32(d%NumDirections) * 45
}

func (d Direction) String() string {
	return directionNames[d%NumDirections]
}
