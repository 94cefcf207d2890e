package carplan

import (
	"math"

	"github.com/paulmach/orb"
)

// Direction is one of four cardinal headings on an orthogonal road network
type Direction uint16

const (
	DIRECTION_NORTH = Direction(iota + 1)
	DIRECTION_SOUTH
	DIRECTION_EAST
	DIRECTION_WEST
	DIRECTION_UNDEFINED = Direction(0)
)

// cardinalDirections is the enumeration order used whenever incident roads are walked
var cardinalDirections = [...]Direction{DIRECTION_NORTH, DIRECTION_SOUTH, DIRECTION_EAST, DIRECTION_WEST}

func (iotaIdx Direction) String() string {
	if iotaIdx > DIRECTION_WEST {
		return "unknown"
	}
	return [...]string{"undefined", "north", "south", "east", "west"}[iotaIdx]
}

// directionByName is used by the network loaders
var directionByName = map[string]Direction{
	"north": DIRECTION_NORTH,
	"south": DIRECTION_SOUTH,
	"east":  DIRECTION_EAST,
	"west":  DIRECTION_WEST,
}

// HeadingAngle returns the velocity angle (degrees) which corresponds to the direction.
// False is returned for an unrecognised direction
func (iotaIdx Direction) HeadingAngle() (float64, bool) {
	switch iotaIdx {
	case DIRECTION_NORTH:
		return 90, true
	case DIRECTION_SOUTH:
		return 270, true
	case DIRECTION_EAST:
		return 0, true
	case DIRECTION_WEST:
		return 180, true
	default:
		return -1, false
	}
}

// horizontal reports whether the direction runs along the X axis
func (iotaIdx Direction) horizontal() bool {
	return iotaIdx == DIRECTION_EAST || iotaIdx == DIRECTION_WEST
}

// alongAxis returns |a - b| measured on the axis the direction runs along
func (iotaIdx Direction) alongAxis(a, b orb.Point) float64 {
	if iotaIdx.horizontal() {
		return math.Abs(a.X() - b.X())
	}
	return math.Abs(a.Y() - b.Y())
}

// dominantDirection returns the heading from one point to another using the axis with the biggest offset.
// Ties go to the Y axis
func dominantDirection(from, to orb.Point) Direction {
	dx := math.Abs(from.X() - to.X())
	dy := math.Abs(from.Y() - to.Y())
	if dx > dy {
		if from.X() > to.X() {
			return DIRECTION_WEST
		}
		return DIRECTION_EAST
	}
	if from.Y() > to.Y() {
		return DIRECTION_SOUTH
	}
	return DIRECTION_NORTH
}

// thresholdDirection returns the heading from one point to another when the offset on either axis exceeds threshold.
// X axis is checked first. DIRECTION_UNDEFINED is returned when both offsets are within threshold
func thresholdDirection(from, to orb.Point, threshold float64) Direction {
	if math.Abs(from.X()-to.X()) > threshold {
		if from.X() > to.X() {
			return DIRECTION_WEST
		}
		return DIRECTION_EAST
	}
	if math.Abs(from.Y()-to.Y()) > threshold {
		if from.Y() > to.Y() {
			return DIRECTION_SOUTH
		}
		return DIRECTION_NORTH
	}
	return DIRECTION_UNDEFINED
}
