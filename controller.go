package carplan

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// Car is the agent handle supplied by the simulation host
type Car interface {
	Position() orb.Point
	// HeadingAngle is velocity angle in degrees
	HeadingAngle() float64
	Accelerate()
	Brake()
	// Turn rotates car by given (signed) angle in degrees
	Turn(delta float64)
	Update(delta float64)
}

// Throttle is acceleration intent
type Throttle int

const (
	THROTTLE_ACCELERATE = Throttle(1)
	THROTTLE_BRAKE      = Throttle(-1)
	THROTTLE_NONE       = Throttle(0)
)

// DEFAULT_MAX_TURN_RATE is maximum turn per tick, degrees
const DEFAULT_MAX_TURN_RATE = 20.0

// CarController translates desired heading and throttle into bounded actuator calls
type CarController struct {
	car         Car
	maxTurnRate float64
}

func NewCarController(car Car, maxTurnRate float64) *CarController {
	return &CarController{
		car:         car,
		maxTurnRate: maxTurnRate,
	}
}

// AdjustCar accelerates or brakes, then turns the car toward target angle via the shorter arc not exceeding max turn rate
func (controller *CarController) AdjustCar(targetAngle float64, throttle Throttle) {
	switch {
	case throttle > 0:
		controller.car.Accelerate()
	case throttle < 0:
		controller.car.Brake()
	}
	controller.turn(targetAngle)
}

func (controller *CarController) turn(targetAngle float64) {
	current := controller.car.HeadingAngle()
	if current == targetAngle {
		return
	}
	angleDifference := normalizeAngle(targetAngle - current)
	if angleDifference == 0 || math.IsNaN(angleDifference) {
		return
	}
	controller.car.Turn(lo.Clamp(angleDifference, -controller.maxTurnRate, controller.maxTurnRate))
}
