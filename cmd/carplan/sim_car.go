package main

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// Speed change per single Accelerate / Brake call
	speedStep = 0.5
)

// simCar is a point mass moving along its heading
type simCar struct {
	pos      orb.Point
	heading  float64
	speed    float64
	maxSpeed float64
}

func newSimCar(pos orb.Point, maxSpeed float64) *simCar {
	return &simCar{
		pos:      pos,
		maxSpeed: maxSpeed,
	}
}

func (car *simCar) Position() orb.Point {
	return car.pos
}

func (car *simCar) HeadingAngle() float64 {
	return car.heading
}

func (car *simCar) Accelerate() {
	car.speed = math.Min(car.speed+speedStep, car.maxSpeed)
}

func (car *simCar) Brake() {
	car.speed = math.Max(car.speed-speedStep, 0)
}

func (car *simCar) Turn(delta float64) {
	car.heading = math.Mod(car.heading+delta+360, 360)
}

func (car *simCar) Update(delta float64) {
	rad := car.heading * math.Pi / 180.0
	car.pos = orb.Point{
		car.pos.X() + math.Cos(rad)*car.speed*delta,
		car.pos.Y() + math.Sin(rad)*car.speed*delta,
	}
}
