package carplan

import (
	"strings"
)

// Classification is kind of perceived object
type Classification uint16

const (
	CLASSIFICATION_CAR = Classification(iota + 1)
	CLASSIFICATION_BUILDING
	CLASSIFICATION_SIGN
	CLASSIFICATION_TRAFFIC_LIGHT
	CLASSIFICATION_ROAD_MARKING
	CLASSIFICATION_UNDEFINED = Classification(0)
)

func (iotaIdx Classification) String() string {
	if iotaIdx > CLASSIFICATION_ROAD_MARKING {
		return "unknown"
	}
	return [...]string{"undefined", "car", "building", "sign", "traffic_light", "road_marking"}[iotaIdx]
}

// LightState is a signal shown by traffic light
type LightState uint16

const (
	LIGHT_RED = LightState(iota + 1)
	LIGHT_AMBER
	LIGHT_GREEN
	LIGHT_UNDEFINED = LightState(0)
)

func (iotaIdx LightState) String() string {
	if iotaIdx > LIGHT_GREEN {
		return "unknown"
	}
	return [...]string{"undefined", "red", "amber", "green"}[iotaIdx]
}

// LIGHT_STATE_KEY is the key of Observation.Information holding traffic light signal
const LIGHT_STATE_KEY = "State"

// Observation is a single perceived object
type Observation struct {
	Classification  Classification
	TimeToCollision float64
	Distance        float64
	// Bearing is relative direction to the object, degrees
	Bearing     float64
	Information map[string]interface{}
}

// LightState decodes traffic light signal. Both LightState values and their names are accepted
func (obs *Observation) LightState() (LightState, bool) {
	value, ok := obs.Information[LIGHT_STATE_KEY]
	if !ok {
		return LIGHT_UNDEFINED, false
	}
	switch v := value.(type) {
	case LightState:
		if v == LIGHT_UNDEFINED || v > LIGHT_GREEN {
			return LIGHT_UNDEFINED, false
		}
		return v, true
	case string:
		state, ok := lightStateByName[strings.ToLower(v)]
		return state, ok
	default:
		return LIGHT_UNDEFINED, false
	}
}

var lightStateByName = map[string]LightState{
	"red":    LIGHT_RED,
	"amber":  LIGHT_AMBER,
	"orange": LIGHT_AMBER,
	"yellow": LIGHT_AMBER,
	"green":  LIGHT_GREEN,
}
