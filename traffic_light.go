package carplan

const (
	// TRAFFIC_LIGHT_STOP_DISTANCE is distance to the light under which car has to stop on red or amber
	TRAFFIC_LIGHT_STOP_DISTANCE = 10.0
	// TRAFFIC_LIGHT_FACING_BEARING is bearing under which light is considered to face the car
	TRAFFIC_LIGHT_FACING_BEARING = 180.0
)

// TrafficLightGate keeps traffic lights seen on the latest tick ordered so the one car should react to is first
type TrafficLightGate struct {
	trafficLights []Observation
	logger        Logger
}

func NewTrafficLightGate(logger Logger) *TrafficLightGate {
	if logger == nil {
		logger = defaultLogger()
	}
	return &TrafficLightGate{logger: logger}
}

func facesCar(light *Observation) bool {
	return light.Bearing < TRAFFIC_LIGHT_FACING_BEARING
}

// Update replaces traffic lights with the ones seen on the latest tick.
// A light goes to the front only when it is closer than the current front one and faces the car,
// any other light is appended. The first light of the tick is the initial front
func (gate *TrafficLightGate) Update(trafficLights []Observation) {
	ordered := make([]Observation, 0, len(trafficLights))
	for _, light := range trafficLights {
		if len(ordered) > 0 && light.Distance < ordered[0].Distance && facesCar(&light) {
			ordered = append([]Observation{light}, ordered...)
			continue
		}
		ordered = append(ordered, light)
	}
	gate.trafficLights = ordered
}

// Closest returns the light the car reacts to
func (gate *TrafficLightGate) Closest() (Observation, bool) {
	if len(gate.trafficLights) == 0 {
		return Observation{}, false
	}
	return gate.trafficLights[0], true
}

// CheckForStop reports whether car has to stop for the closest facing light which is red or amber.
// Unknown light state is logged and treated as no stop
func (gate *TrafficLightGate) CheckForStop() bool {
	closest, ok := gate.Closest()
	if !ok {
		return false
	}
	if !facesCar(&closest) || closest.Distance >= TRAFFIC_LIGHT_STOP_DISTANCE {
		return false
	}
	state, ok := closest.LightState()
	if !ok {
		gate.logger.Printf("[WARNING]: State of traffic light is not recognised: '%v'", closest.Information[LIGHT_STATE_KEY])
		return false
	}
	return state == LIGHT_RED || state == LIGHT_AMBER
}
