package carplan

import (
	"sort"
)

const (
	COLLISION_TTC_LOWER = -1.0
	COLLISION_TTC_UPPER = 2.0
)

// CollisionGate decides whether car must brake to avoid collision. It keeps no state between ticks
type CollisionGate struct{}

// Imminent reports whether any observation has time-to-collision strictly within (-1, 2)
func (CollisionGate) Imminent(observations []Observation) bool {
	for i := range observations {
		ttc := observations[i].TimeToCollision
		if ttc > COLLISION_TTC_LOWER && ttc < COLLISION_TTC_UPPER {
			return true
		}
	}
	return false
}

// prioritizeObservations returns copy of observations ordered by ascending time-to-collision (stable)
func prioritizeObservations(observations []Observation) []Observation {
	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimeToCollision < sorted[j].TimeToCollision
	})
	return sorted
}
