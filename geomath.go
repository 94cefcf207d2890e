package carplan

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"
)

// findDistance returns straight line distance between two points (planar coordinates)
func findDistance(p, q orb.Point) float64 {
	return planar.Distance(p, q)
}

// orthogonalDistance returns distance between two points which are expected to be aligned on one axis.
// If X coordinates are equal the Y offset is used, otherwise the X offset
func orthogonalDistance(p, q orb.Point) float64 {
	if p.X() == q.X() {
		return math.Abs(p.Y() - q.Y())
	}
	return math.Abs(p.X() - q.X())
}

// chebyshevDistance returns max(|dx|, |dy|)
func chebyshevDistance(p, q orb.Point) float64 {
	return math.Max(math.Abs(p.X()-q.X()), math.Abs(p.Y()-q.Y()))
}

// spanBound returns axis-aligned box spanned by two points
func spanBound(p, q orb.Point) orb.Bound {
	return orb.MultiPoint{p, q}.Bound()
}

// clampToBound returns the point of the box closest to the given point. Each axis is clamped independently
func clampToBound(pt orb.Point, bound orb.Bound) orb.Point {
	return orb.Point{
		lo.Clamp(pt.X(), bound.Min.X(), bound.Max.X()),
		lo.Clamp(pt.Y(), bound.Min.Y(), bound.Max.Y()),
	}
}

// withinExtent checks if the point lies within |dx| <= width and |dy| <= length of the center
func withinExtent(center, pt orb.Point, width, length float64) bool {
	return math.Abs(center.X()-pt.X()) <= width && math.Abs(center.Y()-pt.Y()) <= length
}

// normalizeAngle wraps an angle difference (degrees) into (-180, 180]. NaN and infinite input give NaN
func normalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return math.NaN()
	}
	angle = math.Mod(angle, 360)
	if angle > 180 {
		angle -= 360
	} else if angle <= -180 {
		angle += 360
	}
	return angle
}

// getLength returns planar length of the line
func getLength(line orb.LineString) float64 {
	if len(line) < 2 {
		return 0.0
	}
	return planar.Length(line)
}
