// Package geo provides the distance and travel-speed helpers used by the
// location assessor and the account-takeover detector.
package geo

import (
	"math"
	"time"

	"riskd/internal/domain"
)

const earthRadiusKM = 6371.0

// similarityDegrees is the coarse box used to decide whether two points are
// "the same place" (~10 km at the equator). This is an intentional proxy,
// not a geodesic comparison.
const similarityDegrees = 0.1

// HaversineKM returns the great-circle distance between two points in
// kilometers.
func HaversineKM(a, b domain.GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// Similar reports whether two points fall inside the same coarse box:
// both latitude and longitude deltas strictly under 0.1 degrees.
func Similar(a, b domain.GeoPoint) bool {
	return math.Abs(a.Latitude-b.Latitude) < similarityDegrees &&
		math.Abs(a.Longitude-b.Longitude) < similarityDegrees
}

// TravelSpeedKMH returns the straight-line speed implied by moving from a to
// b over the elapsed duration. A non-positive duration yields +Inf for any
// displacement and 0 when the points coincide.
func TravelSpeedKMH(a, b domain.GeoPoint, elapsed time.Duration) float64 {
	distance := HaversineKM(a, b)
	hours := elapsed.Hours()
	if hours <= 0 {
		if distance == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return distance / hours
}

// ImpossibleTravel reports whether the implied speed between two sightings
// exceeds the plausible maximum in km/h.
func ImpossibleTravel(a, b domain.GeoPoint, elapsed time.Duration, maxKMH float64) bool {
	return TravelSpeedKMH(a, b, elapsed) > maxKMH
}
