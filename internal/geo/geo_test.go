package geo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"riskd/internal/domain"
)

func TestHaversineKM(t *testing.T) {
	origin := domain.GeoPoint{Latitude: 0, Longitude: 0}

	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineKM(origin, origin))
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		d := HaversineKM(origin, domain.GeoPoint{Latitude: 0, Longitude: 1})
		assert.InDelta(t, 111.19, d, 0.1)
	})

	t.Run("equator to pole is a quarter circumference", func(t *testing.T) {
		d := HaversineKM(origin, domain.GeoPoint{Latitude: 90, Longitude: 0})
		assert.InDelta(t, 10007.5, d, 1)
	})

	t.Run("symmetric", func(t *testing.T) {
		lagos := domain.GeoPoint{Latitude: 6.5244, Longitude: 3.3792}
		london := domain.GeoPoint{Latitude: 51.5074, Longitude: -0.1278}
		assert.InDelta(t, HaversineKM(lagos, london), HaversineKM(london, lagos), 0.001)
	})
}

func TestSimilar(t *testing.T) {
	base := domain.GeoPoint{Latitude: 6.5244, Longitude: 3.3792}

	assert.True(t, Similar(base, domain.GeoPoint{Latitude: 6.57, Longitude: 3.42}))
	assert.True(t, Similar(base, base))

	// The box is strict: exactly 0.1 degrees apart is no longer similar.
	assert.False(t, Similar(base, domain.GeoPoint{Latitude: 6.6244, Longitude: 3.3792}))
	assert.False(t, Similar(base, domain.GeoPoint{Latitude: 6.5244, Longitude: 3.4792}))
	assert.False(t, Similar(base, domain.GeoPoint{Latitude: 51.5074, Longitude: -0.1278}))
}

func TestTravelSpeedKMH(t *testing.T) {
	origin := domain.GeoPoint{Latitude: 0, Longitude: 0}
	oneDegree := domain.GeoPoint{Latitude: 0, Longitude: 1}

	t.Run("speed over one hour equals distance", func(t *testing.T) {
		speed := TravelSpeedKMH(origin, oneDegree, time.Hour)
		assert.InDelta(t, 111.19, speed, 0.1)
	})

	t.Run("no elapsed time and no movement is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, TravelSpeedKMH(origin, origin, 0))
	})

	t.Run("no elapsed time with movement is infinite", func(t *testing.T) {
		assert.True(t, math.IsInf(TravelSpeedKMH(origin, oneDegree, 0), 1))
	})
}

func TestImpossibleTravel(t *testing.T) {
	origin := domain.GeoPoint{Latitude: 0, Longitude: 0}
	nineDegrees := domain.GeoPoint{Latitude: 0, Longitude: 9} // ~1000.8 km

	assert.True(t, ImpossibleTravel(origin, nineDegrees, time.Hour, 1000))
	assert.False(t, ImpossibleTravel(origin, nineDegrees, 2*time.Hour, 1000))
	assert.True(t, ImpossibleTravel(origin, nineDegrees, 0, 1000))
}
