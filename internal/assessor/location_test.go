package assessor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"riskd/internal/domain"
	"riskd/pkg/config"
)

var (
	lagosPoint  = domain.GeoPoint{Latitude: 6.5244, Longitude: 3.3792, Country: "NG"}
	londonPoint = domain.GeoPoint{Latitude: 51.5074, Longitude: -0.1278, Country: "GB"}
)

func snapshotAt(points ...domain.GeoPoint) domain.HistorySnapshot {
	records := make([]domain.TransactionRecord, len(points))
	for i := range points {
		p := points[i]
		records[i] = domain.TransactionRecord{
			UserID:    "user-1",
			Location:  &p,
			CreatedAt: testTime.Add(-time.Duration(i+1) * 24 * time.Hour),
		}
	}
	return domain.HistorySnapshot{UserID: "user-1", AsOf: testTime, Transactions: records}
}

func txAt(p domain.GeoPoint) domain.TransactionContext {
	tx := txWithAmount(5_000)
	tx.Location = &p
	return tx
}

func TestLocation_SkipsWithoutLocation(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	res := l.Assess(txWithAmount(5_000), snapshotAt(lagosPoint))

	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Reasons)
}

func TestLocation_FamiliarLocationIsClean(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	nearby := domain.GeoPoint{Latitude: 6.53, Longitude: 3.41, Country: "NG"}
	res := l.Assess(txAt(nearby), snapshotAt(lagosPoint))

	assert.Equal(t, 0, res.Score)
}

func TestLocation_UnusualLocation(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	res := l.Assess(txAt(londonPoint), snapshotAt(lagosPoint))

	assert.Equal(t, 25, res.Score)
	assert.Equal(t, []string{"Transaction from unusual location"}, res.Reasons)
}

func TestLocation_UnusualHighRiskLocation(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	tehran := domain.GeoPoint{Latitude: 35.6892, Longitude: 51.389, Country: "IR"}
	res := l.Assess(txAt(tehran), snapshotAt(lagosPoint))

	assert.Equal(t, 55, res.Score)
	assert.Equal(t, []string{
		"Transaction from unusual location",
		"Transaction from high-risk geographic area",
	}, res.Reasons)
}

func TestLocation_FamiliarHighRiskLocationIsClean(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	tehran := domain.GeoPoint{Latitude: 35.6892, Longitude: 51.389, Country: "IR"}
	res := l.Assess(txAt(tehran), snapshotAt(tehran))

	assert.Equal(t, 0, res.Score)
}

func TestLocation_NoKnownLocationsIsUnusual(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	res := l.Assess(txAt(lagosPoint), domain.HistorySnapshot{AsOf: testTime})

	assert.Equal(t, 25, res.Score)
}

func TestLocation_OnlyRecentLocationsCount(t *testing.T) {
	l := NewLocation(config.LoadRisk())

	// 20 recent sightings in London push the older Lagos sighting out of
	// the comparison set.
	points := make([]domain.GeoPoint, 0, 21)
	for i := 0; i < 20; i++ {
		points = append(points, domain.GeoPoint{
			Latitude:  londonPoint.Latitude + float64(i)*0.01,
			Longitude: londonPoint.Longitude,
			Country:   "GB",
		})
	}
	points = append(points, lagosPoint)
	snap := snapshotAt(points...)

	res := l.Assess(txAt(lagosPoint), snap)

	assert.Equal(t, 25, res.Score, fmt.Sprintf("reasons: %v", res.Reasons))
}
