package assessor

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"riskd/internal/domain"
	"riskd/pkg/config"
)

// burstSnapshot builds a snapshot with count transactions of the given
// amount inside the trailing hour.
func burstSnapshot(count int, amount int64) domain.HistorySnapshot {
	records := make([]domain.TransactionRecord, count)
	for i := 0; i < count; i++ {
		records[i] = domain.TransactionRecord{
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(amount),
			Channel:   domain.ChannelMobile,
			CreatedAt: testTime.Add(-time.Duration(i+1) * 5 * time.Minute),
		}
	}
	return domain.HistorySnapshot{UserID: "user-1", AsOf: testTime, Transactions: records}
}

func TestVelocity_ExcessiveHourlyCount(t *testing.T) {
	v := NewVelocity(config.LoadRisk())

	res := v.Assess(txWithAmount(1_000), burstSnapshot(11, 1_000))

	assert.Equal(t, 40, res.Score)
	assert.Equal(t, []string{"Excessive transactions in last hour"}, res.Reasons)
}

func TestVelocity_ElevatedHourlyCount(t *testing.T) {
	v := NewVelocity(config.LoadRisk())

	res := v.Assess(txWithAmount(1_000), burstSnapshot(6, 1_000))

	assert.Equal(t, 20, res.Score)
	assert.Equal(t, []string{"High transaction frequency"}, res.Reasons)
}

func TestVelocity_QuietHourIsClean(t *testing.T) {
	v := NewVelocity(config.LoadRisk())

	res := v.Assess(txWithAmount(1_000), burstSnapshot(5, 1_000))

	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Reasons)
}

func TestVelocity_ExcessiveDailyVolume(t *testing.T) {
	v := NewVelocity(config.LoadRisk())

	// 51 transactions spread over the day but none inside the last hour.
	records := make([]domain.TransactionRecord, 51)
	for i := range records {
		records[i] = domain.TransactionRecord{
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(1_000),
			CreatedAt: testTime.Add(-90*time.Minute - time.Duration(i)*15*time.Minute),
		}
	}
	snap := domain.HistorySnapshot{UserID: "user-1", AsOf: testTime, Transactions: records}

	res := v.Assess(txWithAmount(1_000), snap)

	assert.Equal(t, 30, res.Score)
	assert.Equal(t, []string{"Excessive daily transaction volume"}, res.Reasons)
}

func TestVelocity_HighMonetaryVelocity(t *testing.T) {
	v := NewVelocity(config.LoadRisk())

	// Three transactions of 2,000,000 in the last hour: count is quiet,
	// the monetary sum is not.
	res := v.Assess(txWithAmount(1_000), burstSnapshot(3, 2_000_000))

	assert.Equal(t, 35, res.Score)
	assert.Equal(t, []string{"High monetary velocity"}, res.Reasons)
}

func TestVelocity_BandsAccumulate(t *testing.T) {
	v := NewVelocity(config.LoadRisk())

	// 11 transactions of 500,000 in the hour trips both the count band
	// and the monetary band.
	res := v.Assess(txWithAmount(1_000), burstSnapshot(11, 500_000))

	assert.Equal(t, 75, res.Score)
	assert.Equal(t, []string{
		"Excessive transactions in last hour",
		"High monetary velocity",
	}, res.Reasons)
}
