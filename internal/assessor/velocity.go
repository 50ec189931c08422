package assessor

import (
	"time"

	"github.com/shopspring/decimal"

	"riskd/internal/domain"
	"riskd/pkg/config"
)

// Velocity flags bursts of activity in the trailing hour and day. The two
// hourly-count bands form an exclusive ladder; the daily-count and monetary
// rules accumulate on top.
type Velocity struct {
	hourlyCountHigh     int
	hourlyCountElevated int
	dailyCountHigh      int
	hourlyAmountHigh    decimal.Decimal
}

func NewVelocity(cfg config.RiskConfig) *Velocity {
	return &Velocity{
		hourlyCountHigh:     cfg.HourlyCountHigh,
		hourlyCountElevated: cfg.HourlyCountElevated,
		dailyCountHigh:      cfg.DailyCountHigh,
		hourlyAmountHigh:    decimal.NewFromInt(cfg.HourlyAmountHigh),
	}
}

func (v *Velocity) Name() string { return "velocity" }

func (v *Velocity) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	hourAgo := snap.AsOf.Add(-time.Hour)
	dayAgo := snap.AsOf.Add(-24 * time.Hour)

	hourCount := 0
	dayCount := 0
	hourSum := decimal.Zero
	for _, t := range snap.Transactions {
		if t.CreatedAt.After(snap.AsOf) {
			continue
		}
		if t.CreatedAt.After(dayAgo) {
			dayCount++
		}
		if t.CreatedAt.After(hourAgo) {
			hourCount++
			hourSum = hourSum.Add(t.Amount)
		}
	}

	return evaluate([]rule{
		{
			exclusive: true,
			weight:    40,
			reason:    "Excessive transactions in last hour",
			match:     func() bool { return hourCount > v.hourlyCountHigh },
		},
		{
			exclusive: true,
			weight:    20,
			reason:    "High transaction frequency",
			match:     func() bool { return hourCount > v.hourlyCountElevated },
		},
		{
			weight: 30,
			reason: "Excessive daily transaction volume",
			match:  func() bool { return dayCount > v.dailyCountHigh },
		},
		{
			weight: 35,
			reason: "High monetary velocity",
			match:  func() bool { return hourSum.GreaterThan(v.hourlyAmountHigh) },
		},
	})
}
