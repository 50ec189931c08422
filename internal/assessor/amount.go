package assessor

import (
	"github.com/shopspring/decimal"

	"riskd/internal/domain"
	"riskd/pkg/config"
)

// Amount flags transactions whose size is out of line with the user's
// history. The three size bands are mutually exclusive; the round-number
// rule applies independently.
type Amount struct {
	veryLarge     decimal.Decimal
	avgMultiplier decimal.Decimal
	maxMultiplier decimal.Decimal
	roundMinimum  decimal.Decimal
}

func NewAmount(cfg config.RiskConfig) *Amount {
	return &Amount{
		veryLarge:     decimal.NewFromInt(cfg.VeryLargeAmount),
		avgMultiplier: decimal.NewFromFloat(cfg.AverageMultiplier),
		maxMultiplier: decimal.NewFromFloat(cfg.MaximumMultiplier),
		roundMinimum:  decimal.NewFromInt(cfg.RoundAmountMinimum),
	}
}

func (a *Amount) Name() string { return "amount" }

func (a *Amount) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	amount := tx.Amount

	var average, maximum decimal.Decimal
	hasHistory := len(snap.Transactions) > 0
	if hasHistory {
		sum := decimal.Zero
		for _, t := range snap.Transactions {
			sum = sum.Add(t.Amount)
			if t.Amount.GreaterThan(maximum) {
				maximum = t.Amount
			}
		}
		average = sum.Div(decimal.NewFromInt(int64(len(snap.Transactions))))
	}

	thousand := decimal.NewFromInt(1000)

	return evaluate([]rule{
		{
			exclusive: true,
			weight:    30,
			reason:    "Very large transaction amount",
			match:     func() bool { return amount.GreaterThan(a.veryLarge) },
		},
		{
			exclusive: true,
			weight:    20,
			reason:    "Amount significantly higher than user average",
			match: func() bool {
				return hasHistory && amount.GreaterThan(average.Mul(a.avgMultiplier))
			},
		},
		{
			exclusive: true,
			weight:    15,
			reason:    "Amount exceeds typical maximum",
			match: func() bool {
				return hasHistory && amount.GreaterThan(maximum.Mul(a.maxMultiplier))
			},
		},
		{
			weight: 5,
			reason: "Round number transaction",
			match: func() bool {
				return amount.GreaterThanOrEqual(a.roundMinimum) && amount.Mod(thousand).IsZero()
			},
		},
	})
}
