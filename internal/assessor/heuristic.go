package assessor

import (
	"sort"

	"github.com/shopspring/decimal"

	"riskd/internal/domain"
)

// Heuristic is the deterministic stand-in for a trained fraud model. It
// scores three features: the percentile rank of the amount within the
// user's history, the hour of day, and how often the user performs this
// transaction type. It satisfies Scorer so a real model can replace it.
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	n := len(snap.Transactions)

	percentile := 0.0
	typeFrequency := 0.0
	if n > 0 {
		amounts := make([]decimal.Decimal, n)
		typeCount := 0
		for i, t := range snap.Transactions {
			amounts[i] = t.Amount
			if t.TransactionType == tx.TransactionType {
				typeCount++
			}
		}
		sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

		// Rank is the index of the first historical amount >= the current
		// one; an amount above everything ranks at n (percentile 100).
		rank := sort.Search(n, func(i int) bool {
			return amounts[i].GreaterThanOrEqual(tx.Amount)
		})
		percentile = float64(rank) / float64(n) * 100
		typeFrequency = float64(typeCount) / float64(n)
	}

	hour := tx.Timestamp.Hour()

	return evaluate([]rule{
		{
			weight: 20,
			reason: "Amount in top 5% of user transactions",
			match:  func() bool { return n > 0 && percentile > 95 },
		},
		{
			weight: 10,
			reason: "Transaction during unusual hours",
			match:  func() bool { return hour < 6 || hour > 23 },
		},
		{
			weight: 15,
			reason: "Unusual transaction type for user",
			match:  func() bool { return n > 0 && typeFrequency < 0.1 },
		},
	})
}
