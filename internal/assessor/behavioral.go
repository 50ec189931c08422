package assessor

import (
	"math"

	"riskd/internal/domain"
)

// Behavioral flags deviations from the user's established habits: time of
// day, channel, and recipients. All three checks need history to compare
// against and stay silent on brand-new accounts.
type Behavioral struct{}

func NewBehavioral() *Behavioral { return &Behavioral{} }

func (b *Behavioral) Name() string { return "behavioral" }

func (b *Behavioral) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	usedHours := make(map[int]bool)
	usedChannels := make(map[domain.Channel]bool)
	knownRecipient := false
	hourSum := 0
	for _, t := range snap.Transactions {
		h := t.CreatedAt.Hour()
		usedHours[h] = true
		hourSum += h
		if t.Channel != "" {
			usedChannels[t.Channel] = true
		}
		if tx.RecipientAccount != "" && t.RecipientAccount == tx.RecipientAccount {
			knownRecipient = true
		}
	}

	txHour := tx.Timestamp.Hour()
	meanHour := 0.0
	if len(snap.Transactions) > 0 {
		meanHour = float64(hourSum) / float64(len(snap.Transactions))
	}

	return evaluate([]rule{
		{
			weight: 15,
			reason: "Transaction at unusual time",
			match: func() bool {
				return len(snap.Transactions) > 0 &&
					!usedHours[txHour] &&
					math.Abs(float64(txHour)-meanHour) > 6
			},
		},
		{
			weight: 10,
			reason: "Transaction via unusual channel",
			match: func() bool {
				return len(usedChannels) > 0 && !usedChannels[tx.Channel]
			},
		},
		{
			weight: 15,
			reason: "Transfer to new recipient",
			match: func() bool {
				return tx.RecipientAccount != "" && !knownRecipient
			},
		},
	})
}
