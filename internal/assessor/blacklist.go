package assessor

import (
	"riskd/internal/domain"
)

// Blacklist scores the blacklist hits resolved by the orchestrator's
// upfront collaborator fetch. Either hit alone usually pushes a baseline
// score over the critical threshold.
type Blacklist struct{}

func NewBlacklist() *Blacklist { return &Blacklist{} }

func (b *Blacklist) Name() string { return "blacklist" }

func (b *Blacklist) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	return evaluate([]rule{
		{
			weight: 80,
			reason: "Transfer to blacklisted account",
			match:  func() bool { return snap.Blacklist.RecipientAccount },
		},
		{
			weight: 60,
			reason: "Transaction from blacklisted IP",
			match:  func() bool { return snap.Blacklist.IPAddress },
		},
	})
}
