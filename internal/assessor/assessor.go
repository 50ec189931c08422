// Package assessor implements the per-factor risk assessors. Each assessor is
// a pure function over a transaction and a fetched history snapshot; it holds
// no state beyond its configured thresholds and performs no I/O.
package assessor

import (
	"riskd/internal/domain"
	"riskd/pkg/config"
)

// Result is one assessor's contribution: a non-negative score delta and the
// reasons behind it. Terminal marks a state that bypasses normal aggregation
// (missing account); the orchestrator must special-case it.
type Result struct {
	Score    int
	Reasons  []string
	Terminal bool
}

// Assessor computes a partial risk score from a snapshot of data.
type Assessor interface {
	Name() string
	Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result
}

// Scorer is the model-shaped contribution. It is deliberately a narrow,
// separate interface so a trained fraud model can replace the threshold
// heuristic without changing the orchestrator's aggregation contract.
type Scorer interface {
	Name() string
	Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result
}

// Defaults returns the first seven assessors in their fixed evaluation order:
// Amount, Velocity, Location, Device, Behavioral, Account, Blacklist. The
// heuristic scorer is appended by the orchestrator as the eighth.
func Defaults(cfg config.RiskConfig) []Assessor {
	return []Assessor{
		NewAmount(cfg),
		NewVelocity(cfg),
		NewLocation(cfg),
		NewDevice(cfg),
		NewBehavioral(),
		NewAccount(),
		NewBlacklist(),
	}
}
