// Package repository defines the externally-owned collaborator interfaces
// the engine reads from and writes to. Implementations live in the postgres,
// rediscache and memory subpackages; tests substitute mocks.
package repository

import (
	"context"

	"riskd/internal/domain"
)

// HistoryRepository serves the trailing transaction window for a user,
// ordered newest first.
type HistoryRepository interface {
	FetchRecent(ctx context.Context, userID string, windowDays int) ([]domain.TransactionRecord, error)
}

// ProfileRepository serves account profiles. A missing account is signaled
// with errors.ErrAccountNotFound, which the engine treats as a maximal-risk
// state rather than a failure.
type ProfileRepository interface {
	FetchAccountProfile(ctx context.Context, userID string) (*domain.AccountProfile, error)
}

// BlacklistRepository answers account and IP blacklist membership.
type BlacklistRepository interface {
	IsAccountBlacklisted(ctx context.Context, account string) (bool, error)
	IsIPBlacklisted(ctx context.Context, ip string) (bool, error)
}

// LoginHistoryRepository serves recent login events for takeover analysis,
// ordered newest first.
type LoginHistoryRepository interface {
	FetchRecentLogins(ctx context.Context, userID string, limit, windowDays int) ([]domain.LoginRecord, error)
}

// AssessmentStore persists decisions for audit. Appends are best-effort:
// the engine logs failures and never lets them affect the returned decision.
type AssessmentStore interface {
	Append(ctx context.Context, record *domain.AssessmentRecord) error
}
