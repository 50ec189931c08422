package assessor

import (
	"time"

	"riskd/internal/domain"
)

// ReasonAccountNotFound is the single reason reported for the terminal
// missing-account state.
const ReasonAccountNotFound = "User account not found"

// Account scores the account profile itself: KYC state, account age, failed
// logins and lifecycle status. A missing profile is a maximal-risk terminal
// state rather than one more additive term.
type Account struct{}

func NewAccount() *Account { return &Account{} }

func (a *Account) Name() string { return "account" }

func (a *Account) Assess(tx domain.TransactionContext, snap domain.HistorySnapshot) Result {
	profile := snap.Profile
	if profile == nil {
		return Result{
			Score:    100,
			Reasons:  []string{ReasonAccountNotFound},
			Terminal: true,
		}
	}

	age := snap.AsOf.Sub(profile.AccountCreatedAt)

	return evaluate([]rule{
		{
			weight: 25,
			reason: "Account KYC not verified",
			match:  func() bool { return profile.KYCStatus != domain.KYCStatusVerified },
		},
		{
			exclusive: true,
			weight:    30,
			reason:    "Newly created account",
			match:     func() bool { return age < 7*24*time.Hour },
		},
		{
			exclusive: true,
			weight:    15,
			reason:    "Recently created account",
			match:     func() bool { return age < 30*24*time.Hour },
		},
		{
			weight: 20,
			reason: "Multiple failed login attempts on account",
			match:  func() bool { return profile.FailedLoginAttempts > 3 },
		},
		{
			weight: 50,
			reason: "Account not in active status",
			match:  func() bool { return profile.AccountStatus != domain.AccountStatusActive },
		},
	})
}
