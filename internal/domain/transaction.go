// Package domain defines the data model of the fraud/risk decision engine.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeoPoint is an explicit location value. Optional fields in the engine are
// represented as *GeoPoint rather than untyped metadata.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

// Channel identifies how a transaction was initiated.
type Channel string

const (
	ChannelMobile Channel = "mobile"
	ChannelWeb    Channel = "web"
	ChannelUSSD   Channel = "ussd"
	ChannelAPI    Channel = "api"
	ChannelAgent  Channel = "agent"
)

// TransactionType categorizes transactions.
type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeBillPay    TransactionType = "bill_payment"
	TransactionTypeAirtime    TransactionType = "airtime"
)

// TransactionContext is the immutable per-transaction input to the engine,
// created by the caller. Amounts are NGN in minor-unit-safe decimals.
type TransactionContext struct {
	UserID            string          `json:"user_id" validate:"required"`
	AccountID         string          `json:"account_id" validate:"required"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	TransactionType   TransactionType `json:"transaction_type" validate:"required"`
	RecipientAccount  string          `json:"recipient_account,omitempty"`
	RecipientBank     string          `json:"recipient_bank,omitempty"`
	Location          *GeoPoint       `json:"location,omitempty"`
	DeviceFingerprint string          `json:"device_fingerprint,omitempty"`
	IPAddress         string          `json:"ip_address,omitempty"`
	UserAgent         string          `json:"user_agent,omitempty"`
	Channel           Channel         `json:"channel" validate:"required"`
	Timestamp         time.Time       `json:"timestamp" validate:"required"`
}

// TransactionRecord is one historical transaction as read from storage.
type TransactionRecord struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	Amount            decimal.Decimal `json:"amount"`
	TransactionType   TransactionType `json:"transaction_type"`
	RecipientAccount  string          `json:"recipient_account,omitempty"`
	Channel           Channel         `json:"channel"`
	DeviceFingerprint string          `json:"device_fingerprint,omitempty"`
	UserAgent         string          `json:"user_agent,omitempty"`
	IPAddress         string          `json:"ip_address,omitempty"`
	Location          *GeoPoint       `json:"location,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// KYCStatus represents the KYC state of an account.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusVerified KYCStatus = "verified"
	KYCStatusRejected KYCStatus = "rejected"
)

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusFrozen    AccountStatus = "frozen"
	AccountStatusClosed    AccountStatus = "closed"
)

// AccountProfile holds the account attributes the engine scores against.
type AccountProfile struct {
	UserID              string        `json:"user_id"`
	KYCStatus           KYCStatus     `json:"kyc_status"`
	AccountStatus       AccountStatus `json:"account_status"`
	AccountCreatedAt    time.Time     `json:"account_created_at"`
	FailedLoginAttempts int           `json:"failed_login_attempts"`
}

// BlacklistHits carries the blacklist lookups performed once at the start of
// an assessment so the assessors themselves stay pure.
type BlacklistHits struct {
	RecipientAccount bool `json:"recipient_account"`
	IPAddress        bool `json:"ip_address"`
}

// HistorySnapshot is the read-only view of a user's trailing activity plus
// profile, fetched once per assessment and never mutated. Transactions are
// ordered newest first. Profile is nil when the account does not exist.
type HistorySnapshot struct {
	UserID       string              `json:"user_id"`
	AsOf         time.Time           `json:"as_of"`
	WindowDays   int                 `json:"window_days"`
	Transactions []TransactionRecord `json:"transactions"`
	Profile      *AccountProfile     `json:"profile,omitempty"`
	Blacklist    BlacklistHits       `json:"blacklist"`
}
