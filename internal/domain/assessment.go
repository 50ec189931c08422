package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel classifies an assessment score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// RecommendedAction is the actionable outcome of a transaction assessment.
type RecommendedAction string

const (
	ActionApprove    RecommendedAction = "APPROVE"
	ActionRequireOTP RecommendedAction = "REQUIRE_OTP"
	ActionReview     RecommendedAction = "REVIEW"
	ActionDecline    RecommendedAction = "DECLINE"
)

// VerificationStep is an additional verification the caller should demand
// before executing the transaction.
type VerificationStep string

const (
	VerificationSMSOTP   VerificationStep = "SMS_OTP"
	VerificationDocument VerificationStep = "DOCUMENT_VERIFICATION"
	VerificationDevice   VerificationStep = "DEVICE_VERIFICATION"
	VerificationLocation VerificationStep = "LOCATION_CONFIRMATION"
)

// RiskAssessment is the immutable decision produced for one transaction.
// RiskScore is clamped to [0,100]; FlaggedReasons preserve assessor
// evaluation order: Amount, Velocity, Location, Device, Behavioral, Account,
// Blacklist, Heuristic.
type RiskAssessment struct {
	RiskScore              int                `json:"risk_score"`
	RiskLevel              RiskLevel          `json:"risk_level"`
	FlaggedReasons         []string           `json:"flagged_reasons"`
	RecommendedAction      RecommendedAction  `json:"recommended_action"`
	AdditionalVerification []VerificationStep `json:"additional_verification"`
}

// AssessmentRecord is the audit-trail row written for each decision. Written
// once, never updated.
type AssessmentRecord struct {
	ID         uuid.UUID          `json:"id"`
	UserID     string             `json:"user_id"`
	AccountID  string             `json:"account_id"`
	Assessment RiskAssessment     `json:"assessment"`
	Context    TransactionContext `json:"context"`
	AssessedAt time.Time          `json:"assessed_at"`
}

// LoginContext is the input to account-takeover detection.
type LoginContext struct {
	IPAddress         string    `json:"ip_address" validate:"required"`
	UserAgent         string    `json:"user_agent" validate:"required"`
	DeviceFingerprint string    `json:"device_fingerprint,omitempty"`
	Location          *GeoPoint `json:"location,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// LoginRecord is one historical login event.
type LoginRecord struct {
	UserID    string    `json:"user_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Location  *GeoPoint `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TakeoverAction is the recommended response to a suspicious login.
type TakeoverAction string

const (
	TakeoverAllow             TakeoverAction = "ALLOW"
	TakeoverRequireEmailCheck TakeoverAction = "REQUIRE_EMAIL_VERIFICATION"
	TakeoverRequire2FA        TakeoverAction = "REQUIRE_2FA"
	TakeoverBlockAccount      TakeoverAction = "BLOCK_ACCOUNT"
)

// TakeoverAssessment is the outcome of login analysis. Unlike RiskAssessment
// the score accumulates without a cap.
type TakeoverAssessment struct {
	RiskScore         int            `json:"risk_score"`
	RiskFactors       []string       `json:"risk_factors"`
	IsSuspicious      bool           `json:"is_suspicious"`
	RecommendedAction TakeoverAction `json:"recommended_action"`
}

// PatternLevel grades a real-time pattern alert.
type PatternLevel string

const (
	PatternLevelLow    PatternLevel = "LOW"
	PatternLevelMedium PatternLevel = "MEDIUM"
	PatternLevelHigh   PatternLevel = "HIGH"
)

// PatternAlert is the transient result of real-time pattern monitoring.
// It is returned to the caller and never persisted.
type PatternAlert struct {
	Alerts    []string     `json:"alerts"`
	RiskLevel PatternLevel `json:"risk_level"`
}
