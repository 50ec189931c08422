package risk

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"riskd/internal/domain"
	"riskd/pkg/config"
	"riskd/pkg/errors"
	"riskd/pkg/logger"
)

var assessTime = time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

type mockHistoryRepo struct{ mock.Mock }

func (m *mockHistoryRepo) FetchRecent(ctx context.Context, userID string, windowDays int) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, userID, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) FetchAccountProfile(ctx context.Context, userID string) (*domain.AccountProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountProfile), args.Error(1)
}

type mockBlacklistRepo struct{ mock.Mock }

func (m *mockBlacklistRepo) IsAccountBlacklisted(ctx context.Context, account string) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlacklistRepo) IsIPBlacklisted(ctx context.Context, ip string) (bool, error) {
	args := m.Called(ctx, ip)
	return args.Bool(0), args.Error(1)
}

// captureStore hands appended records back over a channel so tests can wait
// for the fire-and-forget audit write.
type captureStore struct {
	records chan *domain.AssessmentRecord
}

func newCaptureStore() *captureStore {
	return &captureStore{records: make(chan *domain.AssessmentRecord, 8)}
}

func (s *captureStore) Append(_ context.Context, record *domain.AssessmentRecord) error {
	s.records <- record
	return nil
}

func (s *captureStore) wait(t *testing.T) *domain.AssessmentRecord {
	t.Helper()
	select {
	case r := <-s.records:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("audit record was never appended")
		return nil
	}
}

func activeProfile() *domain.AccountProfile {
	return &domain.AccountProfile{
		UserID:           "user-1",
		KYCStatus:        domain.KYCStatusVerified,
		AccountStatus:    domain.AccountStatusActive,
		AccountCreatedAt: assessTime.Add(-365 * 24 * time.Hour),
	}
}

func steadyHistory() []domain.TransactionRecord {
	records := make([]domain.TransactionRecord, 0, 20)
	for i := 0; i < 20; i++ {
		amount := int64(100_000)
		if i < 2 {
			amount = 2_000_000
		}
		day := assessTime.Add(-time.Duration(i+2) * 24 * time.Hour)
		records = append(records, domain.TransactionRecord{
			UserID:            "user-1",
			Amount:            decimal.NewFromInt(amount),
			TransactionType:   domain.TransactionTypeTransfer,
			RecipientAccount:  "0123456789",
			Channel:           domain.ChannelMobile,
			DeviceFingerprint: "fp-1",
			UserAgent:         "RiskdApp/2.4",
			CreatedAt:         time.Date(day.Year(), day.Month(), day.Day(), 13, 0, 0, 0, time.UTC),
		})
	}
	return records
}

func steadyTx() domain.TransactionContext {
	return domain.TransactionContext{
		UserID:            "user-1",
		AccountID:         "acct-1",
		Amount:            decimal.NewFromInt(2_000_000),
		TransactionType:   domain.TransactionTypeTransfer,
		RecipientAccount:  "0123456789",
		DeviceFingerprint: "fp-1",
		UserAgent:         "RiskdApp/2.4",
		Channel:           domain.ChannelMobile,
		Timestamp:         assessTime,
	}
}

func newTestOrchestrator(history *mockHistoryRepo, profiles *mockProfileRepo, blacklist *mockBlacklistRepo, store *captureStore) *Orchestrator {
	o := NewOrchestrator(history, profiles, blacklist, store, config.LoadRisk(), logger.NewNop())
	o.now = func() time.Time { return assessTime }
	return o
}

func TestAnalyzeTransaction_LargeAmountForEstablishedUser(t *testing.T) {
	history := new(mockHistoryRepo)
	profiles := new(mockProfileRepo)
	blacklist := new(mockBlacklistRepo)
	store := newCaptureStore()

	history.On("FetchRecent", mock.Anything, "user-1", 60).Return(steadyHistory(), nil)
	profiles.On("FetchAccountProfile", mock.Anything, "user-1").Return(activeProfile(), nil)
	blacklist.On("IsAccountBlacklisted", mock.Anything, "0123456789").Return(false, nil)

	o := newTestOrchestrator(history, profiles, blacklist, store)
	res := o.AnalyzeTransaction(context.Background(), steadyTx())

	assert.Equal(t, 35, res.RiskScore)
	assert.Equal(t, domain.RiskLevelMedium, res.RiskLevel)
	assert.Equal(t, domain.ActionRequireOTP, res.RecommendedAction)
	assert.Equal(t, []string{
		"Very large transaction amount",
		"Round number transaction",
	}, res.FlaggedReasons)
	assert.Empty(t, res.AdditionalVerification)

	store.wait(t)
	history.AssertExpectations(t)
	profiles.AssertExpectations(t)
	blacklist.AssertExpectations(t)
}

func TestAnalyzeTransaction_BurstToBlacklistedRecipient(t *testing.T) {
	history := new(mockHistoryRepo)
	profiles := new(mockProfileRepo)
	blacklist := new(mockBlacklistRepo)
	store := newCaptureStore()

	burst := make([]domain.TransactionRecord, 11)
	for i := range burst {
		burst[i] = domain.TransactionRecord{
			UserID:           "user-1",
			Amount:           decimal.NewFromInt(6_000),
			TransactionType:  domain.TransactionTypeTransfer,
			RecipientAccount: "9999999999",
			Channel:          domain.ChannelMobile,
			CreatedAt:        assessTime.Add(-time.Duration(i+1) * 5 * time.Minute),
		}
	}
	history.On("FetchRecent", mock.Anything, "user-1", 60).Return(burst, nil)
	profiles.On("FetchAccountProfile", mock.Anything, "user-1").Return(activeProfile(), nil)
	blacklist.On("IsAccountBlacklisted", mock.Anything, "9999999999").Return(true, nil)

	tx := steadyTx()
	tx.Amount = decimal.NewFromInt(5_500)
	tx.RecipientAccount = "9999999999"
	tx.DeviceFingerprint = ""
	tx.UserAgent = ""

	o := newTestOrchestrator(history, profiles, blacklist, store)
	res := o.AnalyzeTransaction(context.Background(), tx)

	// Raw 120 clamps to 100; the raw value still drives the action.
	assert.Equal(t, 100, res.RiskScore)
	assert.Equal(t, domain.RiskLevelCritical, res.RiskLevel)
	assert.Equal(t, domain.ActionDecline, res.RecommendedAction)
	assert.Equal(t, []string{
		"Excessive transactions in last hour",
		"Transfer to blacklisted account",
	}, res.FlaggedReasons)
	assert.Equal(t, []domain.VerificationStep{
		domain.VerificationSMSOTP,
		domain.VerificationDocument,
	}, res.AdditionalVerification)

	store.wait(t)
}

func TestAnalyzeTransaction_MissingAccountIsTerminal(t *testing.T) {
	history := new(mockHistoryRepo)
	profiles := new(mockProfileRepo)
	blacklist := new(mockBlacklistRepo)
	store := newCaptureStore()

	history.On("FetchRecent", mock.Anything, "user-1", 60).Return([]domain.TransactionRecord{}, nil)
	profiles.On("FetchAccountProfile", mock.Anything, "user-1").Return(nil, errors.ErrAccountNotFound)
	blacklist.On("IsAccountBlacklisted", mock.Anything, "0123456789").Return(true, nil)

	o := newTestOrchestrator(history, profiles, blacklist, store)
	res := o.AnalyzeTransaction(context.Background(), steadyTx())

	// The terminal state suppresses every other contribution, including the
	// blacklist hit.
	assert.Equal(t, 100, res.RiskScore)
	assert.Equal(t, domain.RiskLevelCritical, res.RiskLevel)
	assert.Equal(t, domain.ActionDecline, res.RecommendedAction)
	assert.Equal(t, []string{"User account not found"}, res.FlaggedReasons)

	store.wait(t)
}

func TestAnalyzeTransaction_CollaboratorFailureFailsSafe(t *testing.T) {
	history := new(mockHistoryRepo)
	profiles := new(mockProfileRepo)
	blacklist := new(mockBlacklistRepo)
	store := newCaptureStore()

	history.On("FetchRecent", mock.Anything, "user-1", 60).Return(nil, errors.ErrHistoryUnavailable)
	profiles.On("FetchAccountProfile", mock.Anything, "user-1").Return(activeProfile(), nil)
	blacklist.On("IsAccountBlacklisted", mock.Anything, "0123456789").Return(false, nil)

	o := newTestOrchestrator(history, profiles, blacklist, store)
	res := o.AnalyzeTransaction(context.Background(), steadyTx())

	assert.Equal(t, FailSafeAssessment(), res)

	// A fail-safe decision is not audited.
	select {
	case r := <-store.records:
		t.Fatalf("unexpected audit record: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAnalyzeTransaction_InvalidContextFailsSafe(t *testing.T) {
	o := newTestOrchestrator(new(mockHistoryRepo), new(mockProfileRepo), new(mockBlacklistRepo), newCaptureStore())

	tx := steadyTx()
	tx.UserID = ""
	res := o.AnalyzeTransaction(context.Background(), tx)

	assert.Equal(t, FailSafeAssessment(), res)
}

func TestAnalyzeTransaction_IsDeterministic(t *testing.T) {
	history := new(mockHistoryRepo)
	profiles := new(mockProfileRepo)
	blacklist := new(mockBlacklistRepo)
	store := newCaptureStore()

	history.On("FetchRecent", mock.Anything, "user-1", 60).Return(steadyHistory(), nil)
	profiles.On("FetchAccountProfile", mock.Anything, "user-1").Return(activeProfile(), nil)
	blacklist.On("IsAccountBlacklisted", mock.Anything, "0123456789").Return(false, nil)

	o := newTestOrchestrator(history, profiles, blacklist, store)
	first := o.AnalyzeTransaction(context.Background(), steadyTx())
	second := o.AnalyzeTransaction(context.Background(), steadyTx())

	assert.Equal(t, first, second)
}

func TestAnalyzeTransaction_AppendsDistinctAuditRecords(t *testing.T) {
	history := new(mockHistoryRepo)
	profiles := new(mockProfileRepo)
	blacklist := new(mockBlacklistRepo)
	store := newCaptureStore()

	history.On("FetchRecent", mock.Anything, "user-1", 60).Return(steadyHistory(), nil)
	profiles.On("FetchAccountProfile", mock.Anything, "user-1").Return(activeProfile(), nil)
	blacklist.On("IsAccountBlacklisted", mock.Anything, "0123456789").Return(false, nil)

	o := newTestOrchestrator(history, profiles, blacklist, store)
	o.AnalyzeTransaction(context.Background(), steadyTx())
	o.AnalyzeTransaction(context.Background(), steadyTx())

	first := store.wait(t)
	second := store.wait(t)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Assessment, second.Assessment)
	assert.Equal(t, "user-1", first.UserID)
	assert.Equal(t, "acct-1", first.AccountID)
	assert.Equal(t, assessTime, first.AssessedAt)
}
