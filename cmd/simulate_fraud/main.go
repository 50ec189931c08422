// Fraud engine simulation: seeds in-memory collaborators with representative
// account activity, then runs transaction analysis, takeover detection and
// pattern monitoring across a set of scenarios and logs every decision.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"riskd/internal/domain"
	"riskd/internal/monitoring"
	"riskd/internal/repository/memory"
	"riskd/internal/risk"
	"riskd/internal/takeover"
	"riskd/pkg/config"
	"riskd/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadRisk()
	log := logger.New("fraud-simulator")

	store := memory.NewStore()
	seed(store)

	orchestrator := risk.NewOrchestrator(store, store, store, store, cfg, log)
	detector := takeover.NewDetector(store, cfg, log)
	monitor := monitoring.NewMonitor(store, store, cfg, log)

	ctx := context.Background()
	now := time.Now()

	scenarios := []struct {
		name string
		tx   domain.TransactionContext
	}{
		{
			name: "routine transfer",
			tx: domain.TransactionContext{
				UserID:            "user-steady",
				AccountID:         "acct-steady",
				Amount:            decimal.NewFromInt(15_500),
				TransactionType:   domain.TransactionTypeTransfer,
				RecipientAccount:  "0123456789",
				Channel:           domain.ChannelMobile,
				DeviceFingerprint: "fp-steady-1",
				UserAgent:         "RiskdApp/2.4 (Android 14)",
				IPAddress:         "105.112.33.7",
				Timestamp:         now,
			},
		},
		{
			name: "very large round transfer",
			tx: domain.TransactionContext{
				UserID:            "user-steady",
				AccountID:         "acct-steady",
				Amount:            decimal.NewFromInt(2_000_000),
				TransactionType:   domain.TransactionTypeTransfer,
				RecipientAccount:  "0123456789",
				Channel:           domain.ChannelMobile,
				DeviceFingerprint: "fp-steady-1",
				UserAgent:         "RiskdApp/2.4 (Android 14)",
				IPAddress:         "105.112.33.7",
				Timestamp:         now,
			},
		},
		{
			name: "transfer to blacklisted recipient",
			tx: domain.TransactionContext{
				UserID:           "user-steady",
				AccountID:        "acct-steady",
				Amount:           decimal.NewFromInt(45_000),
				TransactionType:  domain.TransactionTypeTransfer,
				RecipientAccount: "9999999999",
				Channel:          domain.ChannelMobile,
				IPAddress:        "105.112.33.7",
				Timestamp:        now,
			},
		},
		{
			name: "transaction for unknown account",
			tx: domain.TransactionContext{
				UserID:          "user-ghost",
				AccountID:       "acct-ghost",
				Amount:          decimal.NewFromInt(5_000),
				TransactionType: domain.TransactionTypeTransfer,
				Channel:         domain.ChannelWeb,
				Timestamp:       now,
			},
		},
	}

	for _, sc := range scenarios {
		assessment := orchestrator.AnalyzeTransaction(ctx, sc.tx)
		log.Info("transaction assessed", map[string]interface{}{
			"scenario": sc.name,
			"score":    assessment.RiskScore,
			"level":    assessment.RiskLevel,
			"action":   assessment.RecommendedAction,
			"reasons":  assessment.FlaggedReasons,
		})
	}

	login := domain.LoginContext{
		IPAddress: "203.0.113.50",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0)",
		Location:  &domain.GeoPoint{Latitude: 51.5074, Longitude: -0.1278, Country: "GB"},
		Timestamp: now,
	}
	takeoverResult := detector.DetectAccountTakeover(ctx, "user-steady", login)
	log.Info("login assessed", map[string]interface{}{
		"score":      takeoverResult.RiskScore,
		"suspicious": takeoverResult.IsSuspicious,
		"action":     takeoverResult.RecommendedAction,
		"factors":    takeoverResult.RiskFactors,
	})

	alert := monitor.MonitorRealTimePatterns(ctx, "user-burst")
	log.Info("patterns monitored", map[string]interface{}{
		"user_id": "user-burst",
		"level":   alert.RiskLevel,
		"alerts":  alert.Alerts,
	})

	// Audit writes are fire-and-forget; give them a moment before reading
	// the trail back.
	time.Sleep(200 * time.Millisecond)
	for _, rec := range store.Assessments() {
		log.Info("audit record", map[string]interface{}{
			"assessment_id": rec.ID.String(),
			"user_id":       rec.UserID,
			"score":         rec.Assessment.RiskScore,
			"action":        rec.Assessment.RecommendedAction,
		})
	}
}

// seed populates a steady account with 30 days of routine Lagos activity,
// a burst account for pattern monitoring, and the blacklists.
func seed(store *memory.Store) {
	now := time.Now()
	lagos := domain.GeoPoint{Latitude: 6.5244, Longitude: 3.3792, Country: "NG"}

	store.SetProfile(domain.AccountProfile{
		UserID:           "user-steady",
		KYCStatus:        domain.KYCStatusVerified,
		AccountStatus:    domain.AccountStatusActive,
		AccountCreatedAt: now.Add(-400 * 24 * time.Hour),
	})
	for day := 1; day <= 30; day++ {
		loc := lagos
		store.AddTransaction(domain.TransactionRecord{
			ID:                fmt.Sprintf("tx-steady-%d", day),
			UserID:            "user-steady",
			Amount:            decimal.NewFromInt(int64(8_000 + day*250)),
			TransactionType:   domain.TransactionTypeTransfer,
			RecipientAccount:  "0123456789",
			Channel:           domain.ChannelMobile,
			DeviceFingerprint: "fp-steady-1",
			UserAgent:         "RiskdApp/2.4 (Android 14)",
			IPAddress:         "105.112.33.7",
			Location:          &loc,
			CreatedAt:         now.Add(-time.Duration(day) * 24 * time.Hour).Add(13 * time.Hour),
		})
	}
	store.AddLogin(domain.LoginRecord{
		UserID:    "user-steady",
		IPAddress: "105.112.33.7",
		UserAgent: "RiskdApp/2.4 (Android 14)",
		Location:  &lagos,
		CreatedAt: now.Add(-2 * time.Hour),
	})

	store.SetProfile(domain.AccountProfile{
		UserID:           "user-burst",
		KYCStatus:        domain.KYCStatusVerified,
		AccountStatus:    domain.AccountStatusActive,
		AccountCreatedAt: now.Add(-90 * 24 * time.Hour),
	})
	for i := 0; i < 8; i++ {
		store.AddTransaction(domain.TransactionRecord{
			ID:              fmt.Sprintf("tx-burst-%d", i),
			UserID:          "user-burst",
			Amount:          decimal.NewFromInt(20_000),
			TransactionType: domain.TransactionTypeTransfer,
			Channel:         domain.ChannelAPI,
			CreatedAt:       now.Add(-time.Duration(i*30) * time.Second),
		})
	}

	store.BlacklistAccount("9999999999")
	store.BlacklistIP("198.51.100.13")
}
