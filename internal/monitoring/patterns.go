// Package monitoring implements the lightweight real-time pattern monitor:
// a per-account sweep for rapid-fire or statistically anomalous activity,
// independent of any single transaction assessment.
package monitoring

import (
	"context"
	"math"
	"sync"
	"time"

	"riskd/internal/domain"
	"riskd/internal/repository"
	"riskd/pkg/config"
	"riskd/pkg/errors"
	"riskd/pkg/logger"
)

// Monitor runs the continuous pattern checks. Stateless; invoked on a
// polling or trigger basis per account.
type Monitor struct {
	history  repository.HistoryRepository
	profiles repository.ProfileRepository
	cfg      config.RiskConfig
	log      logger.Logger
	now      func() time.Time
}

func NewMonitor(
	history repository.HistoryRepository,
	profiles repository.ProfileRepository,
	cfg config.RiskConfig,
	log logger.Logger,
) *Monitor {
	return &Monitor{
		history:  history,
		profiles: profiles,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// FailSafeAlert is returned when the monitor cannot read its inputs.
func FailSafeAlert() domain.PatternAlert {
	return domain.PatternAlert{
		Alerts:    []string{"Monitoring system error"},
		RiskLevel: domain.PatternLevelMedium,
	}
}

// MonitorRealTimePatterns checks an account for rapid-fire bursts,
// statistically anomalous amounts and repeated failed logins. Each check
// raises the alert level independently; a MEDIUM never overrides a HIGH.
func (m *Monitor) MonitorRealTimePatterns(ctx context.Context, userID string) domain.PatternAlert {
	fetchCtx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
	defer cancel()

	var (
		wg                     sync.WaitGroup
		records                []domain.TransactionRecord
		profile                *domain.AccountProfile
		historyErr, profileErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		records, historyErr = m.history.FetchRecent(fetchCtx, userID, m.cfg.HistoryWindowDays)
	}()
	go func() {
		defer wg.Done()
		profile, profileErr = m.profiles.FetchAccountProfile(fetchCtx, userID)
		if errors.Is(profileErr, errors.ErrAccountNotFound) {
			profile, profileErr = nil, nil
		}
	}()
	wg.Wait()

	if historyErr != nil || profileErr != nil {
		m.log.Error("pattern monitor fetch failed, failing safe", map[string]interface{}{
			"user_id":     userID,
			"history_err": errString(historyErr),
			"profile_err": errString(profileErr),
		})
		return FailSafeAlert()
	}

	asOf := m.now()
	alerts := []string{}
	level := domain.PatternLevelLow

	// Rapid-fire burst in the trailing window.
	burstCutoff := asOf.Add(-m.cfg.BurstWindow)
	burst := 0
	for _, t := range records {
		if t.CreatedAt.After(burstCutoff) && !t.CreatedAt.After(asOf) {
			burst++
		}
	}
	if burst > m.cfg.BurstCount {
		alerts = append(alerts, "Rapid-fire transaction pattern detected")
		level = domain.PatternLevelHigh
	}

	// Any transaction in the last hour far above the trailing-window norm.
	if deviant := m.hasDeviantAmount(records, asOf); deviant {
		alerts = append(alerts, "Transaction amount far above normal pattern")
		if level != domain.PatternLevelHigh {
			level = domain.PatternLevelMedium
		}
	}

	// Repeated failed logins on the account.
	if profile != nil && profile.FailedLoginAttempts > 3 {
		alerts = append(alerts, "Multiple failed login attempts detected")
		level = domain.PatternLevelHigh
	}

	return domain.PatternAlert{
		Alerts:    alerts,
		RiskLevel: level,
	}
}

// hasDeviantAmount reports whether any transaction in the trailing hour
// exceeds mean + DeviationSigmas standard deviations of the window's
// amounts. Needs at least two data points for a meaningful deviation.
func (m *Monitor) hasDeviantAmount(records []domain.TransactionRecord, asOf time.Time) bool {
	if len(records) < 2 {
		return false
	}

	sum := 0.0
	for _, t := range records {
		sum += t.Amount.InexactFloat64()
	}
	mean := sum / float64(len(records))

	variance := 0.0
	for _, t := range records {
		d := t.Amount.InexactFloat64() - mean
		variance += d * d
	}
	variance /= float64(len(records))
	threshold := mean + m.cfg.DeviationSigmas*math.Sqrt(variance)

	hourAgo := asOf.Add(-time.Hour)
	for _, t := range records {
		if t.CreatedAt.After(hourAgo) && !t.CreatedAt.After(asOf) &&
			t.Amount.InexactFloat64() > threshold {
			return true
		}
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
