// Package takeover implements account-takeover detection for login events.
package takeover

import (
	"context"
	"time"

	"riskd/internal/domain"
	"riskd/internal/geo"
	"riskd/internal/repository"
	"riskd/pkg/config"
	"riskd/pkg/logger"
)

// suspiciousThreshold marks a login suspicious once its accumulated score
// reaches it. Unlike transaction assessments the score is not capped.
const suspiciousThreshold = 40

// Detector analyzes a login event against the account's recent login
// history. Stateless; safe for concurrent use.
type Detector struct {
	logins repository.LoginHistoryRepository
	cfg    config.RiskConfig
	log    logger.Logger
	now    func() time.Time
}

func NewDetector(logins repository.LoginHistoryRepository, cfg config.RiskConfig, log logger.Logger) *Detector {
	return &Detector{
		logins: logins,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// FailSafeAssessment is returned when login history cannot be read: treat
// the login as suspicious and demand a second factor.
func FailSafeAssessment() domain.TakeoverAssessment {
	return domain.TakeoverAssessment{
		RiskScore:         50,
		RiskFactors:       []string{"Error in security analysis"},
		IsSuspicious:      true,
		RecommendedAction: domain.TakeoverRequire2FA,
	}
}

// DetectAccountTakeover scores a login event. It never returns an error;
// collaborator failures yield the fail-safe assessment.
func (d *Detector) DetectAccountTakeover(ctx context.Context, userID string, login domain.LoginContext) domain.TakeoverAssessment {
	fetchCtx, cancel := context.WithTimeout(ctx, d.cfg.FetchTimeout)
	defer cancel()

	history, err := d.logins.FetchRecentLogins(fetchCtx, userID, d.cfg.LoginHistoryLimit, d.cfg.LoginWindowDays)
	if err != nil {
		d.log.Error("login history fetch failed, failing safe", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return FailSafeAssessment()
	}

	eventTime := login.Timestamp
	if eventTime.IsZero() {
		eventTime = d.now()
	}

	knownIPs := make(map[string]bool)
	knownUserAgents := make(map[string]bool)
	var knownLocations []domain.GeoPoint
	for _, rec := range history {
		if rec.IPAddress != "" {
			knownIPs[rec.IPAddress] = true
		}
		if rec.UserAgent != "" {
			knownUserAgents[rec.UserAgent] = true
		}
		if rec.Location != nil {
			knownLocations = append(knownLocations, *rec.Location)
		}
	}

	score := 0
	factors := []string{}

	if len(knownIPs) > 0 && !knownIPs[login.IPAddress] {
		score += 30
		factors = append(factors, "Login from new IP address")
	}

	if len(knownUserAgents) > 0 && !knownUserAgents[login.UserAgent] {
		score += 25
		factors = append(factors, "Login from new device or browser")
	}

	// Location checks form a ladder: impossible travel from the last known
	// location outranks and subsumes the plain unusual-location signal, so
	// only one of the two fires.
	if login.Location != nil && len(knownLocations) > 0 {
		var lastSeen *domain.LoginRecord
		for i := range history {
			if history[i].Location != nil {
				lastSeen = &history[i]
				break
			}
		}

		impossible := false
		if lastSeen != nil {
			elapsed := eventTime.Sub(lastSeen.CreatedAt)
			impossible = geo.ImpossibleTravel(*lastSeen.Location, *login.Location, elapsed, d.cfg.ImpossibleTravelKMH)
		}

		similar := false
		for _, k := range knownLocations {
			if geo.Similar(*login.Location, k) {
				similar = true
				break
			}
		}

		switch {
		case impossible:
			score += 50
			factors = append(factors, "Impossible travel detected")
		case !similar:
			score += 40
			factors = append(factors, "Login from unusual location")
		}
	}

	// History is ordered newest first; index 0 is the last login.
	if len(history) > 0 && eventTime.Sub(history[0].CreatedAt) > d.cfg.DormantLoginAfter {
		score += 15
		factors = append(factors, "Long period since last login")
	}

	return domain.TakeoverAssessment{
		RiskScore:         score,
		RiskFactors:       factors,
		IsSuspicious:      score >= suspiciousThreshold,
		RecommendedAction: recommendAction(score),
	}
}

func recommendAction(score int) domain.TakeoverAction {
	switch {
	case score >= 70:
		return domain.TakeoverBlockAccount
	case score >= 50:
		return domain.TakeoverRequire2FA
	case score >= 30:
		return domain.TakeoverRequireEmailCheck
	default:
		return domain.TakeoverAllow
	}
}
