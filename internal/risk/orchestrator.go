// Package risk implements the transaction risk orchestrator: it fetches the
// data snapshot, fans out the assessors, aggregates score and reasons,
// classifies the result and records it for audit.
package risk

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"riskd/internal/assessor"
	"riskd/internal/domain"
	"riskd/internal/repository"
	"riskd/pkg/config"
	"riskd/pkg/errors"
	"riskd/pkg/logger"
	"riskd/pkg/validator"
)

// reasonSystemError is the single reason carried by the fail-safe decision.
const reasonSystemError = "System error during fraud analysis"

// Orchestrator runs the full assessment pipeline for one transaction. It is
// stateless across calls; concurrent invocations share no mutable state.
type Orchestrator struct {
	history   repository.HistoryRepository
	profiles  repository.ProfileRepository
	blacklist repository.BlacklistRepository
	store     repository.AssessmentStore
	assessors []assessor.Assessor
	scorer    assessor.Scorer
	validate  *validator.Validator
	cfg       config.RiskConfig
	log       logger.Logger
	now       func() time.Time
}

func NewOrchestrator(
	history repository.HistoryRepository,
	profiles repository.ProfileRepository,
	blacklist repository.BlacklistRepository,
	store repository.AssessmentStore,
	cfg config.RiskConfig,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		history:   history,
		profiles:  profiles,
		blacklist: blacklist,
		store:     store,
		assessors: assessor.Defaults(cfg),
		scorer:    assessor.NewHeuristic(),
		validate:  validator.New(),
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithScorer substitutes the model-shaped scorer, e.g. with a trained fraud
// model. The aggregation contract is unchanged.
func (o *Orchestrator) WithScorer(s assessor.Scorer) *Orchestrator {
	o.scorer = s
	return o
}

// FailSafeAssessment is the decision returned whenever the pipeline cannot
// complete: fail toward caution, never toward silent approval, and leak no
// partial reasons.
func FailSafeAssessment() domain.RiskAssessment {
	return domain.RiskAssessment{
		RiskScore:              75,
		RiskLevel:              domain.RiskLevelHigh,
		FlaggedReasons:         []string{reasonSystemError},
		RecommendedAction:      domain.ActionReview,
		AdditionalVerification: []domain.VerificationStep{},
	}
}

// AnalyzeTransaction assesses one transaction and returns an actionable
// decision. It never returns an error: collaborator failures produce the
// fail-safe decision, and the audit write is fire-and-forget.
func (o *Orchestrator) AnalyzeTransaction(ctx context.Context, tx domain.TransactionContext) domain.RiskAssessment {
	if err := o.validate.Validate(tx); err != nil {
		o.log.Warn("invalid transaction context, failing safe", map[string]interface{}{
			"user_id": tx.UserID,
			"error":   err.Error(),
		})
		return FailSafeAssessment()
	}

	snap, err := o.fetchSnapshot(ctx, tx)
	if err != nil {
		o.log.Error("collaborator fetch failed, failing safe", map[string]interface{}{
			"user_id": tx.UserID,
			"error":   err.Error(),
		})
		return FailSafeAssessment()
	}

	results := o.runAssessors(tx, snap)
	assessment := aggregate(results)

	o.persist(tx, assessment, snap.AsOf)

	return assessment
}

// fetchSnapshot performs the three independent collaborator reads
// concurrently and assembles the immutable snapshot the assessors run over.
// A missing profile is not an error: it becomes a nil Profile, which the
// account assessor reports as a terminal maximal-risk state.
func (o *Orchestrator) fetchSnapshot(ctx context.Context, tx domain.TransactionContext) (domain.HistorySnapshot, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	defer cancel()

	// The device assessor looks further back than the default history
	// window, so fetch the wider of the two and let each assessor filter
	// by its own window.
	windowDays := o.cfg.HistoryWindowDays
	if o.cfg.DeviceWindowDays > windowDays {
		windowDays = o.cfg.DeviceWindowDays
	}

	var (
		wg                                   sync.WaitGroup
		records                              []domain.TransactionRecord
		profile                              *domain.AccountProfile
		hits                                 domain.BlacklistHits
		historyErr, profileErr, blacklistErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		records, historyErr = o.history.FetchRecent(fetchCtx, tx.UserID, windowDays)
	}()
	go func() {
		defer wg.Done()
		profile, profileErr = o.profiles.FetchAccountProfile(fetchCtx, tx.UserID)
		if errors.Is(profileErr, errors.ErrAccountNotFound) {
			profile, profileErr = nil, nil
		}
	}()
	go func() {
		defer wg.Done()
		if tx.RecipientAccount != "" {
			hits.RecipientAccount, blacklistErr = o.blacklist.IsAccountBlacklisted(fetchCtx, tx.RecipientAccount)
		}
		if blacklistErr == nil && tx.IPAddress != "" {
			hits.IPAddress, blacklistErr = o.blacklist.IsIPBlacklisted(fetchCtx, tx.IPAddress)
		}
	}()
	wg.Wait()

	for _, err := range []error{historyErr, profileErr, blacklistErr} {
		if err != nil {
			return domain.HistorySnapshot{}, err
		}
	}

	return domain.HistorySnapshot{
		UserID:       tx.UserID,
		AsOf:         o.now(),
		WindowDays:   windowDays,
		Transactions: records,
		Profile:      profile,
		Blacklist:    hits,
	}, nil
}

// runAssessors evaluates all assessors in parallel over the same snapshot.
// Each result lands in its assessor's fixed slot, so the reasons come back
// in evaluation order regardless of goroutine completion order.
func (o *Orchestrator) runAssessors(tx domain.TransactionContext, snap domain.HistorySnapshot) []assessor.Result {
	all := make([]assessor.Assessor, 0, len(o.assessors)+1)
	all = append(all, o.assessors...)
	all = append(all, o.scorer)

	results := make([]assessor.Result, len(all))
	var wg sync.WaitGroup
	wg.Add(len(all))
	for i, a := range all {
		go func(i int, a assessor.Assessor) {
			defer wg.Done()
			results[i] = a.Assess(tx, snap)
		}(i, a)
	}
	wg.Wait()

	return results
}

// aggregate sums contributions and concatenates reasons in assessor order.
// A terminal result short-circuits normal aggregation entirely.
func aggregate(results []assessor.Result) domain.RiskAssessment {
	for _, r := range results {
		if r.Terminal {
			return buildAssessment(r.Score, r.Reasons)
		}
	}

	rawScore := 0
	var reasons []string
	for _, r := range results {
		rawScore += r.Score
		reasons = append(reasons, r.Reasons...)
	}

	return buildAssessment(rawScore, reasons)
}

// persist appends the decision to the audit store, fire-and-forget: a write
// failure is logged and never changes or delays the returned assessment.
func (o *Orchestrator) persist(tx domain.TransactionContext, a domain.RiskAssessment, assessedAt time.Time) {
	record := &domain.AssessmentRecord{
		ID:         uuid.New(),
		UserID:     tx.UserID,
		AccountID:  tx.AccountID,
		Assessment: a,
		Context:    tx,
		AssessedAt: assessedAt,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.cfg.FetchTimeout)
		defer cancel()
		if err := o.store.Append(ctx, record); err != nil {
			o.log.Error("failed to persist risk assessment", map[string]interface{}{
				"user_id":       tx.UserID,
				"assessment_id": record.ID.String(),
				"error":         err.Error(),
			})
		}
	}()
}
