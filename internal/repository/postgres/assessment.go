package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"riskd/internal/domain"
	"riskd/pkg/errors"
)

// AssessmentStore persists risk decisions for audit. Records are written
// once and never updated.
type AssessmentStore struct {
	db *sqlx.DB
}

func NewAssessmentStore(db *sqlx.DB) *AssessmentStore {
	return &AssessmentStore{db: db}
}

// Append inserts one audit record. Reasons, verification steps and the full
// transaction context are stored as JSONB alongside the scalar decision
// columns used for reporting queries.
func (s *AssessmentStore) Append(ctx context.Context, record *domain.AssessmentRecord) error {
	reasons, err := json.Marshal(record.Assessment.FlaggedReasons)
	if err != nil {
		return errors.Wrap(err, "failed to encode flagged reasons")
	}
	verification, err := json.Marshal(record.Assessment.AdditionalVerification)
	if err != nil {
		return errors.Wrap(err, "failed to encode verification steps")
	}
	txContext, err := json.Marshal(record.Context)
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction context")
	}

	query := `
		INSERT INTO risk_assessments (
			id, user_id, account_id, risk_score, risk_level,
			flagged_reasons, recommended_action, additional_verification,
			transaction_context, assessed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.AccountID,
		record.Assessment.RiskScore, string(record.Assessment.RiskLevel),
		reasons, string(record.Assessment.RecommendedAction), verification,
		txContext, record.AssessedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to append risk assessment")
	}
	return nil
}
