package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"riskd/internal/domain"
	"riskd/pkg/errors"
)

// ProfileRepository serves account profiles from Postgres.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	UserID              string    `db:"user_id"`
	KYCStatus           string    `db:"kyc_status"`
	AccountStatus       string    `db:"account_status"`
	AccountCreatedAt    time.Time `db:"account_created_at"`
	FailedLoginAttempts int       `db:"failed_login_attempts"`
}

// FetchAccountProfile returns the profile for a user, or ErrAccountNotFound
// when the account does not exist.
func (r *ProfileRepository) FetchAccountProfile(ctx context.Context, userID string) (*domain.AccountProfile, error) {
	var row profileRow
	query := `
		SELECT user_id, kyc_status, account_status, account_created_at, failed_login_attempts
		FROM account_profiles
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &row, query, userID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch account profile")
	}

	return &domain.AccountProfile{
		UserID:              row.UserID,
		KYCStatus:           domain.KYCStatus(row.KYCStatus),
		AccountStatus:       domain.AccountStatus(row.AccountStatus),
		AccountCreatedAt:    row.AccountCreatedAt,
		FailedLoginAttempts: row.FailedLoginAttempts,
	}, nil
}
