package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"riskd/internal/domain"
	"riskd/pkg/errors"
)

// HistoryRepository serves transaction history from Postgres.
type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

type transactionRow struct {
	ID                string          `db:"id"`
	UserID            string          `db:"user_id"`
	Amount            decimal.Decimal `db:"amount"`
	TransactionType   string          `db:"transaction_type"`
	RecipientAccount  sql.NullString  `db:"recipient_account"`
	Channel           string          `db:"channel"`
	DeviceFingerprint sql.NullString  `db:"device_fingerprint"`
	UserAgent         sql.NullString  `db:"user_agent"`
	IPAddress         sql.NullString  `db:"ip_address"`
	Latitude          sql.NullFloat64 `db:"latitude"`
	Longitude         sql.NullFloat64 `db:"longitude"`
	Country           sql.NullString  `db:"country"`
	CreatedAt         time.Time       `db:"created_at"`
}

// FetchRecent returns the user's transactions inside the trailing window,
// newest first.
func (r *HistoryRepository) FetchRecent(ctx context.Context, userID string, windowDays int) ([]domain.TransactionRecord, error) {
	var rows []transactionRow
	query := `
		SELECT id, user_id, amount, transaction_type, recipient_account,
		       channel, device_fingerprint, user_agent, ip_address,
		       latitude, longitude, country, created_at
		FROM transactions
		WHERE user_id = $1
		  AND created_at >= NOW() - ($2 * INTERVAL '1 day')
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, windowDays); err != nil {
		return nil, errors.Wrap(err, "failed to fetch transaction history")
	}

	records := make([]domain.TransactionRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toDomain()
	}
	return records, nil
}

func (row transactionRow) toDomain() domain.TransactionRecord {
	rec := domain.TransactionRecord{
		ID:                row.ID,
		UserID:            row.UserID,
		Amount:            row.Amount,
		TransactionType:   domain.TransactionType(row.TransactionType),
		RecipientAccount:  row.RecipientAccount.String,
		Channel:           domain.Channel(row.Channel),
		DeviceFingerprint: row.DeviceFingerprint.String,
		UserAgent:         row.UserAgent.String,
		IPAddress:         row.IPAddress.String,
		CreatedAt:         row.CreatedAt,
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		rec.Location = &domain.GeoPoint{
			Latitude:  row.Latitude.Float64,
			Longitude: row.Longitude.Float64,
			Country:   row.Country.String,
		}
	}
	return rec
}
