package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"riskd/internal/domain"
	"riskd/pkg/errors"
)

// LoginHistoryRepository serves login events from Postgres.
type LoginHistoryRepository struct {
	db *sqlx.DB
}

func NewLoginHistoryRepository(db *sqlx.DB) *LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

type loginRow struct {
	UserID    string          `db:"user_id"`
	IPAddress string          `db:"ip_address"`
	UserAgent string          `db:"user_agent"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
	Country   sql.NullString  `db:"country"`
	CreatedAt time.Time       `db:"created_at"`
}

// FetchRecentLogins returns up to limit login events inside the trailing
// window, newest first.
func (r *LoginHistoryRepository) FetchRecentLogins(ctx context.Context, userID string, limit, windowDays int) ([]domain.LoginRecord, error) {
	var rows []loginRow
	query := `
		SELECT user_id, ip_address, user_agent, latitude, longitude, country, created_at
		FROM login_events
		WHERE user_id = $1
		  AND created_at >= NOW() - ($2 * INTERVAL '1 day')
		ORDER BY created_at DESC
		LIMIT $3
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, windowDays, limit); err != nil {
		return nil, errors.Wrap(err, "failed to fetch login history")
	}

	records := make([]domain.LoginRecord, len(rows))
	for i, row := range rows {
		rec := domain.LoginRecord{
			UserID:    row.UserID,
			IPAddress: row.IPAddress,
			UserAgent: row.UserAgent,
			CreatedAt: row.CreatedAt,
		}
		if row.Latitude.Valid && row.Longitude.Valid {
			rec.Location = &domain.GeoPoint{
				Latitude:  row.Latitude.Float64,
				Longitude: row.Longitude.Float64,
				Country:   row.Country.String,
			}
		}
		records[i] = rec
	}
	return records, nil
}
