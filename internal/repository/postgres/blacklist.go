package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"riskd/pkg/errors"
)

// BlacklistRepository answers blacklist membership from Postgres. Production
// deployments typically front this with the Redis implementation and fall
// back here on cache misses.
type BlacklistRepository struct {
	db *sqlx.DB
}

func NewBlacklistRepository(db *sqlx.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

func (r *BlacklistRepository) IsAccountBlacklisted(ctx context.Context, account string) (bool, error) {
	var listed bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blacklist_accounts
			WHERE account_number = $1 AND is_active = true
		)
	`
	if err := r.db.GetContext(ctx, &listed, query, account); err != nil {
		return false, errors.Wrap(err, "failed to check account blacklist")
	}
	return listed, nil
}

// ListActiveAccounts returns every active blacklisted account number. Used
// by the tooling that syncs the authoritative list into Redis.
func (r *BlacklistRepository) ListActiveAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	query := `SELECT account_number FROM blacklist_accounts WHERE is_active = true`
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, errors.Wrap(err, "failed to list blacklisted accounts")
	}
	return accounts, nil
}

// ListActiveIPs returns every active blacklisted IP address.
func (r *BlacklistRepository) ListActiveIPs(ctx context.Context) ([]string, error) {
	var ips []string
	query := `SELECT ip_address FROM blacklist_ips WHERE is_active = true`
	if err := r.db.SelectContext(ctx, &ips, query); err != nil {
		return nil, errors.Wrap(err, "failed to list blacklisted ips")
	}
	return ips, nil
}

func (r *BlacklistRepository) IsIPBlacklisted(ctx context.Context, ip string) (bool, error) {
	var listed bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blacklist_ips
			WHERE ip_address = $1 AND is_active = true
		)
	`
	if err := r.db.GetContext(ctx, &listed, query, ip); err != nil {
		return false, errors.Wrap(err, "failed to check ip blacklist")
	}
	return listed, nil
}
