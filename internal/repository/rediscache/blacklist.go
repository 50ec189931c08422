// Package rediscache provides Redis-backed collaborator implementations for
// the hot-path lookups.
package rediscache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"riskd/pkg/errors"
)

const (
	accountSetKey = "blacklist:accounts"
	ipSetKey      = "blacklist:ips"
)

// BlacklistRepository answers blacklist membership from Redis sets, keeping
// the per-assessment lookups off the primary database.
type BlacklistRepository struct {
	client *redis.Client
}

func NewBlacklistRepository(client *redis.Client) *BlacklistRepository {
	return &BlacklistRepository{client: client}
}

func (r *BlacklistRepository) IsAccountBlacklisted(ctx context.Context, account string) (bool, error) {
	listed, err := r.client.SIsMember(ctx, accountSetKey, account).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check account blacklist")
	}
	return listed, nil
}

func (r *BlacklistRepository) IsIPBlacklisted(ctx context.Context, ip string) (bool, error) {
	listed, err := r.client.SIsMember(ctx, ipSetKey, ip).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check ip blacklist")
	}
	return listed, nil
}

// BlacklistAccount adds an account to the blacklist set. Used by the tooling
// that syncs the authoritative list into Redis.
func (r *BlacklistRepository) BlacklistAccount(ctx context.Context, account string) error {
	return errors.Wrap(r.client.SAdd(ctx, accountSetKey, account).Err(), "failed to blacklist account")
}

// BlacklistIP adds an IP to the blacklist set.
func (r *BlacklistRepository) BlacklistIP(ctx context.Context, ip string) error {
	return errors.Wrap(r.client.SAdd(ctx, ipSetKey, ip).Err(), "failed to blacklist ip")
}
