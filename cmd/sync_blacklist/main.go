// Syncs the authoritative Postgres blacklists into the Redis sets served on
// the assessment hot path.
package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"riskd/internal/repository/postgres"
	"riskd/internal/repository/rediscache"
	"riskd/pkg/cache"
	"riskd/pkg/config"
	"riskd/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("blacklist-sync")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redisCache.Close()

	source := postgres.NewBlacklistRepository(db)
	target := rediscache.NewBlacklistRepository(redisCache.Client())

	ctx := context.Background()

	accounts, err := source.ListActiveAccounts(ctx)
	if err != nil {
		log.Fatal("Failed to list blacklisted accounts", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, account := range accounts {
		if err := target.BlacklistAccount(ctx, account); err != nil {
			log.Fatal("Failed to sync account", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	ips, err := source.ListActiveIPs(ctx)
	if err != nil {
		log.Fatal("Failed to list blacklisted IPs", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, ip := range ips {
		if err := target.BlacklistIP(ctx, ip); err != nil {
			log.Fatal("Failed to sync IP", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	log.Info("Blacklists synced", map[string]interface{}{
		"accounts": len(accounts),
		"ips":      len(ips),
	})
}
