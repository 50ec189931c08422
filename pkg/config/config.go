// Package config loads engine configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Risk     RiskConfig
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// RiskConfig carries every tunable threshold of the decision engine.
// Defaults mirror production values for the NGN ledger.
type RiskConfig struct {
	// Windows
	HistoryWindowDays int           // trailing transaction window fetched per assessment
	DeviceWindowDays  int           // fingerprint/user-agent recency window
	LoginWindowDays   int           // login history window for takeover analysis
	LoginHistoryLimit int           // max login records considered
	FetchTimeout      time.Duration // per-call budget for collaborator reads

	// Amount thresholds (NGN)
	VeryLargeAmount    int64   // absolute flag threshold
	AverageMultiplier  float64 // flag when amount exceeds this multiple of the user average
	MaximumMultiplier  float64 // flag when amount exceeds this multiple of the user maximum
	RoundAmountMinimum int64   // round-number rule applies at or above this

	// Velocity thresholds
	HourlyCountHigh     int   // hard hourly ceiling
	HourlyCountElevated int   // soft hourly ceiling
	DailyCountHigh      int   // 24h ceiling
	HourlyAmountHigh    int64 // monetary velocity ceiling (NGN, trailing hour)

	// Location
	KnownLocationLimit int      // most recent locations compared against
	HighRiskCountries  []string // ISO country codes treated as high risk

	// Takeover
	ImpossibleTravelKMH float64       // implied speed above which travel is impossible
	DormantLoginAfter   time.Duration // long-absence threshold

	// Pattern monitoring
	BurstWindow     time.Duration // rapid-fire detection window
	BurstCount      int           // transactions within BurstWindow that trip the alert
	DeviationSigmas float64       // standard deviations above mean that trip the alert
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      normalizeRedisURL(getEnv("REDIS_URL", "localhost:6379")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Risk: LoadRisk(),
	}
}

// LoadRisk loads only the risk thresholds. Library consumers that bring their
// own storage wire this directly into the engine.
func LoadRisk() RiskConfig {
	return RiskConfig{
		HistoryWindowDays: getIntEnv("RISK_HISTORY_WINDOW_DAYS", 30),
		DeviceWindowDays:  getIntEnv("RISK_DEVICE_WINDOW_DAYS", 60),
		LoginWindowDays:   getIntEnv("RISK_LOGIN_WINDOW_DAYS", 30),
		LoginHistoryLimit: getIntEnv("RISK_LOGIN_HISTORY_LIMIT", 10),
		FetchTimeout:      getDurationEnv("RISK_FETCH_TIMEOUT", 3*time.Second),

		VeryLargeAmount:    getInt64Env("RISK_VERY_LARGE_AMOUNT", 1_000_000),
		AverageMultiplier:  getFloatEnv("RISK_AVERAGE_MULTIPLIER", 5),
		MaximumMultiplier:  getFloatEnv("RISK_MAXIMUM_MULTIPLIER", 1.5),
		RoundAmountMinimum: getInt64Env("RISK_ROUND_AMOUNT_MINIMUM", 10_000),

		HourlyCountHigh:     getIntEnv("RISK_HOURLY_COUNT_HIGH", 10),
		HourlyCountElevated: getIntEnv("RISK_HOURLY_COUNT_ELEVATED", 5),
		DailyCountHigh:      getIntEnv("RISK_DAILY_COUNT_HIGH", 50),
		HourlyAmountHigh:    getInt64Env("RISK_HOURLY_AMOUNT_HIGH", 5_000_000),

		KnownLocationLimit: getIntEnv("RISK_KNOWN_LOCATION_LIMIT", 20),
		HighRiskCountries:  getSliceEnv("RISK_HIGH_RISK_COUNTRIES", []string{"KP", "IR", "SY", "CU"}),

		ImpossibleTravelKMH: getFloatEnv("RISK_IMPOSSIBLE_TRAVEL_KMH", 1000),
		DormantLoginAfter:   getDurationEnv("RISK_DORMANT_LOGIN_AFTER", 7*24*time.Hour),

		BurstWindow:     getDurationEnv("RISK_BURST_WINDOW", 5*time.Minute),
		BurstCount:      getIntEnv("RISK_BURST_COUNT", 5),
		DeviationSigmas: getFloatEnv("RISK_DEVIATION_SIGMAS", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
