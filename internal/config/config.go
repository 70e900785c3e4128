// Package config loads service configuration from the environment.
// A .env file in the working directory is honoured when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds every runtime setting of the service.
type Config struct {
	Port         string
	Env          string
	JWTSecret    string
	CORSOrigins  string
	DB           DBConfig
	Cache        CacheConfig
	Scoring      ScoringConfig
	Log          LogConfig
	RateLimit    RateLimitConfig
	ReviewWorker int
}

// RateLimitConfig bounds calls to the scoring endpoints per caller.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// DBConfig holds the PostgreSQL connection and pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// CacheConfig selects and configures the claim cache.
type CacheConfig struct {
	Driver        string // "redis" or "memory"
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// ScoringConfig points the assessment engine at its tuning data.
type ScoringConfig struct {
	ProfilesPath   string
	TimeZone       string
	SettlementSeed uint64
	SeedSet        bool
}

// LogConfig controls the global zap logger.
type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found", zap.Error(err))
	}
}

// Load reads the environment into a Config, applying defaults.
func Load() Config {
	seed, seedErr := strconv.ParseUint(GetEnv("SETTLEMENT_SEED", ""), 10, 64)

	return Config{
		Port:         GetEnv("PORT", "3000"),
		Env:          GetEnv("ENV", "development"),
		JWTSecret:    GetEnv("JWT_SECRET", "insuro"),
		CORSOrigins:  GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		ReviewWorker: GetIntEnv("FRAUD_REVIEW_CONCURRENCY", 4),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "insuro"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Cache: CacheConfig{
			Driver:        strings.ToLower(GetEnv("CACHE_DRIVER", "redis")),
			RedisHost:     GetEnv("REDIS_HOST", "localhost"),
			RedisPort:     GetEnv("REDIS_PORT", "6379"),
			RedisPassword: GetEnv("REDIS_PASSWORD", ""),
			RedisDB:       GetIntEnv("REDIS_DB", 0),
			TTL:           GetDurationEnv("CACHE_TTL", 10*time.Minute),
		},
		Scoring: ScoringConfig{
			ProfilesPath:   GetEnv("SCORING_PROFILES_PATH", ""),
			TimeZone:       GetEnv("SCORING_TIMEZONE", "Local"),
			SettlementSeed: seed,
			SeedSet:        seedErr == nil,
		},
		RateLimit: RateLimitConfig{
			Max:    GetIntEnv("ASSESS_RATE_LIMIT", 30),
			Window: GetDurationEnv("ASSESS_RATE_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "json"),
		},
	}
}

// DSN builds the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

// Location resolves the configured scoring time zone.
func (c ScoringConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		zap.L().Warn("invalid duration, using default",
			zap.String("key", key),
			zap.Duration("default", defaultVal),
		)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
