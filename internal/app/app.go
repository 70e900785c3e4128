// Package app wires the store, cache, scoring engine and services from a
// Config. The HTTP server and the operator CLI share it.
package app

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"insuro/internal/config"
	"insuro/internal/repositories"
	"insuro/internal/repositories/cache"
	"insuro/internal/services/assessment"
	"insuro/internal/services/claims"
	"insuro/internal/services/notification"
	"insuro/internal/services/review"
	"insuro/internal/services/scoring"
	"insuro/internal/services/stats"
	"insuro/internal/validation"
)

// App holds every long-lived dependency.
type App struct {
	DB         *gorm.DB
	Cache      cache.Store
	Claims     repositories.ClaimRepository
	Engine     *scoring.Engine
	Assessment *assessment.Service
	Intake     *claims.Service
	Review     *review.Service
	Stats      stats.Service
}

// New connects to the store and cache and builds the services.
func New(cfg config.Config) (*App, error) {
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return nil, err
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		return nil, err
	}

	store, err := cache.New(cache.Config{
		Driver: cfg.Cache.Driver,
		TTL:    cfg.Cache.TTL,
		Redis: cache.RedisConfig{
			Host:     cfg.Cache.RedisHost,
			Port:     cfg.Cache.RedisPort,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		},
	})
	if err != nil {
		_ = repositories.Close(db)
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		zap.L().Warn("cache unavailable, continuing without it", zap.String("driver", cfg.Cache.Driver), zap.Error(err))
	}

	repo := repositories.NewCachedClaimRepository(repositories.NewClaimRepository(db), store)
	v := validation.New()
	notifier := notification.NewService(nil)
	assessSvc := assessment.NewService(repo, engine, notifier, v)

	return &App{
		DB:         db,
		Cache:      store,
		Claims:     repo,
		Engine:     engine,
		Assessment: assessSvc,
		Intake:     claims.NewService(repo, assessSvc, notifier, v),
		Review:     review.NewService(repo, engine, notifier, v, cfg.ReviewWorker),
		Stats:      stats.NewService(repo),
	}, nil
}

// NewEngine loads the scoring profiles and random source named by cfg.
func NewEngine(cfg config.ScoringConfig) (*scoring.Engine, error) {
	profiles, err := scoring.LoadProfiles(cfg.ProfilesPath)
	if err != nil {
		return nil, err
	}
	if cfg.ProfilesPath != "" {
		zap.L().Info("scoring profiles loaded", zap.String("path", cfg.ProfilesPath))
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, eris.Wrapf(err, "app: load scoring time zone %q", cfg.TimeZone)
	}

	rnd := scoring.NewClockSource()
	if cfg.SeedSet {
		rnd = scoring.NewSeededSource(cfg.SettlementSeed)
	}
	return scoring.NewEngine(profiles, rnd, loc)
}

// Close releases the cache and the database pool.
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			zap.L().Warn("failed to close cache", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := repositories.Close(a.DB); err != nil {
			zap.L().Warn("failed to close database", zap.Error(err))
		}
	}
}
